package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/nulocaldev/deenquest/internal/types"
)

// chatMessageModel maps to the chat_messages table.
type chatMessageModel struct {
	ID        int
	UserID    string
	SessionID string
	Role      string
	Content   string
	Embedding *pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt time.Time
}

func (chatMessageModel) TableName() string {
	return "chat_messages"
}

// ChatMessageRepo accesses stored conversation turns.
type ChatMessageRepo struct {
	db *gorm.DB
}

// NewChatMessageRepo returns a ChatMessageRepo.
func NewChatMessageRepo(db *gorm.DB) *ChatMessageRepo {
	return &ChatMessageRepo{db: db}
}

func (r *ChatMessageRepo) AddMessage(ctx context.Context, msg types.ChatMessage, embedding []float32) error {
	var vector *pgvector.Vector
	if len(embedding) > 0 {
		v := pgvector.NewVector(embedding)
		vector = &v
	}
	record := chatMessageModel{
		UserID:    msg.UserID,
		SessionID: msg.SessionID,
		Role:      msg.Role,
		Content:   msg.Content,
		Embedding: vector,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

func (r *ChatMessageRepo) GetRecent(ctx context.Context, userID, sessionID string, limit int) ([]types.ChatMessage, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}

	var records []chatMessageModel
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}

	results := make([]types.ChatMessage, 0, len(records))
	for _, record := range records {
		results = append(results, chatMessageFromModel(record))
	}

	// Oldest -> newest
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

func (r *ChatMessageRepo) SearchSimilar(ctx context.Context, userID string, embedding []float32, topK int, threshold float64) ([]types.RecalledMessage, error) {
	if len(embedding) == 0 {
		return nil, nil
	}

	query := `
		SELECT role, content, created_at, 1 - (embedding <=> $1) AS similarity
		FROM chat_messages
		WHERE user_id = $2
		  AND embedding IS NOT NULL
		  AND 1 - (embedding <=> $1) > $3
		ORDER BY similarity DESC
		LIMIT $4`

	vector := pgvector.NewVector(embedding)
	var results []types.RecalledMessage
	if err := r.db.WithContext(ctx).
		Raw(query, vector, userID, threshold, topK).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to search similar messages: %w", err)
	}
	return results, nil
}

func chatMessageFromModel(record chatMessageModel) types.ChatMessage {
	return types.ChatMessage{
		ID:        record.ID,
		UserID:    record.UserID,
		SessionID: record.SessionID,
		Role:      record.Role,
		Content:   record.Content,
		CreatedAt: record.CreatedAt,
	}
}
