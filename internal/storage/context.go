package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nulocaldev/deenquest/internal/conversation"
	"github.com/nulocaldev/deenquest/internal/types"
)

// conversationContextModel maps to the conversation_contexts table. The
// growing sets are stored as JSON text columns.
type conversationContextModel struct {
	UserID          string `gorm:"primaryKey"`
	SessionID       string
	Topics          string
	SpiritualThemes string
	EmotionalTone   string
	KnowledgeLevel  string
	EngagementLevel int
	MessageCount    int
	SessionDuration int
	LastInteraction time.Time
	UnlockTriggers  string
	StartedAt       time.Time
	UpdatedAt       time.Time
}

func (conversationContextModel) TableName() string {
	return "conversation_contexts"
}

// contextRepo accesses conversation context data.
type contextRepo struct {
	db *gorm.DB
}

// NewContextRepo returns a gorm-backed ContextRepo.
func NewContextRepo(db *gorm.DB) conversation.ContextRepo {
	return &contextRepo{db: db}
}

func (r *contextRepo) Get(ctx context.Context, userID string) (*types.ConversationContext, error) {
	var record conversationContextModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to query conversation context: %w", err)
	}
	if record.UserID == "" {
		return nil, nil
	}
	result, err := contextFromModel(record)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *contextRepo) Put(ctx context.Context, conversation types.ConversationContext) error {
	record, err := contextToModel(conversation)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to save conversation context: %w", err)
	}
	return nil
}

func contextToModel(c types.ConversationContext) (conversationContextModel, error) {
	topics, err := marshalSet(c.Topics)
	if err != nil {
		return conversationContextModel{}, err
	}
	themes, err := marshalSet(c.SpiritualThemes)
	if err != nil {
		return conversationContextModel{}, err
	}
	triggers, err := marshalSet(c.UnlockTriggers)
	if err != nil {
		return conversationContextModel{}, err
	}
	return conversationContextModel{
		UserID:          c.UserID,
		SessionID:       c.SessionID,
		Topics:          topics,
		SpiritualThemes: themes,
		EmotionalTone:   c.EmotionalTone,
		KnowledgeLevel:  c.KnowledgeLevel,
		EngagementLevel: c.EngagementLevel,
		MessageCount:    c.MessageCount,
		SessionDuration: c.SessionDuration,
		LastInteraction: c.LastInteraction,
		UnlockTriggers:  triggers,
		StartedAt:       c.StartedAt,
	}, nil
}

func contextFromModel(record conversationContextModel) (types.ConversationContext, error) {
	topics, err := unmarshalSet(record.Topics)
	if err != nil {
		return types.ConversationContext{}, err
	}
	themes, err := unmarshalSet(record.SpiritualThemes)
	if err != nil {
		return types.ConversationContext{}, err
	}
	triggers, err := unmarshalSet(record.UnlockTriggers)
	if err != nil {
		return types.ConversationContext{}, err
	}
	return types.ConversationContext{
		UserID:          record.UserID,
		SessionID:       record.SessionID,
		Topics:          topics,
		SpiritualThemes: themes,
		EmotionalTone:   record.EmotionalTone,
		KnowledgeLevel:  record.KnowledgeLevel,
		EngagementLevel: record.EngagementLevel,
		MessageCount:    record.MessageCount,
		SessionDuration: record.SessionDuration,
		LastInteraction: record.LastInteraction,
		UnlockTriggers:  triggers,
		StartedAt:       record.StartedAt,
	}, nil
}

func marshalSet(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to marshal set: %w", err)
	}
	return string(raw), nil
}

func unmarshalSet(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal set: %w", err)
	}
	return values, nil
}
