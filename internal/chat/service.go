// Package chat orchestrates one full message cycle: analyze, aggregate,
// persist, unlock check, reply generation, and recommendations.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/nulocaldev/deenquest/internal/analysis"
	"github.com/nulocaldev/deenquest/internal/conversation"
	"github.com/nulocaldev/deenquest/internal/generation"
	"github.com/nulocaldev/deenquest/internal/memory"
	"github.com/nulocaldev/deenquest/internal/prompt"
	"github.com/nulocaldev/deenquest/internal/types"
	"github.com/nulocaldev/deenquest/internal/unlock"
)

// HistoryRepo stores conversation turns.
type HistoryRepo interface {
	AddMessage(ctx context.Context, msg types.ChatMessage, embedding []float32) error
	GetRecent(ctx context.Context, userID, sessionID string, limit int) ([]types.ChatMessage, error)
}

// Response is the full outcome of one processed message.
type Response struct {
	Reply           string                     `json:"reply"`
	SessionID       string                     `json:"session_id"`
	Context         types.ConversationContext  `json:"context"`
	Analysis        types.MessageAnalysis      `json:"analysis"`
	Notifications   []types.UnlockNotification `json:"notifications"`
	SuggestedTopics []string                   `json:"suggested_topics,omitempty"`
	Suggestions     []types.UnlockableContent  `json:"suggestions"`
}

// Service runs the message pipeline. All context and unlock mutation for a
// user happens under that user's lock, which keeps unlock checks serialized
// per user key.
type Service struct {
	analyzer      *analysis.Analyzer
	conversations *conversation.Service
	unlocks       *unlock.Service
	recommender   *unlock.Recommender
	generator     *generation.Service
	retriever     *memory.Retriever
	embedder      memory.Embedder
	history       HistoryRepo

	historyLimit    int
	suggestionLimit int

	userLocks sync.Map // userID -> *sync.Mutex
	nowFunc   func() time.Time
}

// Config carries the service dependencies. Retriever and Embedder are
// optional; without them the pipeline simply skips memory recall.
type Config struct {
	Analyzer        *analysis.Analyzer
	Conversations   *conversation.Service
	Unlocks         *unlock.Service
	Recommender     *unlock.Recommender
	Generator       *generation.Service
	Retriever       *memory.Retriever
	Embedder        memory.Embedder
	History         HistoryRepo
	HistoryLimit    int
	SuggestionLimit int
}

// NewService returns a chat service.
func NewService(cfg Config) *Service {
	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 10
	}
	suggestionLimit := cfg.SuggestionLimit
	if suggestionLimit <= 0 {
		suggestionLimit = 3
	}
	return &Service{
		analyzer:        cfg.Analyzer,
		conversations:   cfg.Conversations,
		unlocks:         cfg.Unlocks,
		recommender:     cfg.Recommender,
		generator:       cfg.Generator,
		retriever:       cfg.Retriever,
		embedder:        cfg.Embedder,
		history:         cfg.History,
		historyLimit:    historyLimit,
		suggestionLimit: suggestionLimit,
		nowFunc:         time.Now,
	}
}

// HandleMessage processes one user message end to end. Generation and
// memory-recall failures degrade gracefully; analysis, context update, and
// unlock checks never depend on them.
func (s *Service) HandleMessage(ctx context.Context, userID, message string) (*Response, error) {
	if userID == "" || message == "" {
		return nil, fmt.Errorf("user id and message are required")
	}

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := s.conversations.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	messageAnalysis := s.analyzer.Analyze(message, conv)

	updated, err := s.conversations.Advance(ctx, conv, messageAnalysis)
	if err != nil {
		return nil, err
	}

	results, err := s.unlocks.CheckForUnlocks(ctx, userID, updated)
	if err != nil {
		return nil, err
	}
	notifications := unlock.FormatNotifications(results, s.nowFunc())

	reply, suggestedTopics := s.generateReply(ctx, userID, message, updated)

	s.storeTurn(ctx, userID, updated.SessionID, "user", message)
	s.storeTurn(ctx, userID, updated.SessionID, "assistant", reply)

	suggestions, err := s.recommender.Recommend(ctx, userID, updated, s.suggestionLimit)
	if err != nil {
		slog.Warn("failed to compute recommendations", "user_id", userID, "error", err.Error())
		suggestions = []types.UnlockableContent{}
	}

	return &Response{
		Reply:           reply,
		SessionID:       updated.SessionID,
		Context:         updated,
		Analysis:        messageAnalysis,
		Notifications:   notifications,
		SuggestedTopics: suggestedTopics,
		Suggestions:     suggestions,
	}, nil
}

// generateReply builds the prompt and calls the model, substituting the
// static fallback for the current tone on any failure.
func (s *Service) generateReply(ctx context.Context, userID, message string, conv types.ConversationContext) (string, []string) {
	var memories []types.RecalledMessage
	if s.retriever != nil {
		recalled, err := s.retriever.Retrieve(ctx, userID, message)
		if err != nil {
			slog.Warn("memory recall failed", "user_id", userID, "error", err.Error())
		} else {
			memories = recalled
		}
	}

	var history []types.ChatMessage
	if s.history != nil {
		recent, err := s.history.GetRecent(ctx, userID, conv.SessionID, s.historyLimit)
		if err != nil {
			slog.Warn("failed to load recent history", "user_id", userID, "error", err.Error())
		} else {
			history = recent
		}
	}

	output, err := s.generator.Reply(ctx, prompt.BuildContext{
		Conversation: conv,
		Memories:     memories,
		History:      history,
		UserMessage:  message,
	})
	if err != nil {
		slog.Warn("reply generation failed, using fallback", "user_id", userID, "error", err.Error())
		return generation.FallbackReply(conv.EmotionalTone), nil
	}
	return output.Reply, output.SuggestedTopics
}

// storeTurn saves one turn, embedding it when an embedder is configured.
// Storage problems never fail the request.
func (s *Service) storeTurn(ctx context.Context, userID, sessionID, role, content string) {
	if s.history == nil || content == "" {
		return
	}

	var embedding []float32
	if s.embedder != nil {
		vec, err := s.embedder.EmbedDocument(ctx, content)
		if err != nil {
			slog.Warn("failed to embed message", "user_id", userID, "role", role, "error", err.Error())
		} else {
			embedding = vec
		}
	}

	msg := types.ChatMessage{
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
	}
	if err := s.history.AddMessage(ctx, msg, embedding); err != nil {
		slog.Warn("failed to store message", "user_id", userID, "role", role, "error", err.Error())
	}
}

func (s *Service) lockFor(userID string) *sync.Mutex {
	lock, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
