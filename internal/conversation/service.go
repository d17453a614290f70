package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nulocaldev/deenquest/internal/types"
)

// ContextRepo persists per-user conversation contexts. Get returns (nil, nil)
// when no context exists for the user. Implementations own any locking or
// transactions needed to serialize access per user key.
type ContextRepo interface {
	Get(ctx context.Context, userID string) (*types.ConversationContext, error)
	Put(ctx context.Context, conversation types.ConversationContext) error
}

// Service owns conversation context lifecycle: creation on first message,
// session duration upkeep, and persistence through the injected repository.
type Service struct {
	contexts   ContextRepo
	aggregator *Aggregator
	nowFunc    func() time.Time
}

// NewService returns a conversation service.
func NewService(contexts ContextRepo, aggregator *Aggregator) *Service {
	return &Service{
		contexts:   contexts,
		aggregator: aggregator,
		nowFunc:    time.Now,
	}
}

// GetOrCreate loads the user's conversation context, creating a fresh one
// with a new session ID on first contact. The session duration is recomputed
// from the session start before the context is handed to the analyzer.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (types.ConversationContext, error) {
	existing, err := s.contexts.Get(ctx, userID)
	if err != nil {
		return types.ConversationContext{}, fmt.Errorf("failed to load conversation context: %w", err)
	}
	if existing == nil {
		fresh := types.NewConversationContext(userID, uuid.NewString())
		fresh.StartedAt = s.nowFunc()
		return fresh, nil
	}

	conversation := *existing
	if !conversation.StartedAt.IsZero() {
		conversation.SessionDuration = int(s.nowFunc().Sub(conversation.StartedAt).Minutes())
	}
	return conversation, nil
}

// Advance folds the analysis into the context and persists the result.
func (s *Service) Advance(ctx context.Context, conversation types.ConversationContext, analysis types.MessageAnalysis) (types.ConversationContext, error) {
	updated := s.aggregator.Update(conversation, analysis)
	if err := s.contexts.Put(ctx, updated); err != nil {
		return types.ConversationContext{}, fmt.Errorf("failed to save conversation context: %w", err)
	}
	return updated, nil
}
