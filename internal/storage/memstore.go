package storage

import (
	"context"
	"sync"

	"github.com/nulocaldev/deenquest/internal/types"
)

// MemoryStore keeps all state in process memory behind a single lock. It
// backs the REPL and tests; production uses the Postgres repositories.
type MemoryStore struct {
	mu       sync.RWMutex
	contexts map[string]types.ConversationContext
	unlocked map[string]map[string]bool
	messages []types.ChatMessage
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		contexts: make(map[string]types.ConversationContext),
		unlocked: make(map[string]map[string]bool),
	}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*types.ConversationContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conversation, ok := s.contexts[userID]
	if !ok {
		return nil, nil
	}
	return &conversation, nil
}

func (s *MemoryStore) Put(ctx context.Context, conversation types.ConversationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[conversation.UserID] = conversation
	return nil
}

func (s *MemoryStore) GetUnlocked(ctx context.Context, userID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unlocked := make(map[string]bool, len(s.unlocked[userID]))
	for id := range s.unlocked[userID] {
		unlocked[id] = true
	}
	return unlocked, nil
}

func (s *MemoryStore) Add(ctx context.Context, userID, contentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.unlocked[userID]
	if !ok {
		set = make(map[string]bool)
		s.unlocked[userID] = set
	}
	if set[contentID] {
		return false, nil
	}
	set[contentID] = true
	return true, nil
}

func (s *MemoryStore) AddMessage(ctx context.Context, msg types.ChatMessage, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = len(s.messages) + 1
	s.messages = append(s.messages, msg)
	return nil
}

func (s *MemoryStore) GetRecent(ctx context.Context, userID, sessionID string, limit int) ([]types.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []types.ChatMessage
	for _, msg := range s.messages {
		if userID != "" && msg.UserID != userID {
			continue
		}
		if sessionID != "" && msg.SessionID != sessionID {
			continue
		}
		results = append(results, msg)
	}
	if limit > 0 && len(results) > limit {
		results = results[len(results)-limit:]
	}
	return results, nil
}

// SearchSimilar always returns no matches: the in-memory store keeps no
// embeddings, so memory recall is simply absent in REPL mode.
func (s *MemoryStore) SearchSimilar(ctx context.Context, userID string, embedding []float32, topK int, threshold float64) ([]types.RecalledMessage, error) {
	return nil, nil
}
