package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nulocaldev/deenquest/internal/types"
)

type fakeContextRepo struct {
	contexts map[string]types.ConversationContext
	getErr   error
	putErr   error
}

func newFakeContextRepo() *fakeContextRepo {
	return &fakeContextRepo{contexts: make(map[string]types.ConversationContext)}
}

func (r *fakeContextRepo) Get(_ context.Context, userID string) (*types.ConversationContext, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	conversation, ok := r.contexts[userID]
	if !ok {
		return nil, nil
	}
	return &conversation, nil
}

func (r *fakeContextRepo) Put(_ context.Context, conversation types.ConversationContext) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.contexts[conversation.UserID] = conversation
	return nil
}

func TestGetOrCreateNewUser(t *testing.T) {
	repo := newFakeContextRepo()
	svc := NewService(repo, NewAggregator())

	got, err := svc.GetOrCreate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if got.UserID != "user-1" {
		t.Fatalf("UserID = %q, want user-1", got.UserID)
	}
	if got.SessionID == "" {
		t.Fatal("SessionID is empty, want generated ID")
	}
	if got.EmotionalTone != types.ToneNeutral {
		t.Fatalf("EmotionalTone = %q, want neutral", got.EmotionalTone)
	}
	if got.KnowledgeLevel != types.KnowledgeBeginner {
		t.Fatalf("KnowledgeLevel = %q, want beginner", got.KnowledgeLevel)
	}
	if got.EngagementLevel != 5 {
		t.Fatalf("EngagementLevel = %d, want 5", got.EngagementLevel)
	}
	if got.StartedAt.IsZero() {
		t.Fatal("StartedAt is zero, want session start time")
	}
}

func TestGetOrCreateRecomputesSessionDuration(t *testing.T) {
	repo := newFakeContextRepo()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	existing := types.NewConversationContext("user-1", "session-1")
	existing.StartedAt = start
	repo.contexts["user-1"] = existing

	svc := NewService(repo, NewAggregator())
	svc.nowFunc = func() time.Time { return start.Add(25 * time.Minute) }

	got, err := svc.GetOrCreate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if got.SessionID != "session-1" {
		t.Fatalf("SessionID = %q, want session-1", got.SessionID)
	}
	if got.SessionDuration != 25 {
		t.Fatalf("SessionDuration = %d, want 25", got.SessionDuration)
	}
}

func TestGetOrCreateRepoError(t *testing.T) {
	repo := newFakeContextRepo()
	repo.getErr = errors.New("connection reset")
	svc := NewService(repo, NewAggregator())

	if _, err := svc.GetOrCreate(context.Background(), "user-1"); err == nil {
		t.Fatal("GetOrCreate succeeded, want error")
	}
}

func TestAdvancePersistsUpdatedContext(t *testing.T) {
	repo := newFakeContextRepo()
	svc := NewService(repo, NewAggregator())

	conversation := types.NewConversationContext("user-1", "session-1")
	updated, err := svc.Advance(context.Background(), conversation, types.MessageAnalysis{
		Topics:          []string{"prayer"},
		EngagementScore: 7,
	})
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if updated.MessageCount != 1 {
		t.Fatalf("MessageCount = %d, want 1", updated.MessageCount)
	}

	stored, ok := repo.contexts["user-1"]
	if !ok {
		t.Fatal("context was not persisted")
	}
	if stored.MessageCount != 1 || !stored.HasTopic("prayer") {
		t.Fatalf("persisted context = %+v, want message count 1 with topic prayer", stored)
	}
}

func TestAdvancePutError(t *testing.T) {
	repo := newFakeContextRepo()
	repo.putErr = errors.New("disk full")
	svc := NewService(repo, NewAggregator())

	conversation := types.NewConversationContext("user-1", "session-1")
	if _, err := svc.Advance(context.Background(), conversation, types.MessageAnalysis{}); err == nil {
		t.Fatal("Advance succeeded, want error")
	}
}
