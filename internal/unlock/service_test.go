package unlock

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeUnlockRepo struct {
	unlocked map[string]map[string]bool
	getErr   error
	addErr   error
}

func newFakeUnlockRepo() *fakeUnlockRepo {
	return &fakeUnlockRepo{unlocked: make(map[string]map[string]bool)}
}

func (r *fakeUnlockRepo) GetUnlocked(_ context.Context, userID string) (map[string]bool, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := make(map[string]bool, len(r.unlocked[userID]))
	for id := range r.unlocked[userID] {
		out[id] = true
	}
	return out, nil
}

func (r *fakeUnlockRepo) Add(_ context.Context, userID, contentID string) (bool, error) {
	if r.addErr != nil {
		return false, r.addErr
	}
	if r.unlocked[userID] == nil {
		r.unlocked[userID] = make(map[string]bool)
	}
	if r.unlocked[userID][contentID] {
		return false, nil
	}
	r.unlocked[userID][contentID] = true
	return true, nil
}

func TestCheckForUnlocksFirstMessage(t *testing.T) {
	repo := newFakeUnlockRepo()
	svc := NewService(DefaultCatalog(), NewEvaluator(), repo)

	results, err := svc.CheckForUnlocks(context.Background(), "user-1", strugglingContext())
	if err != nil {
		t.Fatalf("CheckForUnlocks failed: %v", err)
	}

	ids := make(map[string]bool)
	for _, result := range results {
		ids[result.Content.ID] = true
	}
	if !ids["card_patience_in_hardship"] {
		t.Fatalf("unlocked %v, want card_patience_in_hardship included", ids)
	}
	if !ids["ach_first_steps"] {
		t.Fatalf("unlocked %v, want ach_first_steps included", ids)
	}

	// Sorted ascending by unlock priority.
	for i := 1; i < len(results); i++ {
		if results[i-1].Content.UnlockPriority > results[i].Content.UnlockPriority {
			t.Fatalf("results out of priority order at %d: %d > %d",
				i, results[i-1].Content.UnlockPriority, results[i].Content.UnlockPriority)
		}
	}
}

func TestCheckForUnlocksIsAtMostOnce(t *testing.T) {
	repo := newFakeUnlockRepo()
	svc := NewService(DefaultCatalog(), NewEvaluator(), repo)
	ctx := strugglingContext()

	first, err := svc.CheckForUnlocks(context.Background(), "user-1", ctx)
	if err != nil {
		t.Fatalf("first CheckForUnlocks failed: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("first pass unlocked nothing")
	}

	second, err := svc.CheckForUnlocks(context.Background(), "user-1", ctx)
	if err != nil {
		t.Fatalf("second CheckForUnlocks failed: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second pass unlocked %d items, want 0", len(second))
	}
}

func TestCheckForUnlocksRepoErrors(t *testing.T) {
	repo := newFakeUnlockRepo()
	repo.getErr = errors.New("connection reset")
	svc := NewService(DefaultCatalog(), NewEvaluator(), repo)

	if _, err := svc.CheckForUnlocks(context.Background(), "user-1", strugglingContext()); err == nil {
		t.Fatal("CheckForUnlocks succeeded, want error")
	}

	repo = newFakeUnlockRepo()
	repo.addErr = errors.New("disk full")
	svc = NewService(DefaultCatalog(), NewEvaluator(), repo)
	if _, err := svc.CheckForUnlocks(context.Background(), "user-1", strugglingContext()); err == nil {
		t.Fatal("CheckForUnlocks succeeded despite Add failure, want error")
	}
}

func TestForceUnlock(t *testing.T) {
	repo := newFakeUnlockRepo()
	svc := NewService(DefaultCatalog(), NewEvaluator(), repo)
	svc.nowFunc = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }

	notification, err := svc.ForceUnlock(context.Background(), "user-1", "game_surah_match")
	if err != nil {
		t.Fatalf("ForceUnlock failed: %v", err)
	}
	if notification == nil {
		t.Fatal("notification is nil, want value")
	}
	if notification.ID != "game_surah_match" {
		t.Fatalf("notification.ID = %q, want game_surah_match", notification.ID)
	}
	if !repo.unlocked["user-1"]["game_surah_match"] {
		t.Fatal("unlock was not recorded")
	}

	// Forcing again still returns a notification without duplicating state.
	again, err := svc.ForceUnlock(context.Background(), "user-1", "game_surah_match")
	if err != nil {
		t.Fatalf("repeat ForceUnlock failed: %v", err)
	}
	if again == nil {
		t.Fatal("repeat notification is nil, want value")
	}
	if len(repo.unlocked["user-1"]) != 1 {
		t.Fatalf("unlocked set has %d entries, want 1", len(repo.unlocked["user-1"]))
	}
}

func TestForceUnlockUnknownContent(t *testing.T) {
	svc := NewService(DefaultCatalog(), NewEvaluator(), newFakeUnlockRepo())

	notification, err := svc.ForceUnlock(context.Background(), "user-1", "no_such_item")
	if err != nil {
		t.Fatalf("ForceUnlock failed: %v", err)
	}
	if notification != nil {
		t.Fatalf("notification = %+v, want nil for unknown content", notification)
	}
}

func TestUnlockedReturnsCatalogOrder(t *testing.T) {
	repo := newFakeUnlockRepo()
	svc := NewService(DefaultCatalog(), NewEvaluator(), repo)

	ctx := context.Background()
	for _, id := range []string{"ach_first_steps", "card_patience_in_hardship"} {
		if _, err := svc.ForceUnlock(ctx, "user-1", id); err != nil {
			t.Fatalf("ForceUnlock(%s) failed: %v", id, err)
		}
	}

	items, err := svc.Unlocked(ctx, "user-1")
	if err != nil {
		t.Fatalf("Unlocked failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Unlocked returned %d items, want 2", len(items))
	}
	// The card comes before the achievement in the catalog.
	if items[0].ID != "card_patience_in_hardship" || items[1].ID != "ach_first_steps" {
		t.Fatalf("items = [%s, %s], want catalog order", items[0].ID, items[1].ID)
	}
}
