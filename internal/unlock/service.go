package unlock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nulocaldev/deenquest/internal/types"
)

// UnlockRepo persists per-user sets of unlocked content IDs. Add is an
// atomic test-and-set: it reports whether the ID was newly inserted, and
// adding an already-present ID is not an error. Implementations own whatever
// locking or transactions are needed to make that atomic per user key.
type UnlockRepo interface {
	GetUnlocked(ctx context.Context, userID string) (map[string]bool, error)
	Add(ctx context.Context, userID, contentID string) (bool, error)
}

// Service runs unlock checks over the catalog and enforces at-most-once
// unlock per item per user.
type Service struct {
	catalog   *Catalog
	evaluator *Evaluator
	unlocked  UnlockRepo
	nowFunc   func() time.Time
}

// NewService returns an unlock service.
func NewService(catalog *Catalog, evaluator *Evaluator, unlocked UnlockRepo) *Service {
	return &Service{
		catalog:   catalog,
		evaluator: evaluator,
		unlocked:  unlocked,
		nowFunc:   time.Now,
	}
}

// CheckForUnlocks evaluates every not-yet-unlocked catalog item against the
// context. Items that pass are recorded immediately, so a single pass never
// double-unlocks regardless of iteration order, and are returned sorted by
// ascending unlock priority. The call is idempotent per item but not overall:
// later context changes may unlock new items.
func (s *Service) CheckForUnlocks(ctx context.Context, userID string, conversation types.ConversationContext) ([]types.UnlockResult, error) {
	already, err := s.unlocked.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked set: %w", err)
	}

	var results []types.UnlockResult
	for _, item := range s.catalog.Items() {
		if already[item.ID] {
			continue
		}
		result := s.evaluator.Evaluate(item, conversation)
		if !result.Unlocked {
			continue
		}
		inserted, err := s.unlocked.Add(ctx, userID, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to record unlock %s: %w", item.ID, err)
		}
		already[item.ID] = true
		if inserted {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Content.UnlockPriority < results[j].Content.UnlockPriority
	})
	return results, nil
}

// ForceUnlock is an administrative override: it records the unlock without
// evaluation and returns the notification. An unknown content ID returns
// (nil, nil). Forcing an already-unlocked item still returns a notification
// but leaves the tracker set unchanged.
func (s *Service) ForceUnlock(ctx context.Context, userID, contentID string) (*types.UnlockNotification, error) {
	item, ok := s.catalog.Get(contentID)
	if !ok {
		return nil, nil
	}
	if _, err := s.unlocked.Add(ctx, userID, item.ID); err != nil {
		return nil, fmt.Errorf("failed to record unlock %s: %w", item.ID, err)
	}
	notification := formatNotification(item, s.nowFunc())
	return &notification, nil
}

// Unlocked returns the user's unlocked content entries in catalog order.
func (s *Service) Unlocked(ctx context.Context, userID string) ([]types.UnlockableContent, error) {
	already, err := s.unlocked.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked set: %w", err)
	}
	items := []types.UnlockableContent{}
	for _, item := range s.catalog.Items() {
		if already[item.ID] {
			items = append(items, item)
		}
	}
	return items, nil
}
