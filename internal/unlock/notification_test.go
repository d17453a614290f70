package unlock

import (
	"testing"
	"time"

	"github.com/nulocaldev/deenquest/internal/types"
)

func TestFormatNotificationsDropsLockedResults(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	results := []types.UnlockResult{
		{Content: types.UnlockableContent{ID: "a", Type: types.ContentWisdomCard, UnlockPriority: 5}, Unlocked: true},
		{Content: types.UnlockableContent{ID: "b", Type: types.ContentGame, UnlockPriority: 30}, Unlocked: false},
	}

	notifications := FormatNotifications(results, now)
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	if notifications[0].ID != "a" {
		t.Fatalf("ID = %q, want a", notifications[0].ID)
	}
	if !notifications[0].UnlockedAt.Equal(now) {
		t.Fatalf("UnlockedAt = %v, want %v", notifications[0].UnlockedAt, now)
	}
}

func TestNotificationPriorityBuckets(t *testing.T) {
	tests := []struct {
		unlockPriority int
		want           string
	}{
		{1, types.PriorityHigh},
		{10, types.PriorityHigh},
		{11, types.PriorityMedium},
		{25, types.PriorityMedium},
		{26, types.PriorityLow},
		{100, types.PriorityLow},
	}
	for _, tt := range tests {
		if got := notificationPriority(tt.unlockPriority); got != tt.want {
			t.Fatalf("notificationPriority(%d) = %q, want %q", tt.unlockPriority, got, tt.want)
		}
	}
}

func TestCelebrationLevel(t *testing.T) {
	tests := []struct {
		name    string
		content types.UnlockableContent
		want    string
	}{
		{"achievements always celebrate", types.UnlockableContent{Type: types.ContentAchievement, UnlockPriority: 40}, types.CelebrationFull},
		{"important card is moderate", types.UnlockableContent{Type: types.ContentWisdomCard, UnlockPriority: 15}, types.CelebrationModerate},
		{"routine game is subtle", types.UnlockableContent{Type: types.ContentGame, UnlockPriority: 30}, types.CelebrationSubtle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := celebrationLevel(tt.content); got != tt.want {
				t.Fatalf("celebrationLevel = %q, want %q", got, tt.want)
			}
		})
	}
}
