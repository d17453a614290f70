package unlock

import (
	"time"

	"github.com/nulocaldev/deenquest/internal/types"
)

// FormatNotifications maps unlocked results to user-facing notification
// records. Results that did not unlock are dropped.
func FormatNotifications(results []types.UnlockResult, unlockedAt time.Time) []types.UnlockNotification {
	notifications := []types.UnlockNotification{}
	for _, result := range results {
		if !result.Unlocked {
			continue
		}
		notifications = append(notifications, formatNotification(result.Content, unlockedAt))
	}
	return notifications
}

func formatNotification(content types.UnlockableContent, unlockedAt time.Time) types.UnlockNotification {
	return types.UnlockNotification{
		ID:               content.ID,
		Type:             content.Type,
		Title:            content.Title,
		Description:      content.Description,
		Content:          content.Data,
		UnlockedAt:       unlockedAt,
		Priority:         notificationPriority(content.UnlockPriority),
		CelebrationLevel: celebrationLevel(content),
	}
}

// notificationPriority buckets the numeric unlock priority.
func notificationPriority(unlockPriority int) string {
	switch {
	case unlockPriority <= 10:
		return types.PriorityHigh
	case unlockPriority <= 25:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// celebrationLevel picks the presentation intensity: achievements always
// celebrate, important items get a moderate cue, the rest stay subtle.
func celebrationLevel(content types.UnlockableContent) string {
	if content.Type == types.ContentAchievement {
		return types.CelebrationFull
	}
	if content.UnlockPriority <= 15 {
		return types.CelebrationModerate
	}
	return types.CelebrationSubtle
}
