package types

import (
	"strings"
	"time"
)

// ContentType identifies the kind of unlockable content.
type ContentType string

const (
	ContentWisdomCard    ContentType = "wisdom_card"
	ContentGame          ContentType = "game"
	ContentJournalPrompt ContentType = "journal_prompt"
	ContentAchievement   ContentType = "achievement"
)

// ContentData is the per-type payload passed through to presentation.
// Each content type defines its own variant.
type ContentData interface {
	ContentKind() ContentType
}

// WisdomCardData is the payload of a wisdom card.
type WisdomCardData struct {
	Quote      string `json:"quote"`
	Source     string `json:"source"`
	Reflection string `json:"reflection,omitempty"`
}

func (WisdomCardData) ContentKind() ContentType { return ContentWisdomCard }

// GameData is the payload of an interactive game.
type GameData struct {
	GameID string `json:"game_id"`
	Mode   string `json:"mode,omitempty"`
	Rounds int    `json:"rounds,omitempty"`
}

func (GameData) ContentKind() ContentType { return ContentGame }

// JournalPromptData is the payload of a journal prompt.
type JournalPromptData struct {
	Prompt   string `json:"prompt"`
	Guidance string `json:"guidance,omitempty"`
}

func (JournalPromptData) ContentKind() ContentType { return ContentJournalPrompt }

// AchievementData is the payload of an achievement badge.
type AchievementData struct {
	Badge  string `json:"badge"`
	Points int    `json:"points,omitempty"`
}

func (AchievementData) ContentKind() ContentType { return ContentAchievement }

// UnlockCondition is the rule set a content item requires before it becomes
// available. All fields are optional; an absent field contributes nothing to
// either the score or the maximum score. An empty list counts as absent.
type UnlockCondition struct {
	TopicsRequired       []string `json:"topics_required,omitempty"`
	ThemesRequired       []string `json:"themes_required,omitempty"`
	EngagementThreshold  int      `json:"engagement_threshold,omitempty"`
	ConversationCountMin int      `json:"conversation_count_min,omitempty"`
	EmotionalStates      []string `json:"emotional_states,omitempty"`
	KnowledgeLevel       string   `json:"knowledge_level,omitempty"` // single label or "any"
}

// UnlockableContent is a static catalog entry, immutable at runtime.
type UnlockableContent struct {
	ID              string          `json:"id"`
	Type            ContentType     `json:"content_type"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Data            ContentData     `json:"content_data"`
	Conditions      UnlockCondition `json:"unlock_conditions"`
	SpiritualThemes []string        `json:"spiritual_themes,omitempty"`
	IslamicTopics   []string        `json:"islamic_topics,omitempty"`
	DifficultyLevel int             `json:"difficulty_level"` // 1-5
	UnlockPriority  int             `json:"unlock_priority"`  // lower surfaces first
}

// Delivery timing recommendations for unlocked content.
const (
	TimingImmediate     = "immediate"
	TimingAfterResponse = "after_response"
	TimingSessionEnd    = "session_end"
)

// UnlockResult is one evaluator decision for a catalog item.
type UnlockResult struct {
	Content  UnlockableContent `json:"content"`
	Unlocked bool              `json:"unlocked"`
	Reason   string            `json:"reason"`
	Score    float64           `json:"score"`
	MaxScore float64           `json:"max_score"`
	Timing   string            `json:"recommended_timing"`
}

// Notification priority buckets.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Celebration intensity hints for presentation.
const (
	CelebrationSubtle   = "subtle"
	CelebrationModerate = "moderate"
	CelebrationFull     = "celebration"
)

// UnlockNotification is the user-facing record for one unlocked item.
type UnlockNotification struct {
	ID               string      `json:"id"`
	Type             ContentType `json:"type"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Content          ContentData `json:"content"`
	UnlockedAt       time.Time   `json:"unlocked_at"`
	Priority         string      `json:"priority"`
	CelebrationLevel string      `json:"celebration_level"`
}

func containsFold(set []string, value string) bool {
	for _, item := range set {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
