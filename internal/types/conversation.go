// Package types holds the shared data model for the companion core.
package types

import "time"

// Emotional tone labels, resolved per message by priority (see conversation package).
const (
	ToneSeeking    = "seeking"
	ToneReflective = "reflective"
	ToneCurious    = "curious"
	ToneTroubled   = "troubled"
	ToneGrateful   = "grateful"
	TonePeaceful   = "peaceful"
	ToneNeutral    = "neutral"
)

// Knowledge level labels.
const (
	KnowledgeBeginner     = "beginner"
	KnowledgeIntermediate = "intermediate"
	KnowledgeAdvanced     = "advanced"
)

// KnowledgeRank maps a knowledge level label to its numeric rank.
// Unknown labels rank as beginner.
func KnowledgeRank(level string) int {
	switch level {
	case KnowledgeAdvanced:
		return 3
	case KnowledgeIntermediate:
		return 2
	default:
		return 1
	}
}

// ConversationContext is the accumulated per-session understanding of a user's
// conversation. Topics, SpiritualThemes, and UnlockTriggers only grow within a
// session; EmotionalTone and KnowledgeLevel reflect the latest dominant signal.
type ConversationContext struct {
	UserID          string    `json:"user_id"`
	SessionID       string    `json:"session_id"`
	Topics          []string  `json:"topics"`
	SpiritualThemes []string  `json:"spiritual_themes"`
	EmotionalTone   string    `json:"emotional_tone"`
	KnowledgeLevel  string    `json:"knowledge_level"`
	EngagementLevel int       `json:"engagement_level"`
	MessageCount    int       `json:"message_count"`
	SessionDuration int       `json:"session_duration"` // minutes since session start, maintained by the caller
	LastInteraction time.Time `json:"last_interaction"`
	UnlockTriggers  []string  `json:"unlock_triggers"`
	StartedAt       time.Time `json:"started_at"`
}

// NewConversationContext returns a fresh context with neutral defaults.
func NewConversationContext(userID, sessionID string) ConversationContext {
	return ConversationContext{
		UserID:          userID,
		SessionID:       sessionID,
		Topics:          []string{},
		SpiritualThemes: []string{},
		EmotionalTone:   ToneNeutral,
		KnowledgeLevel:  KnowledgeBeginner,
		EngagementLevel: 5,
		UnlockTriggers:  []string{},
	}
}

// HasTopic reports set membership, ignoring case.
func (c ConversationContext) HasTopic(topic string) bool {
	return containsFold(c.Topics, topic)
}

// HasTheme reports set membership, ignoring case.
func (c ConversationContext) HasTheme(theme string) bool {
	return containsFold(c.SpiritualThemes, theme)
}

// MessageAnalysis is the per-message output of the analyzer, consumed once by
// the context aggregator.
type MessageAnalysis struct {
	Topics              []string `json:"topics"`
	SpiritualThemes     []string `json:"spiritual_themes"`
	EmotionalIndicators []string `json:"emotional_indicators"`
	KnowledgeIndicators []string `json:"knowledge_indicators"` // "term:level" pairs
	UnlockTriggers      []string `json:"unlock_triggers"`
	EngagementScore     int      `json:"engagement_score"` // 1-10
	ComplexityScore     int      `json:"complexity_score"` // 1-10
	WordCount           int      `json:"word_count"`
}

// ChatMessage is one stored turn of a conversation.
type ChatMessage struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RecalledMessage is a past message retrieved by similarity search.
type RecalledMessage struct {
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	Similarity float64   `json:"similarity"`
}
