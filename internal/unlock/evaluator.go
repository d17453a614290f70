package unlock

import (
	"fmt"
	"strings"

	"github.com/nulocaldev/deenquest/internal/types"
)

// Rubric weights. Each condition field contributes its weight to the maximum
// score only when the field is present on the item; an absent or empty field
// contributes nothing to either side.
const (
	weightTopics       = 30
	weightThemes       = 25
	weightEngagement   = 20
	weightMessageCount = 10
	weightEmotional    = 15
	weightKnowledge    = 10

	unlockThreshold = 0.6
)

// Evaluator scores catalog items against a conversation context.
type Evaluator struct{}

// NewEvaluator returns an Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate scores one item against the context and decides whether it
// unlocks: the score must reach 60% of the maximum score its present
// condition fields allow. An item with no conditions at all is seed content
// and unlocks on its first evaluation.
func (e *Evaluator) Evaluate(content types.UnlockableContent, ctx types.ConversationContext) types.UnlockResult {
	cond := content.Conditions
	score, maxScore := 0.0, 0.0

	if len(cond.TopicsRequired) > 0 {
		maxScore += weightTopics
		matched := 0
		for _, required := range cond.TopicsRequired {
			if topicMatches(required, ctx.Topics) {
				matched++
			}
		}
		score += weightTopics * float64(matched) / float64(len(cond.TopicsRequired))
	}

	if len(cond.ThemesRequired) > 0 {
		maxScore += weightThemes
		matched := 0
		for _, required := range cond.ThemesRequired {
			if ctx.HasTheme(required) {
				matched++
			}
		}
		score += weightThemes * float64(matched) / float64(len(cond.ThemesRequired))
	}

	if cond.EngagementThreshold > 0 {
		maxScore += weightEngagement
		if ctx.EngagementLevel >= cond.EngagementThreshold {
			score += weightEngagement
		}
	}

	if cond.ConversationCountMin > 0 {
		maxScore += weightMessageCount
		if ctx.MessageCount >= cond.ConversationCountMin {
			score += weightMessageCount
		}
	}

	if len(cond.EmotionalStates) > 0 {
		maxScore += weightEmotional
		for _, state := range cond.EmotionalStates {
			if strings.EqualFold(state, ctx.EmotionalTone) {
				score += weightEmotional
				break
			}
		}
	}

	if cond.KnowledgeLevel != "" && !strings.EqualFold(cond.KnowledgeLevel, "any") {
		maxScore += weightKnowledge
		if KnowledgeSatisfies(ctx.KnowledgeLevel, cond.KnowledgeLevel) {
			score += weightKnowledge
		}
	}

	result := types.UnlockResult{
		Content:  content,
		Score:    score,
		MaxScore: maxScore,
		Timing:   recommendTiming(content),
	}
	if maxScore == 0 {
		// Seed content: no gating conditions at all.
		result.Unlocked = true
		result.Reason = "seed content"
		return result
	}

	result.Unlocked = score >= unlockThreshold*maxScore
	result.Reason = fmt.Sprintf("scored %.0f of %.0f", score, maxScore)
	return result
}

// topicMatches applies the deliberately permissive topic rule:
// case-insensitive substring overlap in either direction between the required
// topic and any context topic.
func topicMatches(required string, topics []string) bool {
	requiredLower := strings.ToLower(required)
	for _, topic := range topics {
		topicLower := strings.ToLower(topic)
		if strings.Contains(topicLower, requiredLower) || strings.Contains(requiredLower, topicLower) {
			return true
		}
	}
	return false
}

// KnowledgeSatisfies reports whether the actual knowledge level meets the
// required one under the tolerant comparator: one level below the requirement
// still counts, so advancing users are not starved of content.
func KnowledgeSatisfies(actual, required string) bool {
	return types.KnowledgeRank(actual) >= types.KnowledgeRank(required)-1
}

// recommendTiming is a deterministic delivery-timing lookup by content type.
func recommendTiming(content types.UnlockableContent) string {
	switch content.Type {
	case types.ContentAchievement:
		if content.UnlockPriority <= 20 {
			return types.TimingImmediate
		}
		return types.TimingAfterResponse
	case types.ContentGame:
		return types.TimingSessionEnd
	default:
		return types.TimingAfterResponse
	}
}
