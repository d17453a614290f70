// Package conversation folds per-message analyses into the running
// per-session conversation context.
package conversation

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nulocaldev/deenquest/internal/types"
)

// tonePriority is the fixed tie-break order for emotional tone resolution,
// checked top-to-bottom. A message carrying both "troubled" and "grateful"
// indicators always resolves to "troubled".
var tonePriority = []string{
	types.ToneTroubled,
	types.ToneSeeking,
	types.ToneGrateful,
	types.TonePeaceful,
	types.ToneReflective,
	types.ToneCurious,
}

// Aggregator applies message analyses to conversation contexts.
type Aggregator struct {
	nowFunc func() time.Time
}

// NewAggregator returns an Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{nowFunc: time.Now}
}

// Update returns the context advanced by one analyzed message. Topic, theme,
// and trigger sets grow monotonically; tone and knowledge level reflect the
// latest dominant signal; engagement is smoothed with factor 0.5.
func (a *Aggregator) Update(ctx types.ConversationContext, analysis types.MessageAnalysis) types.ConversationContext {
	ctx.Topics = union(ctx.Topics, analysis.Topics)
	ctx.SpiritualThemes = union(ctx.SpiritualThemes, analysis.SpiritualThemes)
	ctx.UnlockTriggers = union(ctx.UnlockTriggers, analysis.UnlockTriggers)

	ctx.EmotionalTone = resolveTone(analysis.EmotionalIndicators)
	ctx.KnowledgeLevel = resolveKnowledgeLevel(analysis.KnowledgeIndicators, len(ctx.Topics))
	ctx.EngagementLevel = int(math.Round(float64(ctx.EngagementLevel+analysis.EngagementScore) / 2))

	ctx.MessageCount++
	ctx.LastInteraction = a.nowFunc()
	return ctx
}

// resolveTone picks the highest-priority tone among the indicators, or
// neutral when none matched.
func resolveTone(indicators []string) string {
	for _, tone := range tonePriority {
		for _, indicator := range indicators {
			if indicator == tone {
				return tone
			}
		}
	}
	return types.ToneNeutral
}

// resolveKnowledgeLevel averages the numeric levels of the matched vocabulary
// terms (default 1 when none matched), adds a mild breadth bonus of 0.1 per
// distinct topic seen so far, and thresholds into the three tiers.
func resolveKnowledgeLevel(indicators []string, topicCount int) string {
	level := 1.0
	if len(indicators) > 0 {
		sum := 0
		for _, indicator := range indicators {
			sum += indicatorLevel(indicator)
		}
		level = float64(sum) / float64(len(indicators))
	}
	level += 0.1 * float64(topicCount)

	switch {
	case level >= 3:
		return types.KnowledgeAdvanced
	case level >= 2:
		return types.KnowledgeIntermediate
	default:
		return types.KnowledgeBeginner
	}
}

// indicatorLevel parses the numeric suffix of a "term:level" pair. Malformed
// indicators count as level 1.
func indicatorLevel(indicator string) int {
	idx := strings.LastIndex(indicator, ":")
	if idx < 0 {
		return 1
	}
	level, err := strconv.Atoi(indicator[idx+1:])
	if err != nil || level < 1 {
		return 1
	}
	return level
}

// union returns a new slice with the values not already present appended,
// preserving insertion order. The input set is left untouched.
func union(set []string, values []string) []string {
	out := make([]string, len(set), len(set)+len(values))
	copy(out, set)
	for _, value := range values {
		exists := false
		for _, existing := range out {
			if existing == value {
				exists = true
				break
			}
		}
		if !exists {
			out = append(out, value)
		}
	}
	return out
}
