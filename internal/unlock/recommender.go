package unlock

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/nulocaldev/deenquest/internal/types"
)

// Recommender ranks not-yet-unlocked catalog items by relevance to the
// current conversation. It is an independent read path: items appear here
// regardless of whether they would pass the unlock threshold.
type Recommender struct {
	catalog  *Catalog
	unlocked UnlockRepo
}

// NewRecommender returns a Recommender.
func NewRecommender(catalog *Catalog, unlocked UnlockRepo) *Recommender {
	return &Recommender{catalog: catalog, unlocked: unlocked}
}

// Recommend returns the top-limit items by relevance score. Ties keep catalog
// insertion order.
func (r *Recommender) Recommend(ctx context.Context, userID string, conversation types.ConversationContext, limit int) ([]types.UnlockableContent, error) {
	if limit <= 0 {
		return []types.UnlockableContent{}, nil
	}

	already, err := r.unlocked.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked set: %w", err)
	}

	type scored struct {
		item  types.UnlockableContent
		score int
	}
	var candidates []scored
	for _, item := range r.catalog.Items() {
		if already[item.ID] {
			continue
		}
		candidates = append(candidates, scored{item: item, score: relevanceScore(item, conversation)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	items := make([]types.UnlockableContent, 0, len(candidates))
	for _, candidate := range candidates {
		items = append(items, candidate.item)
	}
	return items, nil
}

// relevanceScore weighs topical and thematic overlap, knowledge fit, and the
// item's own importance.
func relevanceScore(item types.UnlockableContent, conversation types.ConversationContext) int {
	score := 0
	for _, topic := range item.IslamicTopics {
		if conversation.HasTopic(topic) {
			score += 10
		}
	}
	for _, theme := range item.SpiritualThemes {
		if conversation.HasTheme(theme) {
			score += 15
		}
	}
	if knowledgeFits(item.Conditions.KnowledgeLevel, conversation.KnowledgeLevel) {
		score += 20
	}
	if bonus := 50 - item.UnlockPriority; bonus > 0 {
		score += bonus
	}
	return score
}

// knowledgeFits treats an absent or "any" requirement as a fit and otherwise
// applies the tolerant comparator.
func knowledgeFits(required, actual string) bool {
	if required == "" || strings.EqualFold(required, "any") {
		return true
	}
	return KnowledgeSatisfies(actual, required)
}
