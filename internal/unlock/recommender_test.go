package unlock

import (
	"context"
	"testing"

	"github.com/nulocaldev/deenquest/internal/types"
)

func TestRecommendRanksByRelevance(t *testing.T) {
	catalog := NewCatalog(
		types.UnlockableContent{
			ID:              "off_topic",
			IslamicTopics:   []string{"charity"},
			SpiritualThemes: []string{"excellence"},
			UnlockPriority:  40,
		},
		types.UnlockableContent{
			ID:              "on_topic",
			IslamicTopics:   []string{"hardship"},
			SpiritualThemes: []string{"patience"},
			UnlockPriority:  40,
		},
	)
	recommender := NewRecommender(catalog, newFakeUnlockRepo())

	ctx := types.NewConversationContext("user-1", "session-1")
	ctx.Topics = []string{"hardship"}
	ctx.SpiritualThemes = []string{"patience"}

	items, err := recommender.Recommend(context.Background(), "user-1", ctx, 2)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "on_topic" {
		t.Fatalf("top recommendation = %q, want on_topic", items[0].ID)
	}
}

func TestRecommendSkipsUnlockedAndHonorsLimit(t *testing.T) {
	repo := newFakeUnlockRepo()
	recommender := NewRecommender(DefaultCatalog(), repo)
	ctx := types.NewConversationContext("user-1", "session-1")

	if _, err := repo.Add(context.Background(), "user-1", "card_patience_in_hardship"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	items, err := recommender.Recommend(context.Background(), "user-1", ctx, 3)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for _, item := range items {
		if item.ID == "card_patience_in_hardship" {
			t.Fatal("recommendation includes an already unlocked item")
		}
	}
}

func TestRecommendTiesKeepCatalogOrder(t *testing.T) {
	catalog := NewCatalog(
		types.UnlockableContent{ID: "first", UnlockPriority: 20},
		types.UnlockableContent{ID: "second", UnlockPriority: 20},
	)
	recommender := NewRecommender(catalog, newFakeUnlockRepo())

	items, err := recommender.Recommend(context.Background(), "user-1", types.NewConversationContext("user-1", "session-1"), 2)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if items[0].ID != "first" || items[1].ID != "second" {
		t.Fatalf("items = [%s, %s], want insertion order on ties", items[0].ID, items[1].ID)
	}
}

func TestKnowledgeFitsTreatsUnrestrictedAsFit(t *testing.T) {
	tests := []struct {
		name     string
		required string
		actual   string
		want     bool
	}{
		{"no requirement fits beginner", "", types.KnowledgeBeginner, true},
		{"any fits beginner", "any", types.KnowledgeBeginner, true},
		{"any is case-insensitive", "Any", types.KnowledgeBeginner, true},
		{"tolerant comparator applies otherwise", types.KnowledgeAdvanced, types.KnowledgeIntermediate, true},
		{"two levels below does not fit", types.KnowledgeAdvanced, types.KnowledgeBeginner, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := knowledgeFits(tt.required, tt.actual); got != tt.want {
				t.Fatalf("knowledgeFits(%q, %q) = %v, want %v", tt.required, tt.actual, got, tt.want)
			}
		})
	}
}

func TestRelevanceScoreUnrestrictedKnowledgeBonus(t *testing.T) {
	conversation := types.NewConversationContext("user-1", "session-1")

	unrestricted := types.UnlockableContent{ID: "open", UnlockPriority: 50}
	restricted := types.UnlockableContent{
		ID:             "gated",
		UnlockPriority: 50,
		Conditions:     types.UnlockCondition{KnowledgeLevel: types.KnowledgeAdvanced},
	}

	if got := relevanceScore(unrestricted, conversation); got != 20 {
		t.Fatalf("relevanceScore(unrestricted) = %d, want 20", got)
	}
	if got := relevanceScore(restricted, conversation); got != 0 {
		t.Fatalf("relevanceScore(restricted vs beginner) = %d, want 0", got)
	}
}

func TestRecommendZeroLimit(t *testing.T) {
	recommender := NewRecommender(DefaultCatalog(), newFakeUnlockRepo())

	items, err := recommender.Recommend(context.Background(), "user-1", types.NewConversationContext("user-1", "session-1"), 0)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d items, want 0", len(items))
	}
}
