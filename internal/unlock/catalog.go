// Package unlock evaluates gated content against conversation context and
// tracks per-user unlocks.
package unlock

import "github.com/nulocaldev/deenquest/internal/types"

// Catalog is the static registry of unlockable content. Items are loaded once
// at startup and never mutated; insertion order is the tie-break order for
// recommendations.
type Catalog struct {
	items []types.UnlockableContent
	byID  map[string]types.UnlockableContent
}

// NewCatalog builds a catalog preserving item order.
func NewCatalog(items ...types.UnlockableContent) *Catalog {
	byID := make(map[string]types.UnlockableContent, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &Catalog{items: items, byID: byID}
}

// Items returns all catalog entries in insertion order.
func (c *Catalog) Items() []types.UnlockableContent {
	return c.items
}

// Get returns the entry with the given ID.
func (c *Catalog) Get(id string) (types.UnlockableContent, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// DefaultCatalog returns the built-in content registry.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		types.UnlockableContent{
			ID:          "card_patience_in_hardship",
			Type:        types.ContentWisdomCard,
			Title:       "Patience in Hardship",
			Description: "A reminder that every difficulty carries ease within it.",
			Data: types.WisdomCardData{
				Quote:      "Indeed, with hardship comes ease.",
				Source:     "Quran 94:6",
				Reflection: "What small ease can you notice inside today's difficulty?",
			},
			Conditions: types.UnlockCondition{
				TopicsRequired:       []string{"hardship", "difficulty"},
				ThemesRequired:       []string{"patience"},
				EngagementThreshold:  6,
				ConversationCountMin: 1,
				EmotionalStates:      []string{types.ToneTroubled, types.ToneSeeking},
			},
			SpiritualThemes: []string{"patience", "trust"},
			IslamicTopics:   []string{"hardship", "patience"},
			DifficultyLevel: 1,
			UnlockPriority:  5,
		},
		types.UnlockableContent{
			ID:          "card_gratitude_multiplies",
			Type:        types.ContentWisdomCard,
			Title:       "Gratitude Multiplies",
			Description: "On the returns of a thankful heart.",
			Data: types.WisdomCardData{
				Quote:      "If you are grateful, I will surely increase you.",
				Source:     "Quran 14:7",
				Reflection: "Name three blessings you noticed today.",
			},
			Conditions: types.UnlockCondition{
				TopicsRequired:  []string{"gratitude"},
				EmotionalStates: []string{types.ToneGrateful, types.TonePeaceful},
			},
			SpiritualThemes: []string{"gratitude"},
			IslamicTopics:   []string{"gratitude"},
			DifficultyLevel: 1,
			UnlockPriority:  15,
		},
		types.UnlockableContent{
			ID:          "card_tawakkul",
			Type:        types.ContentWisdomCard,
			Title:       "Tie Your Camel",
			Description: "Trust paired with effort.",
			Data: types.WisdomCardData{
				Quote:      "Tie your camel first, then put your trust in Allah.",
				Source:     "Tirmidhi 2517",
				Reflection: "Where are you asked to act before you rest in trust?",
			},
			Conditions: types.UnlockCondition{
				ThemesRequired: []string{"trust"},
				KnowledgeLevel: types.KnowledgeIntermediate,
			},
			SpiritualThemes: []string{"trust"},
			IslamicTopics:   []string{"faith"},
			DifficultyLevel: 2,
			UnlockPriority:  25,
		},
		types.UnlockableContent{
			ID:          "journal_evening_reflection",
			Type:        types.ContentJournalPrompt,
			Title:       "Evening Reflection",
			Description: "A short muhasabah practice for the end of the day.",
			Data: types.JournalPromptData{
				Prompt:   "What moment today brought you closest to your values?",
				Guidance: "Write freely for five minutes without editing yourself.",
			},
			Conditions: types.UnlockCondition{
				ThemesRequired:       []string{"reflection"},
				ConversationCountMin: 3,
			},
			SpiritualThemes: []string{"reflection"},
			IslamicTopics:   []string{"knowledge"},
			DifficultyLevel: 1,
			UnlockPriority:  20,
		},
		types.UnlockableContent{
			ID:          "journal_naming_the_storm",
			Type:        types.ContentJournalPrompt,
			Title:       "Naming the Storm",
			Description: "Putting words to a difficulty makes it easier to carry.",
			Data: types.JournalPromptData{
				Prompt:   "Describe the hardest part of what you are carrying right now, and one thing still within your control.",
				Guidance: "There is no wrong answer here.",
			},
			Conditions: types.UnlockCondition{
				TopicsRequired:  []string{"hardship"},
				EmotionalStates: []string{types.ToneTroubled},
			},
			SpiritualThemes: []string{"patience"},
			IslamicTopics:   []string{"hardship"},
			DifficultyLevel: 2,
			UnlockPriority:  12,
		},
		types.UnlockableContent{
			ID:          "game_surah_match",
			Type:        types.ContentGame,
			Title:       "Surah Match",
			Description: "Match verses to the surahs they come from.",
			Data: types.GameData{
				GameID: "surah_match",
				Mode:   "timed",
				Rounds: 10,
			},
			Conditions: types.UnlockCondition{
				TopicsRequired:      []string{"quran"},
				EngagementThreshold: 6,
				KnowledgeLevel:      types.KnowledgeIntermediate,
			},
			SpiritualThemes: []string{"reflection"},
			IslamicTopics:   []string{"quran"},
			DifficultyLevel: 3,
			UnlockPriority:  30,
		},
		types.UnlockableContent{
			ID:          "game_names_of_allah",
			Type:        types.ContentGame,
			Title:       "The Beautiful Names",
			Description: "A memory game over the 99 names.",
			Data: types.GameData{
				GameID: "names_of_allah",
				Mode:   "memory",
				Rounds: 12,
			},
			Conditions: types.UnlockCondition{
				ConversationCountMin: 5,
				EngagementThreshold:  7,
			},
			SpiritualThemes: []string{"mindfulness"},
			IslamicTopics:   []string{"faith"},
			DifficultyLevel: 2,
			UnlockPriority:  35,
		},
		types.UnlockableContent{
			ID:          "ach_first_steps",
			Type:        types.ContentAchievement,
			Title:       "First Steps",
			Description: "You began the conversation.",
			Data: types.AchievementData{
				Badge:  "first_steps",
				Points: 10,
			},
			Conditions: types.UnlockCondition{
				ConversationCountMin: 1,
			},
			DifficultyLevel: 1,
			UnlockPriority:  10,
		},
		types.UnlockableContent{
			ID:          "ach_sincere_seeker",
			Type:        types.ContentAchievement,
			Title:       "Sincere Seeker",
			Description: "Ten thoughtful exchanges in one sitting.",
			Data: types.AchievementData{
				Badge:  "sincere_seeker",
				Points: 50,
			},
			Conditions: types.UnlockCondition{
				ConversationCountMin: 10,
				EngagementThreshold:  7,
			},
			DifficultyLevel: 2,
			UnlockPriority:  18,
		},
		types.UnlockableContent{
			ID:          "ach_student_of_knowledge",
			Type:        types.ContentAchievement,
			Title:       "Student of Knowledge",
			Description: "Your questions reached the scholars' vocabulary.",
			Data: types.AchievementData{
				Badge:  "student_of_knowledge",
				Points: 100,
			},
			Conditions: types.UnlockCondition{
				KnowledgeLevel:       types.KnowledgeAdvanced,
				ConversationCountMin: 5,
			},
			DifficultyLevel: 4,
			UnlockPriority:  22,
		},
	)
}
