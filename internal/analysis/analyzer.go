package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/nulocaldev/deenquest/internal/types"
)

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// Analyzer produces a structured per-message analysis from raw text and the
// current conversation context. It is a pure function of its inputs: the
// context is read, never mutated.
type Analyzer struct{}

// NewAnalyzer returns an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze extracts topics, themes, emotional and knowledge indicators, unlock
// triggers, and engagement/complexity scores from one message.
//
// Matching is deliberately permissive case-insensitive substring containment
// rather than tokenized word-boundary matching; short keywords can over-match.
func (a *Analyzer) Analyze(message string, ctx types.ConversationContext) types.MessageAnalysis {
	normalized := preprocess(message)
	words := strings.Fields(normalized)
	questionCount := strings.Count(message, "?")

	analysis := types.MessageAnalysis{
		Topics:              matchLexicon(normalized, topicLexicon),
		SpiritualThemes:     matchLexicon(normalized, themeLexicon),
		EmotionalIndicators: matchLexicon(normalized, toneLexicon),
		KnowledgeIndicators: matchKnowledge(normalized),
		WordCount:           len(words),
	}
	analysis.UnlockTriggers = detectTriggers(normalized, questionCount, ctx)
	analysis.EngagementScore = engagementScore(normalized, words, questionCount)
	analysis.ComplexityScore = complexityScore(normalized, len(words))
	return analysis
}

// preprocess lowercases, strips non-word/non-space characters, and collapses
// whitespace.
func preprocess(message string) string {
	lowered := strings.ToLower(message)
	stripped := nonWordPattern.ReplaceAllString(lowered, "")
	return strings.Join(strings.Fields(stripped), " ")
}

func matchLexicon(text string, lexicon []lexiconEntry) []string {
	matched := []string{}
	for _, entry := range lexicon {
		for _, keyword := range entry.Keywords {
			if strings.Contains(text, keyword) {
				matched = append(matched, entry.Label)
				break
			}
		}
	}
	return matched
}

func matchKnowledge(text string) []string {
	indicators := []string{}
	for _, vocab := range knowledgeVocabulary {
		if strings.Contains(text, vocab.Term) {
			indicators = append(indicators, vocab.Term+":"+strconv.Itoa(vocab.Level))
		}
	}
	return indicators
}

// detectTriggers applies the fixed trigger heuristics. The first group reads
// the message, the second reads the pre-update context, so context-derived
// triggers describe the conversation as it stood before this message.
func detectTriggers(text string, questionCount int, ctx types.ConversationContext) []string {
	triggers := []string{}
	if strings.Contains(text, "difficult") || strings.Contains(text, "struggle") || strings.Contains(text, "struggling") {
		triggers = append(triggers, "discussed_difficulty")
	}
	if questionCount > 0 {
		triggers = append(triggers, "asked_questions")
	}
	if strings.Contains(text, "thank") || strings.Contains(text, "grateful") || strings.Contains(text, "alhamdulillah") {
		triggers = append(triggers, "expressed_gratitude")
	}
	if strings.Contains(text, "help") || strings.Contains(text, "guidance") || strings.Contains(text, "advice") {
		triggers = append(triggers, "sought_guidance")
	}
	if ctx.MessageCount >= 5 && ctx.EngagementLevel >= 7 {
		triggers = append(triggers, "sustained_engagement")
	}
	if ctx.SessionDuration >= 10 {
		triggers = append(triggers, "long_conversation")
	}
	return triggers
}

// engagementScore rates how invested a single message appears, on a 1-10
// scale: base 5, adjusted for length, questions, first-person density, and
// emotional vocabulary.
func engagementScore(text string, words []string, questionCount int) int {
	score := 5.0

	switch wc := len(words); {
	case wc > 20:
		score += 2
	case wc > 10:
		score += 1
	case wc < 3:
		score -= 2
	}

	score += math.Min(float64(questionCount)*1.5, 3)

	pronouns := 0
	for _, word := range words {
		for _, pronoun := range reflectivePronouns {
			if word == pronoun {
				pronouns++
				break
			}
		}
	}
	score += math.Min(float64(pronouns)*0.5, 2)

	emotional := 0
	for _, term := range emotionalVocabulary {
		if strings.Contains(text, term) {
			emotional++
		}
	}
	score += math.Min(float64(emotional)*1.0, 2)

	return clampScore(int(math.Round(score)))
}

// complexityScore rates message sophistication: a single length tier plus 2
// per scholarly vocabulary term, capped at 10.
func complexityScore(text string, wordCount int) int {
	score := 1
	switch {
	case wordCount > 50:
		score += 3
	case wordCount > 25:
		score += 2
	case wordCount > 10:
		score += 1
	}
	for _, vocab := range knowledgeVocabulary {
		if vocab.Level >= scholarlyLevel && strings.Contains(text, vocab.Term) {
			score += 2
		}
	}
	if score > 10 {
		score = 10
	}
	return score
}

func clampScore(score int) int {
	switch {
	case score < 1:
		return 1
	case score > 10:
		return 10
	default:
		return score
	}
}
