// Package analysis extracts topics, themes, emotional signals, and engagement
// scores from raw message text using keyword heuristics.
package analysis

// lexiconEntry associates a label with its trigger keywords. Matching is
// case-insensitive substring containment over the preprocessed message, so a
// keyword like "pray" also matches "prayer" and "praying".
type lexiconEntry struct {
	Label    string
	Keywords []string
}

// topicLexicon maps discussion topics to trigger keywords.
var topicLexicon = []lexiconEntry{
	{"patience", []string{"patience", "patient", "sabr", "endure", "persever"}},
	{"prayer", []string{"prayer", "pray", "salah", "salat", "dua", "worship"}},
	{"quran", []string{"quran", "surah", "ayah", "verse", "recit"}},
	{"gratitude", []string{"grateful", "gratitude", "thankful", "alhamdulillah", "blessing"}},
	{"forgiveness", []string{"forgive", "forgiving", "mercy", "merciful", "pardon"}},
	{"charity", []string{"charity", "sadaqah", "zakat", "giving", "generous"}},
	{"family", []string{"family", "parent", "mother", "father", "children", "spouse", "marriage"}},
	{"hardship", []string{"hardship", "difficult", "struggle", "trial", "challenge", "test"}},
	{"faith", []string{"faith", "iman", "belief", "believe", "trust in allah"}},
	{"knowledge", []string{"knowledge", "learn", "study", "wisdom", "understand"}},
	{"community", []string{"community", "ummah", "mosque", "masjid", "brotherhood", "sisterhood"}},
	{"afterlife", []string{"afterlife", "akhirah", "jannah", "paradise", "hereafter"}},
}

// themeLexicon maps spiritual themes to trigger keywords.
var themeLexicon = []lexiconEntry{
	{"patience", []string{"sabr", "patience", "endurance"}},
	{"trust", []string{"tawakkul", "trust in allah", "reliance", "rely on allah"}},
	{"gratitude", []string{"shukr", "grateful", "gratitude", "alhamdulillah"}},
	{"reflection", []string{"reflect", "contemplat", "ponder", "tafakkur"}},
	{"repentance", []string{"tawbah", "repent", "istighfar", "seek forgiveness"}},
	{"mindfulness", []string{"taqwa", "mindful", "conscious of allah"}},
	{"excellence", []string{"ihsan", "excellence", "strive"}},
	{"humility", []string{"humble", "humility", "modest"}},
}

// toneLexicon maps emotional tones to trigger keywords. Order matters: the
// conversation aggregator resolves a single tone by checking indicators
// top-to-bottom in exactly this priority, so a message hinting at both
// "troubled" and "grateful" always resolves to "troubled".
var toneLexicon = []lexiconEntry{
	{"troubled", []string{"struggling", "difficult", "hard time", "worried", "anxious", "stress", "pain", "hurt", "lost", "confus", "overwhelm"}},
	{"seeking", []string{"how do i", "how can i", "guide me", "help me", "advice", "what should", "searching for", "seeking"}},
	{"grateful", []string{"grateful", "thankful", "blessed", "alhamdulillah", "appreciate"}},
	{"peaceful", []string{"peace", "calm", "content", "serene", "tranquil"}},
	{"reflective", []string{"i think", "i feel", "i realize", "looking back", "reflect", "wonder"}},
	{"curious", []string{"curious", "why does", "what is", "what does", "tell me about", "interested in"}},
}

// knowledgeVocabulary maps vocabulary terms to a sophistication level 1-4.
// Terms at level 3 and above also count as scholarly for complexity scoring.
var knowledgeVocabulary = []struct {
	Term  string
	Level int
}{
	{"allah", 1},
	{"islam", 1},
	{"muslim", 1},
	{"quran", 1},
	{"prophet", 1},
	{"sunnah", 2},
	{"hadith", 2},
	{"halal", 2},
	{"haram", 2},
	{"wudu", 2},
	{"tawhid", 2},
	{"fiqh", 3},
	{"tafsir", 3},
	{"aqeedah", 3},
	{"seerah", 3},
	{"madhab", 3},
	{"ijtihad", 4},
	{"usul", 4},
	{"qiyas", 4},
	{"isnad", 4},
}

const scholarlyLevel = 3

// emotionalVocabulary feeds the engagement score's emotional-density bonus.
var emotionalVocabulary = []string{
	"feel", "feeling", "heart", "love", "fear", "hope",
	"grateful", "struggling", "worried", "happy", "sad", "peace",
}

// reflectivePronouns feed the engagement score's first-person density bonus.
var reflectivePronouns = []string{"i", "me", "my", "myself", "we", "us", "our"}
