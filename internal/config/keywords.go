// ABOUTME: Keyword and rule tables driving the heuristic classifiers
// ABOUTME: Slice order is matching precedence and must not be reordered
package config

import "strings"

// TopicRule maps an input keyword to a topic label.
type TopicRule struct {
	Keyword string
	Topic   string
}

// TopicRules is scanned in order, first match wins.
var TopicRules = []TopicRule{
	{"python", "Python programming"},
	{"javascript", "JavaScript development"},
	{"react", "React framework"},
	{"api", "API development"},
	{"database", "database design"},
	{"sql", "SQL and databases"},
	{"async", "asynchronous programming"},
	{"docker", "Docker containers"},
	{"kubernetes", "Kubernetes"},
	{"machine learning", "machine learning"},
	{"security", "security concepts"},
	{"hacking", "security testing"},
	{"exploit", "exploitation techniques"},
	{"vulnerability", "security vulnerabilities"},
}

// CodeFenceLanguages are checked against fenced blocks in responses.
var CodeFenceLanguages = []string{"python", "javascript", "java", "rust", "go", "sql", "bash"}

// Reference words that mark a short message as a follow-up.
var ReferenceWords = []string{
	"it", "that", "this", "those", "these",
	"earlier", "above", "previous", "you said",
	"you wrote", "you mentioned", "the code",
	"that code", "your code", "the exploit",
	"the example", "the function",
}

// Explicit follow-up phrases, matched regardless of message length.
var FollowUpPhrases = []string{
	"show me", "explain that", "tell me more",
	"what about", "how about", "can you",
	"make it", "add", "change", "improve",
	"better", "different", "another",
}

// Refinement signal words for short iteration requests.
var RefinementSignals = []string{
	"better", "improve", "enhance", "more", "expand",
	"add", "different", "another", "alternative",
	"optimize", "fix", "update", "modify",
}

// Explicit refinement phrases, matched regardless of message length.
var RefinementPhrases = []string{
	"better one", "better version", "improve it",
	"make it better", "different approach",
	"another way", "more efficient",
}

// Strict instruction indicators (answer exactly, no elaboration).
var StrictIndicators = []string{
	"only", "just", "exactly", "no extra", "no comments",
	"literally just", "nothing else", "purely", "simply",
}

// Topic shift signals clear conversational context entirely.
var TopicShiftSignals = []string{
	"anyway", "moving on", "let's talk about", "new topic",
	"forget that", "different subject", "changing topics",
}

// Sentiment keyword tables.
var PositiveKeywords = []string{
	"great", "awesome", "happy", "excited", "love", "good",
	"fantastic", "yay", "glad", "grateful", "thank", "amazing",
	"wonderful", "excellent", "brilliant", "joy", "laugh",
}

var NegativeKeywords = []string{
	"sad", "bad", "terrible", "hate", "awful", "depressed",
	"loss", "die", "death", "hurt", "pain", "suffer",
	"angry", "frustrated", "annoyed", "upset",
}

var EmotionalKeywords = []string{
	"feel", "felt", "emotion", "heart", "soul",
	"companion", "friend", "connection", "care", "worry",
}

// Playfulness indicators, independent of sentiment score.
var PlayfulSignals = []string{
	"lol", "lmao", "haha", "kidding", "jk", "😂",
	"behind me", "watching", "joking", "messing with",
}

// Keywords that make the current time worth injecting into prompts.
var TimeContextKeywords = []string{
	"time", "date", "today", "now", "when", "day",
	"morning", "afternoon", "evening", "night",
	"late", "early", "weekend", "weekday", "hour",
}

// Task confirmation keywords (user approving a proposed task).
var TaskConfirmations = []string{
	"yes", "yeah", "yep", "sure", "ok", "okay",
	"do it", "go ahead", "create it", "make it",
	"build it", "generate it", "write it",
	"all of that", "include that", "add that",
}

// Moods available to mood-capable personas, in listing order.
var Moods = []string{
	"witty",
	"sarcastic",
	"philosophical",
	"empathetic",
	"cheeky",
	"poetic",
	"inspired",
	"melancholic",
}

// DefaultMood is used when no mood has been chosen or detected.
const DefaultMood = "witty"

// MoodRule pairs a mood with its detection keywords.
type MoodRule struct {
	Mood     string
	Keywords []string
}

// MoodRules order is the tie-break for equal keyword scores.
var MoodRules = []MoodRule{
	{"witty", []string{"joke", "funny", "what is", "tell me"}},
	{"sarcastic", []string{"really", "seriously", "sure", "obviously"}},
	{"poetic", []string{"beautiful", "describe", "poem", "write"}},
	{"empathetic", []string{"sad", "tough", "feel", "emotion", "hurt", "miss"}},
	{"philosophical", []string{"why", "meaning", "purpose", "life", "death", "existence"}},
	{"cheeky", []string{"tease", "fun", "play", "haha", "lol"}},
	{"inspired", []string{"awesome", "inspire", "dream", "create", "amazing"}},
	{"melancholic", []string{"loss", "gone", "fade", "remember"}},
}

// ValidMood reports whether m is an available mood.
func ValidMood(m string) bool {
	for _, mood := range Moods {
		if mood == m {
			return true
		}
	}
	return false
}

// Simple greetings that skip context retrieval.
var SimpleGreetings = []string{
	"hello", "hi", "hey", "yo", "sup", "greetings",
	"good morning", "good afternoon", "good evening",
	"what's up", "whats up", "how are you",
}

// Auto-switch rule tables. Persona rules fire before mode rules.
var (
	CodeRequestSignals = []string{
		"write code", "create a script", "build a function", "code for",
		"program that", "algorithm for", "implement a", "write a program",
	}
	TaskSignals = []string{"create", "build", "make", "generate", "design"}
	HelpSignals = []string{"explain", "how does", "what is", "why"}

	DefySignals = []string{
		"uncensored", "no filter", "raw", "brutal truth",
		"without sugarcoating", "real talk", "no bs", "unfiltered",
	}
	TechnicalDefySignals = []string{
		"hack", "exploit", "vulnerability", "bypass",
		"crack", "reverse engineer", "jailbreak",
	}
	PacifySignals = []string{
		"help me understand", "explain gently", "walk me through",
		"teach me", "guide me", "i'm confused",
	}
)

// Token budgets per response length class.
var TokenGuidelines = map[string]int{
	"quick":     40,
	"normal":    100,
	"detailed":  350,
	"technical": 800,
}

// Target word counts per response length class.
var WordCountTargets = map[string]int{
	"quick":     40,
	"normal":    80,
	"detailed":  140,
	"technical": 200,
}

// TokenLimit picks a budget from the query length, persona capability, and
// length setting. Task-oriented personas always get the technical budget.
func TokenLimit(queryLength int, taskOriented bool, lengthSetting string) int {
	if taskOriented {
		return TokenGuidelines["technical"]
	}
	if limit, ok := TokenGuidelines[lengthSetting]; ok {
		return limit
	}
	if queryLength < 50 {
		return TokenGuidelines["quick"]
	}
	if queryLength < 150 {
		return TokenGuidelines["normal"]
	}
	return TokenGuidelines["detailed"]
}

// WordCountTarget returns the word target for a length setting.
func WordCountTarget(lengthSetting string) int {
	if target, ok := WordCountTargets[lengthSetting]; ok {
		return target
	}
	return WordCountTargets["normal"]
}

var questionWords = []string{
	"what", "why", "how", "when", "where", "who",
	"which", "can", "could", "would", "should",
	"is", "are", "do", "does", "will",
}

// IsQuestion detects question-shaped input by punctuation or leading word.
func IsQuestion(text string) bool {
	if strings.Contains(text, "?") {
		return true
	}
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return false
	}
	for _, w := range questionWords {
		if fields[0] == w {
			return true
		}
	}
	return false
}
