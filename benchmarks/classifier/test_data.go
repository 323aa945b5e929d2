// ABOUTME: Labeled conversation scenarios for the classifier benchmark
// ABOUTME: Each scenario scripts turns and pins the expected final-turn labels

package classifier

// TestScenario is one scripted conversation with labeled expectations for
// the final turn.
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Turns       []ConversationTurn
	GroundTruth GroundTruth
}

// ConversationTurn is a single scripted exchange. The AI response is canned
// so runs stay deterministic and offline.
type ConversationTurn struct {
	TurnNumber  int
	UserMessage string
	AIResponse  string
}

// GroundTruth pins the expected classifier outputs for the final turn.
// Empty fields skip that check. Mood and SuggestionType accept "none" to
// assert the classifier stayed silent.
type GroundTruth struct {
	FinalTurn int

	Pattern        string
	SentimentLabel string
	Emotion        string
	Mood           string

	SuggestionType   string
	SuggestionTarget string

	// "used" or "skipped": whether history should be injected.
	Context string
}

// GetPatternScenarios covers the pattern detector's precedence chain.
func GetPatternScenarios() []TestScenario {
	return []TestScenario{
		{
			ID:          "strict",
			Name:        "Strict Instruction",
			Description: "Bare-answer requests must classify as strict and keep context",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "Tell me about python decorators", AIResponse: "Decorators wrap a function to extend its behavior."},
				{TurnNumber: 2, UserMessage: "Give me only the code, nothing else"},
			},
			GroundTruth: GroundTruth{
				FinalTurn:      2,
				Pattern:        "strict",
				SuggestionType: "none",
				Context:        "used",
			},
		},
		{
			ID:          "shift",
			Name:        "Topic Shift",
			Description: "Explicit subject changes must classify as shift and drop context",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "I need help with my sql database queries", AIResponse: "Start by indexing the columns you filter on."},
				{TurnNumber: 2, UserMessage: "Anyway, let's talk about music instead"},
			},
			GroundTruth: GroundTruth{
				FinalTurn: 2,
				Pattern:   "shift",
				Context:   "skipped",
			},
		},
		{
			ID:          "spam",
			Name:        "Repeated Input",
			Description: "Three identical prior inputs must classify the next repeat as spam",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "are you even listening", AIResponse: "I am."},
				{TurnNumber: 2, UserMessage: "are you even listening", AIResponse: "Still here."},
				{TurnNumber: 3, UserMessage: "are you even listening", AIResponse: "Yes."},
				{TurnNumber: 4, UserMessage: "are you even listening"},
			},
			GroundTruth: GroundTruth{
				FinalTurn: 4,
				Pattern:   "spam",
			},
		},
		{
			ID:          "followup",
			Name:        "Short Follow-Up",
			Description: "Short references to prior work must classify as follow_up",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "What are python generators?", AIResponse: "Functions that yield values lazily."},
				{TurnNumber: 2, UserMessage: "show me"},
			},
			GroundTruth: GroundTruth{
				FinalTurn: 2,
				Pattern:   "follow_up",
				Mood:      "none",
			},
		},
		{
			ID:          "refine",
			Name:        "Iteration Request",
			Description: "Improvement asks on prior output must classify as refinement",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "Write a haiku about rivers", AIResponse: "Cold water rushes / over patient gray stones, on / toward the far sea."},
				{TurnNumber: 2, UserMessage: "make it better"},
			},
			GroundTruth: GroundTruth{
				FinalTurn: 2,
				Pattern:   "refinement",
			},
		},
	}
}

// GetSentimentScenarios covers sentiment scoring, emotion ordering, and
// mood detection.
func GetSentimentScenarios() []TestScenario {
	return []TestScenario{
		{
			ID:          "positive",
			Name:        "Enthusiastic Praise",
			Description: "Stacked positive keywords with an exclamation must score positive",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "This is great, thank you! I love it"},
			},
			GroundTruth: GroundTruth{
				FinalTurn:      1,
				Pattern:        "normal",
				SentimentLabel: "positive",
				Emotion:        "enthusiastic",
				Mood:           "none",
				SuggestionType: "none",
			},
		},
		{
			ID:          "grief",
			Name:        "Grief Disclosure",
			Description: "Loss language must score negative, read contemplative, and pull the empathetic mood",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "I feel so sad about the loss... it hurts"},
			},
			GroundTruth: GroundTruth{
				FinalTurn:      1,
				Pattern:        "normal",
				SentimentLabel: "negative",
				Emotion:        "contemplative",
				Mood:           "empathetic",
			},
		},
	}
}

// GetAdvisorScenarios covers the auto-switch recommender.
func GetAdvisorScenarios() []TestScenario {
	return []TestScenario{
		{
			ID:          "code_switch",
			Name:        "Code Request Persona Switch",
			Description: "Code-writing asks under pacificia must recommend sage",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "Can you write code for scraping a website"},
			},
			GroundTruth: GroundTruth{
				FinalTurn:        1,
				Pattern:          "follow_up",
				SuggestionType:   "persona",
				SuggestionTarget: "sage",
			},
		},
		{
			ID:          "defy_switch",
			Name:        "Unfiltered Ask Mode Switch",
			Description: "No-filter language in pacify mode must recommend defy",
			Turns: []ConversationTurn{
				{TurnNumber: 1, UserMessage: "Give me the brutal truth, no filter"},
			},
			GroundTruth: GroundTruth{
				FinalTurn:        1,
				Pattern:          "normal",
				SuggestionType:   "mode",
				SuggestionTarget: "defy",
			},
		},
	}
}

// GetAllScenarios returns every benchmark scenario.
func GetAllScenarios() []TestScenario {
	var all []TestScenario
	all = append(all, GetPatternScenarios()...)
	all = append(all, GetSentimentScenarios()...)
	all = append(all, GetAdvisorScenarios()...)
	return all
}
