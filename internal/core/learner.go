// ABOUTME: Learner infers user preferences from interaction phrasing
// ABOUTME: Ordered trigger rules feed confidence-weighted learned preferences
package core

import (
	"fmt"
	"strings"

	"github.com/harper/duality/internal/storage"
)

// styleMinConfidence gates which learned preferences shape responses.
const styleMinConfidence = 0.7

// learningRule maps trigger phrases to one learned-preference observation.
// First matching rule wins, so stronger feedback sits higher in the table.
type learningRule struct {
	phrases    []string
	key        string
	value      string
	confidence float64
	weight     string
}

var learningRules = []learningRule{
	{
		phrases:    []string{"too long", "shorter", "brief", "concise", "tldr"},
		key:        "response_length",
		value:      "short",
		confidence: 0.85,
		weight:     "major",
	},
	{
		phrases:    []string{"more detail", "elaborate", "explain more", "tell me more"},
		key:        "response_length",
		value:      "long",
		confidence: 0.8,
		weight:     "major",
	},
	{
		phrases:    []string{"be serious", "stop joking", "not funny"},
		key:        "tone",
		value:      "serious",
		confidence: 0.8,
		weight:     "major",
	},
	{
		phrases:    []string{"be funny", "joke", "lighten up"},
		key:        "tone",
		value:      "playful",
		confidence: 0.8,
		weight:     "major",
	},
	{
		phrases:    []string{"thanks", "helpful", "perfect", "great"},
		key:        "positive_feedback",
		value:      "current_style",
		confidence: 0.7,
		weight:     "minor",
	},
}

// Learner observes user inputs and records inferred preferences
type Learner struct {
	store *storage.Store
}

// NewLearner creates a Learner backed by the given store
func NewLearner(store *storage.Store) *Learner {
	return &Learner{store: store}
}

// ObserveInput checks the input against the trigger rules and records the
// first match as a learned-preference observation. Returns the weight of
// what was learned ("major", "minor") or empty string when nothing fired.
func (l *Learner) ObserveInput(userID int, userInput string) (string, error) {
	inputLower := strings.ToLower(userInput)

	for _, rule := range learningRules {
		if !containsAny(inputLower, rule.phrases) {
			continue
		}
		if err := l.store.LearnPreference(userID, rule.key, rule.value, rule.confidence); err != nil {
			return "", fmt.Errorf("failed to learn preference: %w", err)
		}
		return rule.weight, nil
	}

	return "", nil
}

// StylePreferences returns the learned length and tone preferences that have
// earned enough confidence to shape responses. Keys: "length", "tone".
func (l *Learner) StylePreferences(userID int) (map[string]string, error) {
	applied := make(map[string]string)

	length, err := l.store.LearnedPreference(userID, "response_length", styleMinConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to load length preference: %w", err)
	}
	if length != nil {
		applied["length"] = length.Value
	}

	tone, err := l.store.LearnedPreference(userID, "tone", styleMinConfidence)
	if err != nil {
		return nil, fmt.Errorf("failed to load tone preference: %w", err)
	}
	if tone != nil {
		applied["tone"] = tone.Value
	}

	return applied, nil
}
