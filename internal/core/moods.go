// ABOUTME: Mood detection from user input for mood-capable personas
// ABOUTME: Keyword-hit scoring with declaration-order tie breaking
package core

import (
	"strings"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/models"
)

// DetectMood returns the mood whose keyword list scores the most hits in the
// input, or empty string when nothing scores or the persona has no mood
// support. Ties go to the rule declared first, so detection stays
// deterministic.
func DetectMood(userInput string, persona models.Persona) string {
	if !persona.SupportsMood {
		return ""
	}

	inputLower := strings.ToLower(userInput)

	best := ""
	bestScore := 0
	for _, rule := range config.MoodRules {
		score := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(inputLower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = rule.Mood
			bestScore = score
		}
	}

	return best
}
