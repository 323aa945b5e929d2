// ABOUTME: Conversation pattern detection with fixed precedence
// ABOUTME: Classifies each input as spam, strict, shift, refinement, follow_up, or normal
package core

import (
	"strings"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/models"
)

// DetectPattern classifies one input. History is newest first. Precedence is
// fixed and ordering matters: spam beats strict beats shift beats refinement
// beats follow-up; anything else is normal.
func DetectPattern(userInput string, history []models.Conversation, tracker *Tracker) models.Pattern {
	inputLower := strings.ToLower(userInput)

	// Spam: the three most recent user inputs are identical
	if len(history) >= 3 {
		if history[0].UserInput == history[1].UserInput && history[1].UserInput == history[2].UserInput {
			return models.PatternSpam
		}
	}

	for _, ind := range config.StrictIndicators {
		if strings.Contains(inputLower, ind) {
			return models.PatternStrict
		}
	}

	for _, sig := range config.TopicShiftSignals {
		if strings.Contains(inputLower, sig) {
			return models.PatternShift
		}
	}

	if tracker != nil && tracker.DetectRefinement(userInput) && len(history) > 0 {
		return models.PatternRefinement
	}

	if tracker != nil && tracker.DetectFollowUp(userInput) {
		return models.PatternFollowUp
	}

	return models.PatternNormal
}
