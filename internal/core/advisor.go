// ABOUTME: Auto-switch recommendations for personas and modes
// ABOUTME: Ordered rule tables; persona suggestions outrank mode suggestions
package core

import (
	"strings"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/models"
)

// switchRule pairs a trigger predicate with a recommendation. Rules are
// evaluated in declaration order; the first one that both matches and
// recommends wins.
type switchRule struct {
	matches   func(inputLower string, wordCount int) bool
	recommend func(mode models.Mode, persona string) (target, reason string)
}

var personaRules = []switchRule{
	{
		// Code/build requests pull conversationalists toward their
		// task-oriented counterpart in the same mode.
		matches: func(inputLower string, wordCount int) bool {
			return wordCount > 3 && containsAny(inputLower, config.CodeRequestSignals)
		},
		recommend: func(mode models.Mode, persona string) (string, string) {
			switch persona {
			case "pacificia":
				return "sage", "Sage specializes in guided code creation"
			case "void":
				return "rebel", "Rebel excels at technical implementation"
			}
			return "", ""
		},
	},
	{
		matches: func(inputLower string, wordCount int) bool {
			return wordCount > 5 && containsAny(inputLower, config.TaskSignals)
		},
		recommend: func(mode models.Mode, persona string) (string, string) {
			if persona == "pacificia" {
				return "sage", "Sage is better for hands-on tasks"
			}
			return "", ""
		},
	},
	{
		// Explanatory questions pull task-oriented personas back to the
		// conversational one, unless the question is itself about code.
		matches: func(inputLower string, wordCount int) bool {
			return containsAny(inputLower, config.HelpSignals) && !strings.Contains(inputLower, "code")
		},
		recommend: func(mode models.Mode, persona string) (string, string) {
			if persona != "rebel" && persona != "sage" {
				return "", ""
			}
			if mode == models.ModePacify {
				return "pacificia", "Pacificia excels at explanations"
			}
			return "void", "Void provides direct technical insight"
		},
	},
}

var modeRules = []switchRule{
	{
		matches: func(inputLower string, wordCount int) bool {
			return containsAny(inputLower, config.DefySignals)
		},
		recommend: func(mode models.Mode, persona string) (string, string) {
			if mode == models.ModePacify {
				return string(models.ModeDefy), "Defy mode offers unfiltered responses"
			}
			return "", ""
		},
	},
	{
		matches: func(inputLower string, wordCount int) bool {
			return containsAny(inputLower, config.TechnicalDefySignals)
		},
		recommend: func(mode models.Mode, persona string) (string, string) {
			if mode == models.ModePacify {
				return string(models.ModeDefy), "Defy mode has no technical restrictions"
			}
			return "", ""
		},
	},
	{
		matches: func(inputLower string, wordCount int) bool {
			return containsAny(inputLower, config.PacifySignals)
		},
		recommend: func(mode models.Mode, persona string) (string, string) {
			if mode == models.ModeDefy {
				return string(models.ModePacify), "Pacify mode offers collaborative guidance"
			}
			return "", ""
		},
	},
}

// SuggestSwitch evaluates the persona rules, then the mode rules, against one
// input. Returns at most one suggestion; persona wins when both would fire.
// Stateless: the same input re-suggests every time, the caller is responsible
// for muting declined suggestions.
func SuggestSwitch(userInput string, mode models.Mode, persona string) *models.Suggestion {
	inputLower := strings.ToLower(userInput)
	wordCount := len(strings.Fields(userInput))

	if s := evaluate(personaRules, models.SwitchPersona, inputLower, wordCount, mode, persona); s != nil {
		return s
	}
	return evaluate(modeRules, models.SwitchMode, inputLower, wordCount, mode, persona)
}

func evaluate(rules []switchRule, kind models.SwitchType, inputLower string, wordCount int, mode models.Mode, persona string) *models.Suggestion {
	for _, rule := range rules {
		if !rule.matches(inputLower, wordCount) {
			continue
		}
		target, reason := rule.recommend(mode, persona)
		if target == "" {
			continue
		}
		current := persona
		if kind == models.SwitchMode {
			current = string(mode)
		}
		return &models.Suggestion{
			Type:        kind,
			Current:     current,
			Recommended: target,
			Reason:      reason,
		}
	}
	return nil
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
