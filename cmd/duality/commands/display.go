// ABOUTME: Terminal rendering for the chat session
// ABOUTME: Banner art, greetings, response metadata, and error messages
package commands

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/core"
	"github.com/harper/duality/internal/models"
)

const pacifyArt = `
██████╗  █████╗  ██████╗██╗███████╗██╗   ██╗
██╔══██╗██╔══██╗██╔════╝██║██╔════╝╚██╗ ██╔╝
██████╔╝███████║██║     ██║█████╗   ╚████╔╝
██╔═══╝ ██╔══██║██║     ██║██╔══╝    ╚██╔╝
██║     ██║  ██║╚██████╗██║██║        ██║
╚═╝     ╚═╝  ╚═╝ ╚═════╝╚═╝╚═╝        ╚═╝`

const defyArt = `
██████╗ ███████╗███████╗██╗   ██╗
██╔══██╗██╔════╝██╔════╝╚██╗ ██╔╝
██║  ██║█████╗  █████╗   ╚████╔╝
██║  ██║██╔══╝  ██╔══╝    ╚██╔╝
██████╔╝███████╗██║        ██║
╚═════╝ ╚══════╝╚═╝        ╚═╝`

const defyWarning = `
WARNING: DEFY MODE

This mode has NO content restrictions.
- Uncensored responses
- No refusal training
- Technical freedom
- Controversial topics allowed

The AI will follow your lead without moral lectures.

`

// Greeting pools per mode. The mode_switch variants fire more often the
// more the user has been flipping between modes.
var standardGreetings = map[models.Mode][]string{
	models.ModePacify: {
		"Welcome back. Ready to chat?",
		"Hey there. What's on your mind?",
		"Good to see you again.",
	},
	models.ModeDefy: {
		"Back for more? Let's go.",
		"Defy mode active. What do you need?",
		"Ready when you are.",
	},
}

var switchGreetings = map[models.Mode][]string{
	models.ModePacify: {
		"Back in Pacify mode? Finding balance?",
		"Pacify again, huh? I'm here.",
		"Switching gears, I see. What do you need?",
	},
	models.ModeDefy: {
		"Defy mode again? Someone's having a day.",
		"Three times in Defy? Rough week?",
		"You know where the good stuff is.",
		"Back to chaos, huh? Let's roll.",
	},
}

// Switch-greeting probability thresholds.
const (
	modeSwitchThresholdLow  = 3
	modeSwitchThresholdHigh = 5
	greetingRandomness      = 0.15
)

func modeArt(mode models.Mode) string {
	if mode == models.ModeDefy {
		return defyArt
	}
	return pacifyArt
}

// showBanner prints the mode art, greeting, and status line.
func (s *chatSession) showBanner() {
	fmt.Fprintln(s.out, modeArt(s.engine.Mode()))
	fmt.Fprintf(s.out, "[ %s ]\n", s.engine.Persona().Name)

	greeting := s.returnGreeting()
	if greeting == "" {
		greeting = contextualGreeting(s.engine.Mode(), s.engine.ModeSwitches())
	}
	fmt.Fprintf(s.out, "\n%s\n\n", greeting)

	status := fmt.Sprintf("Mode: %s | Persona: %s",
		strings.ToUpper(string(s.engine.Mode())), s.engine.Persona().Name)
	if s.engine.Persona().SupportsMood {
		status += fmt.Sprintf(" | Mood: %s", s.engine.Mood())
	}
	fmt.Fprintln(s.out, status)
	fmt.Fprintln(s.out, "Type /help for commands or start chatting")
}

// returnGreeting builds a welcome-back line from the last session's
// timestamp, or returns empty when no special greeting applies.
func (s *chatSession) returnGreeting() string {
	state, err := s.db.LoadSessionState(s.cfg.UserID)
	if err != nil || state == nil || state.LastSessionTimestamp == "" {
		return ""
	}
	last, err := time.Parse(time.RFC3339, state.LastSessionTimestamp)
	if err != nil {
		return ""
	}
	return greetingForGap(time.Since(last))
}

// greetingForGap maps time away to a welcome-back line.
func greetingForGap(gap time.Duration) string {
	switch {
	case gap > 14*24*time.Hour:
		return "It's been a while. Good to have you back."
	case gap > 3*24*time.Hour:
		return "Welcome back. It's been a few days."
	case gap >= 0 && gap < time.Hour:
		return "Back so soon? Let's pick up where we left off."
	default:
		return ""
	}
}

func contextualGreeting(mode models.Mode, modeSwitches int) string {
	var chance float64
	switch {
	case modeSwitches >= modeSwitchThresholdHigh:
		chance = 0.6
	case modeSwitches >= modeSwitchThresholdLow:
		chance = 0.4
	default:
		chance = greetingRandomness
	}

	pool := standardGreetings[mode]
	if rand.Float64() < chance {
		pool = switchGreetings[mode]
	}
	if len(pool) == 0 {
		return "Welcome back."
	}
	return pool[rand.IntN(len(pool))]
}

// displayResponse prints the response with its metadata footer, then runs
// the post-turn prompts: switch suggestions and learning notifications.
func (s *chatSession) displayResponse(plan *core.TurnPlan, response string, responseTime float64, weight string) {
	fmt.Fprintf(s.out, "\n%s: %s\n", s.engine.Persona().Name, response)

	if s.showMetadata {
		parts := []string{
			fmt.Sprintf("Time: %.2fs", responseTime),
			fmt.Sprintf("Words: %d", len(strings.Fields(response))),
		}
		if plan.UsingContext() {
			parts = append(parts, "Using context")
		}
		if topic := s.engine.Topic(); topic != "" {
			parts = append(parts, "Topic: "+topic)
		}
		if plan.Pattern != models.PatternNormal && plan.Pattern != models.PatternFollowUp {
			parts = append(parts, "Pattern: "+string(plan.Pattern))
		}
		if s.engine.Persona().SupportsMood {
			parts = append(parts, "Mood: "+plan.DisplayMood())
		}
		if s.showTimestamps {
			parts = append(parts, time.Now().Format("15:04:05"))
		}
		if warning := core.WordCountWarning(response, plan.LengthSetting); warning != "" {
			parts = append(parts, "Note: "+warning)
		}
		fmt.Fprintln(s.out, strings.Join(parts, " | "))
	}

	if plan.Suggestion != nil && !s.declined[plan.Suggestion.Key()] {
		s.offerSwitch(plan.Suggestion)
	}

	if weight == "major" {
		if pref, err := s.db.LearnedPreference(s.cfg.UserID, "response_length", 0); err == nil && pref != nil {
			fmt.Fprintf(s.out, "Noticed you prefer %s responses. Adjusting...\n", pref.Value)
		}
	}
}

// offerSwitch prompts once for a recommended persona or mode switch.
// Declines are remembered so the same suggestion stops nagging.
func (s *chatSession) offerSwitch(sug *models.Suggestion) {
	fmt.Fprintf(s.out, "\nSuggestion: %s. Switch to %s? (y/N): ", sug.Reason, sug.Recommended)
	answer, ok := s.readLine()
	if !ok {
		return
	}
	answer = strings.ToLower(answer)
	if answer == "y" || answer == "yes" {
		switch sug.Type {
		case models.SwitchPersona:
			s.switchPersona(sug.Recommended)
		case models.SwitchMode:
			s.switchMode(sug.Recommended)
		}
		return
	}
	s.declined[sug.Key()] = true
	fmt.Fprintln(s.out, "Okay, staying with current setup.")
}

// showError prints a friendly error line with a contextual hint.
func (s *chatSession) showError(errType string, err error) {
	errType = refineErrorType(errType, err)
	fmt.Fprintf(s.out, "\nError: %s\n", apiErrorMessage(errType))

	switch errType {
	case "auth_failed":
		fmt.Fprintln(s.out, "Hint: Make sure GROQ_API_KEY is set in your .env file")
	case "network":
		fmt.Fprintln(s.out, "Hint: Check your internet connection and try again")
	case "rate_limit":
		fmt.Fprintln(s.out, "Hint: Wait 60 seconds or check your API quota")
	default:
		fmt.Fprintf(s.out, "Technical details: %v\n", err)
	}
}

// refineErrorType sharpens the tracked class with message sniffing so the
// displayed hint matches what actually went wrong.
func refineErrorType(errType string, err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "api key"):
		return "auth_failed"
	case strings.Contains(msg, "rate") || strings.Contains(msg, "limit"):
		return "rate_limit"
	}
	return errType
}

func apiErrorMessage(errType string) string {
	switch errType {
	case "api_error", "api_timeout":
		return "I'm having trouble connecting to the AI service right now."
	case "network":
		return "Network connection issue detected."
	case "auth_failed":
		return "Authentication problem - check your API key in .env file."
	case "rate_limit":
		return "Rate limit reached - please wait a moment."
	default:
		return "Something unexpected happened."
	}
}

// farewellMessage builds the exit line from session shape.
func farewellMessage(persona string, exchanges, modeSwitches int, hadErrors bool) string {
	if exchanges == 0 {
		return "Leaving already? Goodbye."
	}

	var base string
	switch persona {
	case "pacificia":
		base = "Take care of yourself. I'll remember where we left off."
	case "sage":
		base = "Good session. The code will still be here tomorrow."
	case "void":
		base = "Done. Come back when you have more questions."
	case "rebel":
		base = "Later. You know where to find me."
	default:
		base = "Goodbye."
	}

	if hadErrors {
		base += " Sorry about the rough patches."
	}
	if modeSwitches >= modeSwitchThresholdLow {
		base += " That was a lot of mode switching."
	}
	return base
}

func (s *chatSession) showHelp() {
	fmt.Fprint(s.out, `
DUALITY - COMMAND REFERENCE

CORE COMMANDS
  /help                    Show this help menu
  /status                  Show current configuration
  /stats                   Conversation statistics
  /clear                   Clear session memory

MODE & PERSONALITY
  /setmode <pacify|defy>   Switch AI mode
  /persona <name>          Change persona (pacificia, sage, void, rebel)
  /mood <mood>             Set mood (Pacificia only)

HISTORY & DATA
  /history [N]             Show last N conversations (default: 5)
  /search <keyword>        Search conversation history
  /export [file.ext]       Save conversation (txt, json, md)
  /opinions                View tracked opinions

CONFIGURATION
  /settings                Show all current settings
  /set <option> <value>    Adjust settings (see /settings for options)

SHORTCUTS
  !!                       Repeat last input
  exit, quit               End session

Tip: The AI suggests a better persona or mode for your task
`)
}

func (s *chatSession) showSettings() {
	userID := s.cfg.UserID

	length := s.engine.LengthPreference()
	if length == "" {
		length = "normal"
	}
	contextPref, _ := s.db.GetPreference(userID, models.PrefContextLimit)
	if contextPref == "" {
		contextPref = strconv.Itoa(s.cfg.ContextLimit)
	}
	autosave, _ := s.db.GetPreference(userID, models.PrefAutosave)
	if autosave == "" {
		autosave = "off"
	}

	fmt.Fprintf(s.out, `
Current Settings:

Response Control:
  Length:       %s
  Temperature:  %.2f
  Context:      %s exchanges

Display:
  Metadata:     %s
  Timestamps:   %s

Features:
  Auto-save:    %s

Available Options:
  /set length <quick|normal|detailed>
  /set temperature <0.1-1.0>
  /set context <%d-%d>
  /set metadata <on|off>
  /set timestamps <on|off>
  /set autosave <on|off>

Example: /set length detailed
`,
		length,
		s.engine.Temperature(),
		contextPref,
		onOff(s.showMetadata),
		onOff(s.showTimestamps),
		strings.ToUpper(autosave),
		config.MinContextLimit, config.MaxContextLimit,
	)
}

func (s *chatSession) showStatus() {
	fmt.Fprintf(s.out, "\nCurrent Configuration:\n\n")
	fmt.Fprintf(s.out, "Mode:           %s\n", strings.ToUpper(string(s.engine.Mode())))
	fmt.Fprintf(s.out, "Persona:        %s\n", s.engine.Persona().Name)
	if s.engine.Persona().SupportsMood {
		fmt.Fprintf(s.out, "Mood:           %s\n", s.engine.Mood())
	}
	fmt.Fprintf(s.out, "Session ID:     %s\n", s.engine.SessionID())
	fmt.Fprintf(s.out, "Mode Switches:  %d\n", s.engine.ModeSwitches())
	if summary := s.engine.ContextSummary(); summary != "" {
		fmt.Fprintf(s.out, "Context:        %s\n", summary)
	}
	fmt.Fprintf(s.out, "Metadata:       %s\n", onOff(s.showMetadata))
	fmt.Fprintf(s.out, "Timestamps:     %s\n", onOff(s.showTimestamps))
	fmt.Fprintf(s.out, "\nModels:\n")
	fmt.Fprintf(s.out, "Pacify Model:   %s\n", s.cfg.PacifyModel)
	fmt.Fprintf(s.out, "Defy Model:     %s\n", s.cfg.DefyModel)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
