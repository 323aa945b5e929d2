// ABOUTME: Engine orchestrates a conversational turn end to end
// ABOUTME: History, pattern, suggestion, context, sentiment, mood, then persistence
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/models"
	"github.com/harper/duality/internal/storage"
)

// historyWindow is how many recent exchanges feed pattern detection and
// tracker updates.
const historyWindow = 20

// TurnPlan carries everything the caller needs to prompt the model and
// render one turn.
type TurnPlan struct {
	Input         string
	Pattern       models.Pattern
	Suggestion    *models.Suggestion
	Context       string
	Sentiment     models.Sentiment
	SuggestedMood string
	LengthSetting string
	MaxTokens     int
	Temperature   float64
	Greeting      bool
}

// DisplayMood returns the mood recorded with this turn: the detected mood
// shift when one fired, the sentiment emotion otherwise.
func (p *TurnPlan) DisplayMood() string {
	if p.SuggestedMood != "" {
		return p.SuggestedMood
	}
	return p.Sentiment.Emotion
}

// UsingContext reports whether conversation history was injected.
func (p *TurnPlan) UsingContext() bool {
	return p.Context != ""
}

// Engine drives the memory and personalization pipeline for one user's chat
// session. Single-owner: one Engine per session, never shared.
type Engine struct {
	store   *storage.Store
	cfg     *config.Config
	tracker *Tracker
	learner *Learner
	errors  *ErrorLog

	userID    int
	sessionID string
	mode      models.Mode
	persona   models.Persona
	mood      string

	lengthPreference  string
	customTemperature float64
	modeSwitches      int
}

// NewEngine creates an Engine in the default mode and persona.
func NewEngine(store *storage.Store, cfg *config.Config) *Engine {
	e := &Engine{
		store:     store,
		cfg:       cfg,
		tracker:   NewTracker(),
		learner:   NewLearner(store),
		errors:    NewErrorLog(cfg.MaxSessionErrors),
		userID:    cfg.UserID,
		sessionID: models.NewSessionID(),
		mode:      models.DefaultMode,
	}
	e.persona = models.DefaultPersona(e.mode)
	if e.persona.SupportsMood {
		e.mood = config.DefaultMood
	}
	return e
}

// Plan runs the pre-response pipeline for one input: pattern detection,
// switch suggestions, context assembly, tracker update, sentiment tracking,
// and mood detection.
func (e *Engine) Plan(userInput string) (*TurnPlan, error) {
	history, err := e.store.History(e.userID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	plan := &TurnPlan{
		Input:      userInput,
		Pattern:    DetectPattern(userInput, history, e.tracker),
		Suggestion: SuggestSwitch(userInput, e.mode, e.persona.Name),
		Greeting:   IsSimpleGreeting(userInput),
	}

	// Skip history injection on topic shifts and bare greetings; stale
	// context there invites meta-commentary instead of a fresh answer.
	if plan.Pattern != models.PatternShift && !plan.Greeting {
		context, err := e.store.RecentContext(e.userID, e.contextLimit(), string(e.mode))
		if err != nil {
			return nil, fmt.Errorf("failed to load context: %w", err)
		}
		plan.Context = context
	}

	if len(history) > 0 {
		e.tracker.Update(userInput, history[0].AIResponse)
	}

	plan.Sentiment = AnalyzeSentiment(userInput)
	if err := e.store.TrackEmotion(e.userID, plan.Sentiment.Score, plan.Sentiment.Emotion, snippet(userInput, 50)); err != nil {
		return nil, fmt.Errorf("failed to track emotion: %w", err)
	}

	plan.SuggestedMood = DetectMood(userInput, e.persona)

	length, err := e.activeLength()
	if err != nil {
		return nil, err
	}
	plan.LengthSetting = length
	plan.MaxTokens = config.TokenLimit(len(userInput), e.persona.TaskOriented, length)
	plan.Temperature = e.Temperature()

	return plan, nil
}

// RecordExchange persists the completed turn and runs the learning triggers.
// The stored mood is the detected mood shift when one fired, the sentiment
// emotion otherwise. Returns the learning weight ("major", "minor", or "").
func (e *Engine) RecordExchange(plan *TurnPlan, response string, responseTime float64) (string, error) {
	conv, err := models.NewConversation(e.userID, plan.Input, response, string(e.mode), e.persona.Name, e.sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to build conversation: %w", err)
	}
	conv.Mood = plan.DisplayMood()
	conv.ResponseTime = responseTime

	if err := e.store.SaveConversation(conv); err != nil {
		return "", fmt.Errorf("failed to save conversation: %w", err)
	}

	return e.learner.ObserveInput(e.userID, plan.Input)
}

// activeLength resolves the length setting for this turn: an explicit
// session preference wins; otherwise learned length feedback maps onto the
// hint scale (short becomes quick, long becomes detailed).
func (e *Engine) activeLength() (string, error) {
	if e.lengthPreference != "" && e.lengthPreference != "normal" {
		return e.lengthPreference, nil
	}

	style, err := e.learner.StylePreferences(e.userID)
	if err != nil {
		return "", err
	}
	switch style["length"] {
	case "short":
		return "quick", nil
	case "long":
		return "detailed", nil
	}
	return "normal", nil
}

// contextLimit returns how many exchanges to inject: the user's
// context_limit preference when set and numeric, the configured default
// otherwise.
func (e *Engine) contextLimit() int {
	pref, err := e.store.GetPreference(e.userID, models.PrefContextLimit)
	if err == nil && pref != "" {
		if n, err := strconv.Atoi(pref); err == nil && n > 0 {
			return n
		}
	}
	return e.cfg.ContextLimit
}

// RestoreSession applies persisted cross-session state: mode, persona, mood,
// and the switch counter. Returns the restored state, or nil when this is
// the user's first session. Fields that fail validation fall back to
// defaults individually.
func (e *Engine) RestoreSession() (*models.SessionState, error) {
	state, err := e.store.LoadSessionState(e.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	if state == nil {
		return nil, nil
	}

	if models.ValidMode(state.LastMode) {
		e.mode = models.Mode(state.LastMode)
	}
	e.persona = models.DefaultPersona(e.mode)
	if p, ok := models.PersonaByName(state.LastPersona); ok && p.Mode == e.mode {
		e.persona = p
	}
	if e.persona.SupportsMood {
		e.mood = config.DefaultMood
		if config.ValidMood(state.LastMood) {
			e.mood = state.LastMood
		}
	} else {
		e.mood = ""
	}
	e.modeSwitches = state.ModeSwitches

	return state, nil
}

// SaveSession persists the session fields for the next run.
func (e *Engine) SaveSession() error {
	state := &models.SessionState{
		LastMode:             string(e.mode),
		LastPersona:          e.persona.Name,
		LastMood:             e.mood,
		ModeSwitches:         e.modeSwitches,
		LastSessionTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := e.store.SaveSessionState(e.userID, state); err != nil {
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

// SwitchPersona changes persona within the current mode and resets tracked
// context.
func (e *Engine) SwitchPersona(name string) error {
	p, ok := models.PersonaByName(name)
	if !ok || p.Mode != e.mode {
		return fmt.Errorf("invalid persona %q for mode %q", name, e.mode)
	}

	e.persona = p
	e.tracker.Reset()
	if p.SupportsMood {
		if e.mood == "" {
			e.mood = config.DefaultMood
		}
	} else {
		e.mood = ""
	}
	return nil
}

// SwitchMode changes mode, moving to that mode's default persona and
// counting the switch.
func (e *Engine) SwitchMode(mode models.Mode) error {
	if !models.ValidMode(string(mode)) {
		return fmt.Errorf("invalid mode %q", mode)
	}
	if mode == e.mode {
		return nil
	}

	e.mode = mode
	e.persona = models.DefaultPersona(mode)
	e.modeSwitches++
	e.tracker.Reset()
	if e.persona.SupportsMood {
		e.mood = config.DefaultMood
	} else {
		e.mood = ""
	}
	return nil
}

// SetMood sets the active mood. Only mood-capable personas accept one.
func (e *Engine) SetMood(mood string) error {
	if !e.persona.SupportsMood {
		return fmt.Errorf("persona %q does not support moods", e.persona.Name)
	}
	if !config.ValidMood(mood) {
		return fmt.Errorf("unknown mood %q", mood)
	}
	e.mood = mood
	return nil
}

// SetLengthPreference sets the session's response length.
func (e *Engine) SetLengthPreference(length string) error {
	switch length {
	case "quick", "normal", "detailed":
		e.lengthPreference = length
		return nil
	}
	return fmt.Errorf("length must be one of: quick, normal, detailed")
}

// SetTemperature overrides the per-mode default temperature.
func (e *Engine) SetTemperature(temp float64) error {
	if temp < config.TemperatureMin || temp > config.TemperatureMax {
		return fmt.Errorf("temperature must be between %.1f and %.1f", config.TemperatureMin, config.TemperatureMax)
	}
	e.customTemperature = temp
	return nil
}

// Temperature returns the effective temperature for the current mode.
func (e *Engine) Temperature() float64 {
	if e.customTemperature != 0 {
		return e.customTemperature
	}
	return config.TemperatureFor(string(e.mode))
}

// Mode returns the active mode.
func (e *Engine) Mode() models.Mode { return e.mode }

// Persona returns the active persona.
func (e *Engine) Persona() models.Persona { return e.persona }

// Mood returns the active mood, empty for personas without mood support.
func (e *Engine) Mood() string { return e.mood }

// SessionID returns this session's identifier.
func (e *Engine) SessionID() string { return e.sessionID }

// ModeSwitches returns how many times the mode changed across sessions.
func (e *Engine) ModeSwitches() int { return e.modeSwitches }

// LengthPreference returns the explicit session length setting, or "".
func (e *Engine) LengthPreference() string { return e.lengthPreference }

// Errors returns the session error log.
func (e *Engine) Errors() *ErrorLog { return e.errors }

// Topic returns the tracked conversation topic, or "".
func (e *Engine) Topic() string { return e.tracker.CurrentTopic }

// ContextSummary renders the tracker state for display.
func (e *Engine) ContextSummary() string { return e.tracker.Summary() }

// IsSimpleGreeting reports whether the text is a bare greeting. Persona
// names are stripped first so "hey void" still counts.
func IsSimpleGreeting(text string) bool {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(words) > 3 {
		return false
	}

	personaNames := models.PersonaNames()
	var filtered []string
	for _, w := range words {
		isPersona := false
		for _, name := range personaNames {
			if w == name {
				isPersona = true
				break
			}
		}
		if !isPersona {
			filtered = append(filtered, w)
		}
	}

	remaining := strings.Join(filtered, " ")
	for _, greeting := range config.SimpleGreetings {
		if strings.Contains(remaining, greeting) {
			return true
		}
	}
	return false
}

// WordCountWarning reports when a response overruns its soft target by more
// than half again. Empty string when the length is fine.
func WordCountWarning(response, lengthSetting string) string {
	wordCount := len(strings.Fields(response))
	target := config.WordCountTarget(lengthSetting)
	if wordCount > target*3/2 {
		return fmt.Sprintf("Response is %d words (target: ~%d)", wordCount, target)
	}
	return ""
}

// snippet truncates text to at most n runes for compact storage.
func snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
