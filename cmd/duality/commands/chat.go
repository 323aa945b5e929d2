// ABOUTME: Interactive chat REPL with slash commands and persona switching
// ABOUTME: Wires the memory engine and Groq client into a terminal session
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/core"
	"github.com/harper/duality/internal/llm"
	"github.com/harper/duality/internal/models"
	"github.com/harper/duality/internal/storage"
)

// NewChatCmd creates chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

Restores your last mode, persona, and mood, injects recent
conversation context into every prompt, and learns preferences
as you talk. Type /help inside the session for commands.

Examples:
  duality chat`,
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := llm.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("starting chat: %w (set GROQ_API_KEY in your .env)", err)
	}

	engine := core.NewEngine(store, cfg)
	if _, err := engine.RestoreSession(); err != nil && verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not restore session: %v\n", err)
	}

	session := &chatSession{
		engine:       engine,
		client:       client,
		db:           store,
		cfg:          cfg,
		out:          cmd.OutOrStdout(),
		in:           bufio.NewScanner(cmd.InOrStdin()),
		showMetadata: true,
		declined:     make(map[string]bool),
	}
	return session.run(cmd.Context())
}

// chatSession holds one REPL's state. Display toggles are session-local;
// everything the engine owns (mode, persona, mood, preferences) persists.
type chatSession struct {
	engine *core.Engine
	client *llm.Client
	db     *storage.Store
	cfg    *config.Config
	out    io.Writer
	in     *bufio.Scanner

	showMetadata   bool
	showTimestamps bool
	defyConfirmed  bool
	declined       map[string]bool
	lastInput      string
	exchanges      int
}

func (s *chatSession) run(ctx context.Context) error {
	s.showBanner()

	for {
		fmt.Fprint(s.out, "\nYou: ")
		input, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			s.finish()
			return nil
		}
		if input == "" {
			continue
		}

		lower := strings.ToLower(input)
		if lower == "exit" || lower == "quit" {
			s.finish()
			return nil
		}

		if input == "!!" {
			if s.lastInput == "" {
				fmt.Fprintln(s.out, "No previous input to repeat")
				continue
			}
			input = s.lastInput
			fmt.Fprintf(s.out, "Repeating: %s\n", input)
		}

		if strings.HasPrefix(input, "/") {
			s.dispatch(input)
			continue
		}

		s.lastInput = input
		s.respond(ctx, input)
	}
}

func (s *chatSession) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *chatSession) promptYes(question string) bool {
	fmt.Fprintf(s.out, "%s (y/N): ", question)
	line, ok := s.readLine()
	if !ok {
		return false
	}
	line = strings.ToLower(line)
	return line == "y" || line == "yes"
}

// finish runs the exit sequence: autosave, session state, farewell.
func (s *chatSession) finish() {
	userID := s.cfg.UserID
	if autosave, err := s.db.GetPreference(userID, models.PrefAutosave); err == nil && autosave == "on" {
		fmt.Fprintln(s.out, "Auto-saving conversation...")
		s.exportHistory("")
	}

	if err := s.engine.SaveSession(); err != nil && verbose {
		fmt.Fprintf(s.out, "Warning: could not save session: %v\n", err)
	}

	fmt.Fprintf(s.out, "\n%s\n", farewellMessage(
		s.engine.Persona().Name,
		s.exchanges,
		s.engine.ModeSwitches(),
		s.engine.Errors().Len() > 0,
	))
}

// respond runs one full exchange: plan, complete, record, display.
func (s *chatSession) respond(ctx context.Context, input string) {
	plan, err := s.engine.Plan(input)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	messages := llm.BuildMessages(s.engine.Persona(), llm.PromptOptions{
		Input:         input,
		Context:       plan.Context,
		Pattern:       plan.Pattern,
		Mode:          s.engine.Mode(),
		Mood:          s.engine.Mood(),
		LengthSetting: plan.LengthSetting,
	})

	response, latency, err := s.client.Complete(ctx, string(s.engine.Mode()), messages, plan.MaxTokens, plan.Temperature)
	if err != nil {
		errType := llm.ClassifyError(err)
		s.engine.Errors().Track(errType, err.Error())
		s.showError(errType, err)
		response = "I'm having trouble right now. Could you try that again?"
	}

	responseTime := latency.Seconds()
	weight, recordErr := s.engine.RecordExchange(plan, response, responseTime)
	if recordErr != nil && verbose {
		fmt.Fprintf(s.out, "Warning: could not record exchange: %v\n", recordErr)
	}
	s.exchanges++

	s.displayResponse(plan, response, responseTime, weight)
}

// dispatch routes one slash command.
func (s *chatSession) dispatch(input string) {
	rest := strings.TrimPrefix(input, "/")
	name, arg := rest, ""
	if idx := strings.IndexAny(rest, " \t"); idx >= 0 {
		name, arg = rest[:idx], strings.TrimSpace(rest[idx+1:])
	}
	name = strings.ToLower(name)

	switch name {
	case "help":
		s.showHelp()

	case "settings":
		if arg != "" {
			s.applySetting(strings.Fields(arg))
		} else {
			s.showSettings()
		}

	case "set":
		if arg != "" {
			s.applySetting(strings.Fields(arg))
		} else {
			fmt.Fprintln(s.out, "Usage: /set <option> <value>")
		}

	case "status":
		s.showStatus()

	case "stats":
		s.showSessionStats()

	case "clear":
		s.clearSession()

	case "setmode":
		if arg == "" {
			fmt.Fprintln(s.out, "Usage: /setmode <pacify|defy>")
		} else {
			s.switchMode(strings.ToLower(arg))
		}

	case "persona":
		if arg == "" {
			fmt.Fprintln(s.out, "Usage: /persona <name>")
		} else {
			s.switchPersona(strings.ToLower(arg))
		}

	case "mood":
		if arg == "" {
			fmt.Fprintf(s.out, "Available moods: %s\n", strings.Join(config.Moods, ", "))
		} else {
			s.setMood(strings.ToLower(arg))
		}

	case "history":
		limit := 5
		if n, err := strconv.Atoi(arg); err == nil && n > 0 {
			limit = n
		}
		s.showHistory(limit)

	case "search":
		if arg == "" {
			fmt.Fprintln(s.out, "Usage: /search <keyword>")
		} else {
			s.searchHistory(arg)
		}

	case "export":
		s.exportHistory(arg)

	case "opinions":
		s.showOpinions()

	default:
		fmt.Fprintf(s.out, "Unknown command: /%s\n", name)
		fmt.Fprintln(s.out, "Type /help for available commands")
	}
}

// applySetting handles /set <option> <value>.
func (s *chatSession) applySetting(args []string) {
	if len(args) == 1 && args[0] == "show" {
		s.showSettings()
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: /set <option> <value>")
		fmt.Fprintln(s.out, "Type /settings to see all options")
		return
	}

	option := strings.ToLower(args[0])
	value := strings.ToLower(args[1])
	userID := s.cfg.UserID

	switch option {
	case "length":
		if err := s.engine.SetLengthPreference(value); err != nil {
			fmt.Fprintln(s.out, "Invalid length. Use: quick, normal, or detailed")
			return
		}
		fmt.Fprintf(s.out, "Response length set to '%s'\n", value)

	case "temperature":
		temp, err := strconv.ParseFloat(value, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Temperature must be a number (e.g., 0.7)")
			return
		}
		if err := s.engine.SetTemperature(temp); err != nil {
			fmt.Fprintln(s.out, "Temperature must be between 0.1 and 1.0")
			return
		}
		fmt.Fprintf(s.out, "Temperature set to %v\n", temp)

	case "context":
		n, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintf(s.out, "Context must be a number (%d-%d)\n", config.MinContextLimit, config.MaxContextLimit)
			return
		}
		if n < config.MinContextLimit || n > config.MaxContextLimit {
			fmt.Fprintf(s.out, "Context must be between %d and %d\n", config.MinContextLimit, config.MaxContextLimit)
			return
		}
		if err := s.db.SetPreference(userID, models.PrefContextLimit, strconv.Itoa(n)); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(s.out, "Context window set to %d exchanges\n", n)

	case "metadata":
		if value != "on" && value != "off" {
			fmt.Fprintln(s.out, "Use 'on' or 'off'")
			return
		}
		s.showMetadata = value == "on"
		fmt.Fprintf(s.out, "Metadata display %s\n", strings.ToUpper(value))

	case "timestamps":
		if value != "on" && value != "off" {
			fmt.Fprintln(s.out, "Use 'on' or 'off'")
			return
		}
		s.showTimestamps = value == "on"
		fmt.Fprintf(s.out, "Timestamps %s\n", strings.ToUpper(value))

	case "autosave":
		if value != "on" && value != "off" {
			fmt.Fprintln(s.out, "Use 'on' or 'off'")
			return
		}
		if err := s.db.SetPreference(userID, models.PrefAutosave, value); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(s.out, "Auto-save %s\n", strings.ToUpper(value))

	default:
		fmt.Fprintf(s.out, "Unknown setting: %s\n", option)
	}
}

// switchMode handles /setmode, including the one-time defy confirmation.
func (s *chatSession) switchMode(newMode string) {
	if !models.ValidMode(newMode) {
		fmt.Fprintln(s.out, "Invalid mode. Use 'pacify' or 'defy'")
		return
	}
	if models.Mode(newMode) == s.engine.Mode() {
		fmt.Fprintf(s.out, "Already in %s mode\n", newMode)
		return
	}

	if models.Mode(newMode) == models.ModeDefy && !s.defyConfirmed {
		fmt.Fprint(s.out, defyWarning)
		if !s.promptYes("Continue?") {
			fmt.Fprintln(s.out, "Mode switch cancelled")
			return
		}
		s.defyConfirmed = true
	}

	oldMode := s.engine.Mode()
	if err := s.engine.SwitchMode(models.Mode(newMode)); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	// Declined suggestions lose their meaning after a switch
	s.declined = make(map[string]bool)

	userID := s.cfg.UserID
	_ = s.db.SetPreference(userID, models.PrefActiveMode, newMode)
	_ = s.db.SetPreference(userID, models.PrefActivePersona, s.engine.Persona().Name)
	if err := s.engine.SaveSession(); err != nil && verbose {
		fmt.Fprintf(s.out, "Warning: could not save session: %v\n", err)
	}

	s.showBanner()
	fmt.Fprintf(s.out, "Switched from %s to %s mode with persona '%s'\n",
		oldMode, strings.ToUpper(newMode), s.engine.Persona().Name)
}

// switchPersona handles /persona within the current mode.
func (s *chatSession) switchPersona(name string) {
	available := personaNamesFor(s.engine.Mode())

	if !containsString(available, name) {
		fmt.Fprintf(s.out, "Invalid persona. Available for %s: %s\n",
			s.engine.Mode(), strings.Join(available, ", "))
		return
	}
	if name == s.engine.Persona().Name {
		fmt.Fprintf(s.out, "Already using %s persona\n", name)
		return
	}

	if err := s.engine.SwitchPersona(name); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	s.declined = make(map[string]bool)
	_ = s.db.SetPreference(s.cfg.UserID, models.PrefActivePersona, name)
	if err := s.engine.SaveSession(); err != nil && verbose {
		fmt.Fprintf(s.out, "Warning: could not save session: %v\n", err)
	}

	fmt.Fprintf(s.out, "Switched to persona '%s'\n", name)
}

// setMood handles /mood for mood-capable personas.
func (s *chatSession) setMood(mood string) {
	if !s.engine.Persona().SupportsMood {
		fmt.Fprintf(s.out, "Moods only work with Pacificia. Current persona: %s\n", s.engine.Persona().Name)
		return
	}
	if !config.ValidMood(mood) {
		fmt.Fprintf(s.out, "Invalid mood. Available: %s\n", strings.Join(config.Moods, ", "))
		return
	}

	if err := s.engine.SetMood(mood); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if err := s.engine.SaveSession(); err != nil && verbose {
		fmt.Fprintf(s.out, "Warning: could not save session: %v\n", err)
	}
	fmt.Fprintf(s.out, "Mood set to '%s'\n", mood)
}

// clearSession deletes this session's conversations after confirmation.
func (s *chatSession) clearSession() {
	if !s.promptYes("Clear all conversation history?") {
		fmt.Fprintln(s.out, "Cancelled")
		return
	}

	if _, err := s.db.ClearSession(s.cfg.UserID, s.engine.SessionID()); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Session memory cleared")
}

// showHistory prints the last N conversations, oldest first.
func (s *chatSession) showHistory(limit int) {
	history, err := s.db.History(s.cfg.UserID, limit)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(s.out, "No conversation history yet.")
		return
	}

	fmt.Fprintf(s.out, "Recent Conversations (Last %d)\n\n", len(history))

	for i := len(history) - 1; i >= 0; i-- {
		conv := history[i]
		n := len(history) - i
		fmt.Fprintf(s.out, "%d. %s - %s - %s\n", n, conv.Mode, conv.Persona, conv.Timestamp.Format("15:04"))
		fmt.Fprintf(s.out, "   You: %s\n", truncate(conv.UserInput, 70))
		fmt.Fprintf(s.out, "   %s: %s\n\n", conv.Persona, truncate(conv.AIResponse, 70))
	}
}

// searchHistory searches stored conversations and shows the first ten hits.
func (s *chatSession) searchHistory(keyword string) {
	matches, err := s.db.SearchConversations(s.cfg.UserID, keyword, 100)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		fmt.Fprintf(s.out, "No conversations found containing '%s'\n", keyword)
		return
	}

	fmt.Fprintf(s.out, "Found %d conversations matching '%s'\n\n", len(matches), keyword)

	shown := matches
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for i, conv := range shown {
		fmt.Fprintf(s.out, "%d. %s - %s\n", i+1, conv.Mode, conv.Persona)
		fmt.Fprintf(s.out, "   You: %s\n", truncate(conv.UserInput, 70))
		fmt.Fprintf(s.out, "   %s: %s\n\n", conv.Persona, truncate(conv.AIResponse, 70))
	}

	if len(matches) > 10 {
		fmt.Fprintf(s.out, "... and %d more results\n", len(matches)-10)
	}
}

// exportHistory handles /export [file] and autosave on exit.
func (s *chatSession) exportHistory(filename string) {
	history, err := s.db.History(s.cfg.UserID, 100)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(history) == 0 {
		fmt.Fprintln(s.out, "No conversations to export")
		return
	}

	path := filename
	if path == "" {
		path = exportFilename(string(s.engine.Mode()), time.Now())
	}

	count, err := writeExport(path, string(s.engine.Mode()), s.engine.Persona().Name, history)
	if err != nil {
		fmt.Fprintf(s.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Exported %d conversations to %s\n", count, path)
}

// showOpinions prints the tracked opinion table.
func (s *chatSession) showOpinions() {
	opinions, err := s.db.AllOpinions(s.cfg.UserID, 0, 20)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(opinions) == 0 {
		fmt.Fprintln(s.out, "No opinions tracked yet.")
		return
	}

	fmt.Fprintln(s.out, "Tracked Opinions")
	for _, op := range opinions {
		fmt.Fprintf(s.out, "  %-25s %-35s %3.0f%%\n",
			truncate(op.Topic, 25), truncate(op.Stance, 35), op.Confidence*100)
	}
}

// showSessionStats prints overall statistics plus live session fields.
func (s *chatSession) showSessionStats() {
	stats, err := s.db.Stats(s.cfg.UserID)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(s.out, "\nConversation Statistics")
	fmt.Fprintf(s.out, "  Total Conversations:     %d\n", stats.Total)
	fmt.Fprintf(s.out, "  Pacify Mode:             %d\n", stats.PacifyCount)
	fmt.Fprintf(s.out, "  Defy Mode:               %d\n", stats.DefyCount)
	fmt.Fprintf(s.out, "  Current Mode:            %s\n", s.engine.Mode())
	fmt.Fprintf(s.out, "  Current Persona:         %s\n", s.engine.Persona().Name)
	if s.engine.Mood() != "" {
		fmt.Fprintf(s.out, "  Current Mood:            %s\n", s.engine.Mood())
	}
	fmt.Fprintf(s.out, "  Mode Switches (Session): %d\n", s.engine.ModeSwitches())
	if stats.AvgResponseTime > 0 {
		fmt.Fprintf(s.out, "  Avg Response Time:       %.2fs\n", stats.AvgResponseTime)
	}
	if stats.AvgWordCount > 0 {
		fmt.Fprintf(s.out, "  Avg Word Count:          %.0f\n", stats.AvgWordCount)
	}

	if len(stats.PersonaUsage) > 0 {
		fmt.Fprintln(s.out, "\n  Persona Usage:")
		for _, name := range sortedByUsage(stats.PersonaUsage) {
			fmt.Fprintf(s.out, "    %-12s %d\n", name, stats.PersonaUsage[name])
		}
	}
	fmt.Fprintln(s.out)
}

// personaNamesFor lists persona names available in a mode.
func personaNamesFor(mode models.Mode) []string {
	personas := models.PersonasForMode(mode)
	names := make([]string, len(personas))
	for i, p := range personas {
		names[i] = p.Name
	}
	return names
}

// sortedByUsage orders persona names by descending conversation count.
func sortedByUsage(usage map[string]int) []string {
	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if usage[names[i]] != usage[names[j]] {
			return usage[names[i]] > usage[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
