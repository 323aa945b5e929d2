// ABOUTME: CLI command to show or set the persisted mood
// ABOUTME: Moods carry into the next chat session via session state

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/models"
)

// NewMoodCmd creates mood command
func NewMoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood [mood]",
		Short: "Show or set the persisted mood",
		Long: `Show or set the mood carried into the next chat session.

Moods only apply to mood-capable personas (Pacificia). Without an
argument the current mood and the available moods are shown.

Examples:
  duality mood
  duality mood poetic`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMood,
	}

	return cmd
}

func runMood(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	state, err := store.LoadSessionState(cfg.UserID)
	if err != nil {
		return fmt.Errorf("loading session state: %w", err)
	}
	if state == nil {
		state = &models.SessionState{
			LastMode:    string(models.DefaultMode),
			LastPersona: models.DefaultPersona(models.DefaultMode).Name,
			LastMood:    config.DefaultMood,
		}
	}

	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if outputFormat == "json" {
			payload := map[string]interface{}{
				"mood":      state.LastMood,
				"persona":   state.LastPersona,
				"available": config.Moods,
			}
			data, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling mood: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		current := state.LastMood
		if current == "" {
			current = "none"
		}
		fmt.Fprintf(out, "Current mood: %s\n", current)
		fmt.Fprintf(out, "Available: %s\n", strings.Join(config.Moods, ", "))
		return nil
	}

	mood := strings.ToLower(args[0])

	persona, ok := models.PersonaByName(state.LastPersona)
	if !ok {
		persona = models.DefaultPersona(models.DefaultMode)
	}
	if !persona.SupportsMood {
		return fmt.Errorf("moods only work with Pacificia; current persona is %s", persona.Name)
	}
	if !config.ValidMood(mood) {
		return fmt.Errorf("invalid mood %q (available: %s)", mood, strings.Join(config.Moods, ", "))
	}

	state.LastMood = mood
	if err := store.SaveSessionState(cfg.UserID, state); err != nil {
		return fmt.Errorf("saving session state: %w", err)
	}

	if !quiet {
		fmt.Fprintf(out, "Mood set to '%s'\n", mood)
	}
	return nil
}
