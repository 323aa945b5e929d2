// ABOUTME: CLI command to view and manage user preferences
// ABOUTME: Shows manual settings alongside learned preferences with confidence
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewPrefsCmd creates the prefs command group
func NewPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "View and manage preferences",
		Long: `View and manage stored preferences.

Manual preferences are set explicitly (here or via /set in chat).
Learned preferences are inferred from feedback during conversations
and carry a confidence score.

Examples:
  duality prefs
  duality prefs --format json
  duality prefs set active_mode defy
  duality prefs forget response_length`,
		RunE: runPrefsShow,
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference",
		Args:  cobra.ExactArgs(2),
		RunE:  runPrefsSet,
	}

	forgetCmd := &cobra.Command{
		Use:   "forget <key>",
		Short: "Delete a preference",
		Args:  cobra.ExactArgs(1),
		RunE:  runPrefsForget,
	}

	cmd.AddCommand(setCmd)
	cmd.AddCommand(forgetCmd)

	return cmd
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	manual, err := store.AllPreferences(cfg.UserID)
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}

	learned, err := store.AllLearnedPreferences(cfg.UserID)
	if err != nil {
		return fmt.Errorf("loading learned preferences: %w", err)
	}

	if len(manual) == 0 && len(learned) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No preferences stored\n")
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		payload := map[string]interface{}{
			"preferences": manual,
			"learned":     learned,
		}
		jsonData, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(manual) > 0 {
		keys := make([]string, 0, len(manual))
		for key := range manual {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "KEY\tVALUE\n")
		fmt.Fprintf(w, "---\t-----\n")
		for _, key := range keys {
			fmt.Fprintf(w, "%s\t%s\n", key, truncate(manual[key], 50))
		}
		w.Flush()
	}

	if len(learned) > 0 {
		if len(manual) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n")
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "LEARNED\tVALUE\tCONFIDENCE\tREINFORCED\n")
		fmt.Fprintf(w, "-------\t-----\t----------\t----------\n")
		for _, pref := range learned {
			fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%dx\n",
				pref.Key,
				truncate(pref.Value, 40),
				pref.Confidence*100,
				pref.ReinforcementCount,
			)
		}
		w.Flush()
	}

	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	key, value := args[0], args[1]
	if err := store.SetPreference(cfg.UserID, key, value); err != nil {
		return fmt.Errorf("setting preference: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	}
	return nil
}

func runPrefsForget(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	key := args[0]
	if err := store.DeletePreference(cfg.UserID, key); err != nil {
		return fmt.Errorf("deleting preference: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Forgot %s\n", key)
	}
	return nil
}
