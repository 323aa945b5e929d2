// ABOUTME: CLI command to list recent conversations
// ABOUTME: Shows stored exchanges with mode, persona, and timestamps
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyMode  string
)

// NewHistoryCmd creates history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent conversations",
		Long: `List recent conversations from the memory store.

Shows stored exchanges newest first, with the mode and persona
that produced each response.

Examples:
  duality history
  duality history --limit 25
  duality history --mode defy
  duality history --format json`,
		RunE: runHistory,
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum conversations to show")
	cmd.Flags().StringVar(&historyMode, "mode", "", "Filter by mode (pacify or defy)")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(historyLimit, "limit"); err != nil {
		return err
	}
	if historyMode != "" && !containsString([]string{"pacify", "defy"}, historyMode) {
		return fmt.Errorf("mode must be pacify or defy, got %q", historyMode)
	}

	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	conversations, err := store.History(cfg.UserID, historyLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if historyMode != "" {
		filtered := conversations[:0]
		for _, conv := range conversations {
			if conv.Mode == historyMode {
				filtered = append(filtered, conv)
			}
		}
		conversations = filtered
	}

	if len(conversations) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No conversations found\n")
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(conversations, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "WHEN\tMODE\tPERSONA\tYOU\tRESPONSE\n")
		fmt.Fprintf(w, "----\t----\t-------\t---\t--------\n")

		for _, conv := range conversations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				formatTime(conv.Timestamp),
				conv.Mode,
				conv.Persona,
				truncate(conv.UserInput, 40),
				truncate(conv.AIResponse, 40),
			)
		}

		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d conversation(s)\n", len(conversations))
		}
	}

	return nil
}
