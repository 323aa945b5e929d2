// ABOUTME: CLI command to search stored conversations
// ABOUTME: Keyword search over user inputs and responses
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search conversation history",
		Long: `Search stored conversations by keyword.

Matches against both your inputs and the assistant's responses,
newest first.

Examples:
  duality search "heron"
  duality search "csv parser" --limit 20
  duality search heron --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum results to show")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	query := strings.Join(args, " ")

	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.SearchConversations(cfg.UserID, query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching conversations: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for %q\n", query)
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "WHEN\tMODE\tYOU\tRESPONSE\n")
		fmt.Fprintf(w, "----\t----\t---\t--------\n")

		for _, conv := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				formatTime(conv.Timestamp),
				conv.Mode,
				truncate(conv.UserInput, 45),
				truncate(conv.AIResponse, 45),
			)
		}

		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d result(s) for %q\n", len(results), query)
		}
	}

	return nil
}
