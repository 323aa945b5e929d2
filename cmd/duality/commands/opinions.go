// ABOUTME: CLI command to list formed opinions
// ABOUTME: Shows topics, stances, and confidence from conversation history
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	opinionsMinConfidence float64
	opinionsLimit         int
)

// NewOpinionsCmd creates opinions command
func NewOpinionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opinions",
		Short: "List opinions formed from conversations",
		Long: `List opinions the assistant has formed about discussed topics.

Each opinion carries a stance and a confidence score that grows
as the topic recurs.

Examples:
  duality opinions
  duality opinions --min-confidence 0.8
  duality opinions --format json`,
		RunE: runOpinions,
	}

	cmd.Flags().Float64Var(&opinionsMinConfidence, "min-confidence", 0, "Only show opinions at or above this confidence")
	cmd.Flags().IntVar(&opinionsLimit, "limit", 20, "Maximum opinions to show")

	return cmd
}

func runOpinions(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(opinionsLimit, "limit"); err != nil {
		return err
	}
	if opinionsMinConfidence < 0 || opinionsMinConfidence > 1 {
		return fmt.Errorf("min-confidence must be between 0 and 1, got %v", opinionsMinConfidence)
	}

	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	opinions, err := store.AllOpinions(cfg.UserID, opinionsMinConfidence, opinionsLimit)
	if err != nil {
		return fmt.Errorf("loading opinions: %w", err)
	}

	if len(opinions) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No opinions formed yet\n")
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(opinions, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "TOPIC\tSTANCE\tCONFIDENCE\n")
		fmt.Fprintf(w, "-----\t------\t----------\n")

		for _, op := range opinions {
			fmt.Fprintf(w, "%s\t%s\t%.0f%%\n",
				truncate(op.Topic, 30),
				truncate(op.Stance, 45),
				op.Confidence*100,
			)
		}

		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d opinion(s)\n", len(opinions))
		}
	}

	return nil
}
