// ABOUTME: CLI command to show conversation statistics
// ABOUTME: Totals, mode split, averages, and persona usage
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show conversation statistics",
		Long: `Show statistics across all stored conversations.

Includes totals, the pacify/defy split, average response time and
word count, and per-persona usage.

Examples:
  duality stats
  duality stats --format json`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(cfg.UserID)
	if err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	if stats.Total == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No conversations yet\n")
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "METRIC\tVALUE\n")
		fmt.Fprintf(w, "------\t-----\n")
		fmt.Fprintf(w, "Total Conversations\t%d\n", stats.Total)
		fmt.Fprintf(w, "Pacify Mode\t%d\n", stats.PacifyCount)
		fmt.Fprintf(w, "Defy Mode\t%d\n", stats.DefyCount)
		if stats.CurrentMode != "" {
			fmt.Fprintf(w, "Current Mode\t%s\n", stats.CurrentMode)
		}
		if stats.CurrentPersona != "" {
			fmt.Fprintf(w, "Current Persona\t%s\n", stats.CurrentPersona)
		}
		if stats.AvgResponseTime > 0 {
			fmt.Fprintf(w, "Avg Response Time\t%.2fs\n", stats.AvgResponseTime)
		}
		if stats.AvgWordCount > 0 {
			fmt.Fprintf(w, "Avg Word Count\t%.0f\n", stats.AvgWordCount)
		}
		w.Flush()

		if len(stats.PersonaUsage) > 0 {
			type usage struct {
				name  string
				count int
			}
			usages := make([]usage, 0, len(stats.PersonaUsage))
			for name, count := range stats.PersonaUsage {
				usages = append(usages, usage{name, count})
			}
			sort.Slice(usages, func(i, j int) bool {
				if usages[i].count != usages[j].count {
					return usages[i].count > usages[j].count
				}
				return usages[i].name < usages[j].name
			})

			fmt.Fprintf(cmd.OutOrStdout(), "\n")
			pw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(pw, "PERSONA\tCONVERSATIONS\n")
			fmt.Fprintf(pw, "-------\t-------------\n")
			for _, u := range usages {
				fmt.Fprintf(pw, "%s\t%d\n", u.name, u.count)
			}
			pw.Flush()
		}
	}

	return nil
}
