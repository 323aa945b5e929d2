// ABOUTME: CLI command to delete a session's stored conversations
// ABOUTME: Destructive operation gated behind a --confirm flag
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	clearSessionID string
	clearConfirm   bool
)

// NewClearCmd creates clear command
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete a session's conversations",
		Long: `Delete all stored conversations from one session.

Session IDs appear in 'duality history --format json'. Preferences,
opinions, and emotional history are not touched.

Examples:
  duality clear --session session_20250301_101500_ab12cd34 --confirm`,
		RunE: runClear,
	}

	cmd.Flags().StringVar(&clearSessionID, "session", "", "Session ID to clear")
	cmd.Flags().BoolVar(&clearConfirm, "confirm", false, "Confirm the deletion")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearConfirm {
		fmt.Fprintf(cmd.OutOrStdout(), "This will delete all conversations in session %s\n", clearSessionID)
		fmt.Fprintf(cmd.OutOrStdout(), "Run with --confirm to proceed\n")
		return nil
	}

	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.ClearSession(cfg.UserID, clearSessionID)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d conversation(s)\n", deleted)
	}
	return nil
}
