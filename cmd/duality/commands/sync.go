// ABOUTME: Sync commands for Charm cloud synchronization
// ABOUTME: Pushes and pulls preferences, profile, and session state
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/duality/internal/charm"
)

// NewSyncCmd creates the sync command group
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Manage Charm cloud synchronization",
		Long: `Manage synchronization with Charm cloud.

Duality can mirror preferences, profile fields, and session state
to Charm KV via SSH keys, so personalization follows you across
devices linked to the same Charm account. Conversations stay local.`,
	}

	cmd.AddCommand(newSyncStatusCmd())
	cmd.AddCommand(newSyncPushCmd())
	cmd.AddCommand(newSyncPullCmd())

	return cmd
}

func newSyncStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status and connection info",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			client, err := charm.NewClient(&charm.Config{Host: cfg.CharmHost, DBName: cfg.CharmDBName})
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}
			defer client.Close()

			id, err := client.ID()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Status: Not connected")
				fmt.Fprintln(cmd.OutOrStdout(), "Check your SSH keys with 'charm keys'")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Status: Connected")
			fmt.Fprintf(cmd.OutOrStdout(), "User ID: %s\n", id)
			fmt.Fprintf(cmd.OutOrStdout(), "Host: %s\n", cfg.CharmHost)

			return nil
		},
	}
}

func newSyncPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push local preferences and profile to Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			client, err := charm.NewClient(&charm.Config{Host: cfg.CharmHost, DBName: cfg.CharmDBName})
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}
			defer client.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Pushing...")
			pushed, err := charm.NewSyncer(client, store, cfg.UserID).Push()
			if err != nil {
				return fmt.Errorf("push failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d item(s)\n", pushed)
			return nil
		},
	}
}

func newSyncPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Pull preferences and profile from Charm cloud",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			client, err := charm.NewClient(&charm.Config{Host: cfg.CharmHost, DBName: cfg.CharmDBName})
			if err != nil {
				return fmt.Errorf("failed to connect to Charm: %w", err)
			}
			defer client.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "Pulling...")
			applied, err := charm.NewSyncer(client, store, cfg.UserID).Pull()
			if err != nil {
				return fmt.Errorf("pull failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d item(s)\n", applied)
			return nil
		},
	}
}
