// ABOUTME: CLI command to view and update the user profile
// ABOUTME: Shows the stored name and free-form profile fields
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	profileSetName  string
	profileSetField []string
)

// NewProfileCmd creates profile command
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and manage user profile",
		Long: `View and manage your user profile.

The profile stores your name and free-form fields the assistant
picks up during chats (or that you set here). Profile fields feed
personalization across sessions.

Examples:
  duality profile
  duality profile --format json
  duality profile set --name "Harper"
  duality profile set --field "occupation=software engineer"`,
		RunE: runProfileShow,
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		Long: `Update profile fields.

Examples:
  duality profile set --name "Harper"
  duality profile set --field "location=Chicago" --field "occupation=engineer"`,
		RunE: runProfileSet,
	}

	setCmd.Flags().StringVar(&profileSetName, "name", "", "Set user name")
	setCmd.Flags().StringArrayVar(&profileSetField, "field", nil, "Set a key=value field (can be repeated)")

	cmd.AddCommand(setCmd)

	return cmd
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	profile, err := store.Profile(cfg.UserID)
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	if len(profile) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No profile found. Create one with: duality profile set --name \"Your Name\"\n")
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	keys := make([]string, 0, len(profile))
	for key := range profile {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FIELD\tVALUE\n")
	fmt.Fprintf(w, "-----\t-----\n")
	// Name first when present
	if name, ok := profile["name"]; ok {
		fmt.Fprintf(w, "name\t%s\n", name)
	}
	for _, key := range keys {
		if key == "name" {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", key, truncate(profile[key], 60))
	}
	w.Flush()

	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	if profileSetName == "" && len(profileSetField) == 0 {
		return fmt.Errorf("nothing to set: use --name or --field")
	}

	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if profileSetName != "" {
		if err := store.SetUserName(cfg.UserID, profileSetName); err != nil {
			return fmt.Errorf("setting name: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Name set to %q\n", profileSetName)
		}
	}

	for _, field := range profileSetField {
		key, value, ok := splitField(field)
		if !ok {
			return fmt.Errorf("field must be key=value, got %q", field)
		}
		if err := store.SetProfileField(cfg.UserID, key, value); err != nil {
			return fmt.Errorf("setting field %q: %w", key, err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		}
	}

	return nil
}

// splitField parses key=value, rejecting blank keys.
func splitField(s string) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '=' {
			if i == 0 {
				return "", "", false
			}
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
