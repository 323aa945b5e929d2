// ABOUTME: Version command to display build information
// ABOUTME: Shows version, commit hash, and build date
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build details, injected from main at startup.
var versionInfo = struct {
	Version string
	Commit  string
	Date    string
}{"dev", "none", "unknown"}

// SetVersion records build information for the version command.
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date for the Duality CLI.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Duality %s\nCommit: %s\nBuilt:  %s\n",
				versionInfo.Version, versionInfo.Commit, versionInfo.Date)
		},
	}
}
