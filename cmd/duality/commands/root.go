// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the duality command tree and shared output settings
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duality",
		Short: "Persona-driven chat with persistent memory",
		Long: `
███████╗ ██╗   ██╗ █████╗ ██╗     ██╗████████╗██╗   ██╗
██╔═══██╗██║   ██║██╔══██╗██║     ██║╚══██╔══╝╚██╗ ██╔╝
██║   ██║██║   ██║███████║██║     ██║   ██║    ╚████╔╝
██║   ██║██║   ██║██╔══██║██║     ██║   ██║     ╚██╔╝
███████╔╝╚██████╔╝██║  ██║███████╗██║   ██║      ██║
╚══════╝  ╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝   ╚═╝      ╚═╝

Two modes, four personas, one memory.

Duality is a persona-driven chat assistant that remembers. Every
exchange lands in a local SQLite database, feeds preference learning
and opinion tracking, and comes back as conversation context in
later sessions. Pacify mode is warm and measured, Defy mode is
blunt and unfiltered.

Start chatting with 'duality chat', or inspect what it remembers
with 'duality history', 'duality stats', and 'duality prefs'.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Register subcommands
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewPrefsCmd())
	cmd.AddCommand(NewOpinionsCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewMoodCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewClearCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
