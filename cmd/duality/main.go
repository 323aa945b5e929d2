// ABOUTME: Main entry point for the Duality CLI
// ABOUTME: Wires build metadata into the command tree and runs it
package main

import (
	"fmt"
	"os"

	"github.com/harper/duality/cmd/duality/commands"
)

// Build metadata, overridden by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
