// ABOUTME: CLI command to export conversation history to a file
// ABOUTME: Writes text, markdown, or JSON depending on the file extension
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/duality/internal/models"
)

var (
	exportOutput string
	exportLimit  int
)

// NewExportCmd creates export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export conversation history to a file",
		Long: `Export stored conversations to a file.

The format follows the file extension: .json for structured data,
.md for markdown, anything else for plain text. Without --output a
timestamped text file is written to the current directory.

Examples:
  duality export
  duality export --output chat.md
  duality export --output backup.json --limit 200`,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportOutput, "output", "", "Output file (extension selects the format)")
	cmd.Flags().IntVar(&exportLimit, "limit", 100, "Maximum conversations to export")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(exportLimit, "limit"); err != nil {
		return err
	}

	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := store.History(cfg.UserID, exportLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	if len(history) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No conversations to export\n")
		}
		return nil
	}

	mode := string(models.DefaultMode)
	persona := models.DefaultPersona(models.DefaultMode).Name
	if state, err := store.LoadSessionState(cfg.UserID); err == nil && state != nil {
		if state.LastMode != "" {
			mode = state.LastMode
		}
		if state.LastPersona != "" {
			persona = state.LastPersona
		}
	}

	path := exportOutput
	if path == "" {
		path = exportFilename(mode, time.Now())
	}

	count, err := writeExport(path, mode, persona, history)
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d conversations to %s\n", count, path)
	}
	return nil
}

// exportFilename builds the default timestamped text filename.
func exportFilename(mode string, now time.Time) string {
	return fmt.Sprintf("conversation_%s_%s.txt", mode, now.Format("20060102_150405"))
}

// exportFormat picks the output format from the file extension.
func exportFormat(path string) string {
	switch {
	case strings.HasSuffix(path, ".json"):
		return "json"
	case strings.HasSuffix(path, ".md"):
		return "md"
	default:
		return "txt"
	}
}

// writeExport writes history to path in the extension's format. History
// arrives newest first and is written oldest first. Returns how many
// conversations were written.
func writeExport(path, mode, persona string, history []models.Conversation) (int, error) {
	ordered := make([]models.Conversation, len(history))
	for i, conv := range history {
		ordered[len(history)-1-i] = conv
	}

	var content []byte
	switch exportFormat(path) {
	case "json":
		type exportConv struct {
			Timestamp string `json:"timestamp"`
			User      string `json:"user"`
			AI        string `json:"ai"`
			Mode      string `json:"mode"`
			Persona   string `json:"persona"`
			Mood      string `json:"mood,omitempty"`
			WordCount int    `json:"word_count"`
		}
		payload := struct {
			Mode          string       `json:"mode"`
			Persona       string       `json:"persona"`
			ExportDate    string       `json:"export_date"`
			Conversations []exportConv `json:"conversations"`
		}{
			Mode:       mode,
			Persona:    persona,
			ExportDate: time.Now().Format(time.RFC3339),
		}
		for _, conv := range ordered {
			payload.Conversations = append(payload.Conversations, exportConv{
				Timestamp: conv.Timestamp.Format(time.RFC3339),
				User:      conv.UserInput,
				AI:        conv.AIResponse,
				Mode:      conv.Mode,
				Persona:   conv.Persona,
				Mood:      conv.Mood,
				WordCount: conv.WordCount,
			})
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return 0, fmt.Errorf("marshaling export: %w", err)
		}
		content = data

	case "md":
		var b strings.Builder
		b.WriteString("# Duality - Conversation Export\n\n")
		fmt.Fprintf(&b, "**Mode:** %s | **Persona:** %s\n\n", mode, persona)
		b.WriteString("---\n\n")
		for i, conv := range ordered {
			fmt.Fprintf(&b, "## [%d] %s\n\n", i+1, conv.Timestamp.Format(time.RFC3339))
			fmt.Fprintf(&b, "**Mode:** %s | **Persona:** %s\n\n", conv.Mode, conv.Persona)
			fmt.Fprintf(&b, "**You:** %s\n\n", conv.UserInput)
			fmt.Fprintf(&b, "**%s:** %s\n\n", conv.Persona, conv.AIResponse)
			b.WriteString("---\n\n")
		}
		content = []byte(b.String())

	default:
		var b strings.Builder
		b.WriteString("Duality - Conversation Export\n")
		fmt.Fprintf(&b, "Mode: %s | Persona: %s\n", mode, persona)
		b.WriteString(strings.Repeat("=", 60) + "\n\n")
		for i, conv := range ordered {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, conv.Timestamp.Format(time.RFC3339))
			fmt.Fprintf(&b, "Mode: %s | Persona: %s\n", conv.Mode, conv.Persona)
			fmt.Fprintf(&b, "You: %s\n", conv.UserInput)
			fmt.Fprintf(&b, "%s: %s\n", conv.Persona, conv.AIResponse)
			b.WriteString(strings.Repeat("-", 60) + "\n\n")
		}
		content = []byte(b.String())
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return 0, fmt.Errorf("writing export: %w", err)
	}
	return len(ordered), nil
}
