// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Consolidates duplicate code from history, search, and chat commands
package commands

import (
	"fmt"
	"slices"
	"time"
)

// truncate shortens s to max runes, marking cut text with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// formatTime renders a timestamp as a short relative age, falling back
// to a plain date once it is more than a week old.
func formatTime(t time.Time) string {
	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// containsString reports whether item appears in slice.
func containsString(slice []string, item string) bool {
	return slices.Contains(slice, item)
}

// validatePositiveInt rejects zero or negative flag values.
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
