// ABOUTME: Tests for mood detection and tie breaking
// ABOUTME: Only mood-capable personas ever get a detected mood

package core

import (
	"testing"

	"github.com/harper/duality/internal/models"
)

func mustPersona(t *testing.T, name string) models.Persona {
	t.Helper()
	p, ok := models.PersonaByName(name)
	if !ok {
		t.Fatalf("persona %q not registered", name)
	}
	return p
}

func TestDetectMood(t *testing.T) {
	pacificia := mustPersona(t, "pacificia")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"joke request is witty", "tell me a joke", "witty"},
		{"multiple hits outrank single", "why does life have meaning", "philosophical"},
		{"sad input is empathetic", "my dog is sick and i feel awful", "empathetic"},
		{"no keywords", "zzz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMood(tt.input, pacificia); got != tt.want {
				t.Errorf("DetectMood(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectMoodTieBreaksOnDeclarationOrder(t *testing.T) {
	pacificia := mustPersona(t, "pacificia")

	// "funny" scores witty, and its "fun" substring scores cheeky; the
	// earlier rule keeps the tie.
	if got := DetectMood("that was funny", pacificia); got != "witty" {
		t.Errorf("DetectMood(tie) = %q, want witty", got)
	}
}

func TestDetectMoodRequiresMoodSupport(t *testing.T) {
	for _, name := range []string{"sage", "void", "rebel"} {
		persona := mustPersona(t, name)
		if got := DetectMood("tell me a joke", persona); got != "" {
			t.Errorf("DetectMood for %s = %q, want empty", name, got)
		}
	}
}
