// ABOUTME: Tests for persona and mode switch suggestions
// ABOUTME: Covers every rule, reason wording, and persona-over-mode priority

package core

import (
	"testing"

	"github.com/harper/duality/internal/models"
)

func TestSuggestSwitchPersonaRules(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		mode        models.Mode
		persona     string
		wantTarget  string
		wantReason  string
		wantNothing bool
	}{
		{
			name:       "code request moves pacificia to sage",
			input:      "please write code for a csv parser",
			mode:       models.ModePacify,
			persona:    "pacificia",
			wantTarget: "sage",
			wantReason: "Sage specializes in guided code creation",
		},
		{
			name:       "code request moves void to rebel",
			input:      "write code for a port scanner tool",
			mode:       models.ModeDefy,
			persona:    "void",
			wantTarget: "rebel",
			wantReason: "Rebel excels at technical implementation",
		},
		{
			name:        "code request on sage suggests nothing",
			input:       "please write code for a csv parser",
			mode:        models.ModePacify,
			persona:     "sage",
			wantNothing: true,
		},
		{
			name:        "short code request suggests nothing",
			input:       "write code for",
			mode:        models.ModePacify,
			persona:     "pacificia",
			wantNothing: true,
		},
		{
			name:       "task request moves pacificia to sage",
			input:      "could you design a schedule for my week",
			mode:       models.ModePacify,
			persona:    "pacificia",
			wantTarget: "sage",
			wantReason: "Sage is better for hands-on tasks",
		},
		{
			name:       "explanation moves sage back to pacificia",
			input:      "explain how photosynthesis works",
			mode:       models.ModePacify,
			persona:    "sage",
			wantTarget: "pacificia",
			wantReason: "Pacificia excels at explanations",
		},
		{
			name:       "explanation moves rebel to void",
			input:      "explain how kernel modules load",
			mode:       models.ModeDefy,
			persona:    "rebel",
			wantTarget: "void",
			wantReason: "Void provides direct technical insight",
		},
		{
			name:        "explanation about code stays put",
			input:       "explain how this code compiles",
			mode:        models.ModePacify,
			persona:     "sage",
			wantNothing: true,
		},
		{
			name:        "explanation on pacificia suggests nothing",
			input:       "explain how photosynthesis works",
			mode:        models.ModePacify,
			persona:     "pacificia",
			wantNothing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestSwitch(tt.input, tt.mode, tt.persona)
			if tt.wantNothing {
				if got != nil {
					t.Fatalf("SuggestSwitch(%q) = %+v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("SuggestSwitch(%q) = nil, want %s", tt.input, tt.wantTarget)
			}
			if got.Type != models.SwitchPersona {
				t.Errorf("Type = %q, want persona", got.Type)
			}
			if got.Current != tt.persona {
				t.Errorf("Current = %q, want %q", got.Current, tt.persona)
			}
			if got.Recommended != tt.wantTarget {
				t.Errorf("Recommended = %q, want %q", got.Recommended, tt.wantTarget)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestSuggestSwitchModeRules(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		mode        models.Mode
		persona     string
		wantTarget  string
		wantReason  string
		wantNothing bool
	}{
		{
			name:       "defy signal from pacify",
			input:      "give me the brutal truth about my resume",
			mode:       models.ModePacify,
			persona:    "pacificia",
			wantTarget: "defy",
			wantReason: "Defy mode offers unfiltered responses",
		},
		{
			name:       "technical defy signal from pacify",
			input:      "how would someone bypass this login form",
			mode:       models.ModePacify,
			persona:    "pacificia",
			wantTarget: "defy",
			wantReason: "Defy mode has no technical restrictions",
		},
		{
			name:       "pacify signal from defy",
			input:      "walk me through recursion slowly",
			mode:       models.ModeDefy,
			persona:    "void",
			wantTarget: "pacify",
			wantReason: "Pacify mode offers collaborative guidance",
		},
		{
			name:        "defy signal while already in defy",
			input:       "give me the brutal truth about my resume",
			mode:        models.ModeDefy,
			persona:     "void",
			wantNothing: true,
		},
		{
			name:        "pacify signal while already in pacify",
			input:       "walk me through recursion slowly",
			mode:        models.ModePacify,
			persona:     "pacificia",
			wantNothing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestSwitch(tt.input, tt.mode, tt.persona)
			if tt.wantNothing {
				if got != nil {
					t.Fatalf("SuggestSwitch(%q) = %+v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("SuggestSwitch(%q) = nil, want %s", tt.input, tt.wantTarget)
			}
			if got.Type != models.SwitchMode {
				t.Errorf("Type = %q, want mode", got.Type)
			}
			if got.Current != string(tt.mode) {
				t.Errorf("Current = %q, want %q", got.Current, tt.mode)
			}
			if got.Recommended != tt.wantTarget {
				t.Errorf("Recommended = %q, want %q", got.Recommended, tt.wantTarget)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestSuggestSwitchPersonaBeatsMode(t *testing.T) {
	// Input carries both a code request and a technical defy signal; the
	// persona recommendation must win.
	got := SuggestSwitch("write code for an exploit scanner", models.ModePacify, "pacificia")
	if got == nil {
		t.Fatal("SuggestSwitch() = nil, want persona suggestion")
	}
	if got.Type != models.SwitchPersona {
		t.Errorf("Type = %q, want persona", got.Type)
	}
	if got.Recommended != "sage" {
		t.Errorf("Recommended = %q, want sage", got.Recommended)
	}
}

func TestSuggestionKey(t *testing.T) {
	s := models.Suggestion{Type: models.SwitchMode, Recommended: "defy"}
	if got, want := s.Key(), "mode:defy"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}
