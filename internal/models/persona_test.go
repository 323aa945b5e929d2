// ABOUTME: Tests for the persona registry and mode helpers
// ABOUTME: Verifies lookups, defaults, and capability flags
package models

import "testing"

func TestPersonaByName(t *testing.T) {
	p, ok := PersonaByName("sage")
	if !ok {
		t.Fatal("PersonaByName(sage) not found")
	}
	if p.Mode != ModePacify {
		t.Errorf("Mode = %v, want pacify", p.Mode)
	}
	if !p.TaskOriented {
		t.Error("sage should be task oriented")
	}

	if _, ok := PersonaByName("nobody"); ok {
		t.Error("PersonaByName(nobody) should not be found")
	}
}

func TestDefaultPersona(t *testing.T) {
	if got := DefaultPersona(ModePacify).Name; got != "pacificia" {
		t.Errorf("DefaultPersona(pacify) = %v, want pacificia", got)
	}
	if got := DefaultPersona(ModeDefy).Name; got != "void" {
		t.Errorf("DefaultPersona(defy) = %v, want void", got)
	}
}

func TestPersonasForMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want []string
	}{
		{ModePacify, []string{"pacificia", "sage"}},
		{ModeDefy, []string{"void", "rebel"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := PersonasForMode(tt.mode)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Name != tt.want[i] {
					t.Errorf("persona[%d] = %v, want %v", i, p.Name, tt.want[i])
				}
			}
		})
	}
}

func TestValidMode(t *testing.T) {
	if !ValidMode("pacify") || !ValidMode("defy") {
		t.Error("pacify and defy should be valid modes")
	}
	if ValidMode("chaos") {
		t.Error("chaos should not be a valid mode")
	}
}

func TestMoodCapability(t *testing.T) {
	for _, p := range Personas {
		want := p.Name == "pacificia"
		if p.SupportsMood != want {
			t.Errorf("%s SupportsMood = %v, want %v", p.Name, p.SupportsMood, want)
		}
	}
}
