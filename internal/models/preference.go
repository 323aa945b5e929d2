// ABOUTME: Preference types for explicit settings and learned behaviors
// ABOUTME: Learned entries carry confidence reinforced by repeated evidence
package models

import "time"

// Preference is an explicit user setting, one value per (user, key).
type Preference struct {
	UserID  int       `json:"user_id"`
	Key     string    `json:"key"`
	Value   string    `json:"value"`
	SetDate time.Time `json:"set_date"`
}

// LearnedPreference is an inferred setting. Confidence stays in [0,1] and is
// averaged with incoming evidence on each reinforcement.
type LearnedPreference struct {
	UserID             int       `json:"user_id"`
	Key                string    `json:"key"`
	Value              string    `json:"value"`
	Confidence         float64   `json:"confidence"`
	LearnedDate        time.Time `json:"learned_date"`
	ReinforcementCount int       `json:"reinforcement_count"`
}

// Well-known preference keys consumed by the CLI and engine.
const (
	PrefActiveMode    = "active_mode"
	PrefActivePersona = "active_persona"
	PrefContextLimit  = "context_limit"
	PrefAutosave      = "autosave"
)
