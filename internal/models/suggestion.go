// ABOUTME: Suggestion describes a recommended persona or mode switch
// ABOUTME: Persona suggestions outrank mode suggestions within a turn
package models

// SwitchType distinguishes persona from mode recommendations.
type SwitchType string

const (
	SwitchPersona SwitchType = "persona"
	SwitchMode    SwitchType = "mode"
)

// Suggestion is one auto-switch recommendation with its rationale. The
// recommender is stateless; tracking declined suggestions is the caller's job.
type Suggestion struct {
	Type        SwitchType `json:"type"`
	Current     string     `json:"current"`
	Recommended string     `json:"recommended"`
	Reason      string     `json:"reason"`
}

// Key returns a stable identity for decline tracking.
func (s Suggestion) Key() string {
	return string(s.Type) + ":" + s.Recommended
}
