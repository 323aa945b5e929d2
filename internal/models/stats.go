// ABOUTME: Stats aggregates per-user conversation usage numbers
// ABOUTME: Backed by grouped queries over the conversations table
package models

// Stats summarizes a user's stored conversation activity.
type Stats struct {
	Total           int            `json:"total"`
	PacifyCount     int            `json:"pacify_count"`
	DefyCount       int            `json:"defy_count"`
	PersonaUsage    map[string]int `json:"persona_usage"`
	AvgResponseTime float64        `json:"avg_response_time"`
	AvgWordCount    float64        `json:"avg_word_count"`
	CurrentMode     string         `json:"current_mode"`
	CurrentPersona  string         `json:"current_persona"`
}
