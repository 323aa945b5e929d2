// ABOUTME: Opinion represents a stance the assistant has formed on a topic
// ABOUTME: One stance per (user, topic), reinforced like learned preferences
package models

import "time"

// Opinion is a per-user stance on a topic with reinforcement-averaged confidence.
type Opinion struct {
	UserID        int       `json:"user_id"`
	Topic         string    `json:"topic"`
	Stance        string    `json:"stance"`
	Confidence    float64   `json:"confidence"`
	FormedDate    time.Time `json:"formed_date"`
	LastMentioned time.Time `json:"last_mentioned"`
}
