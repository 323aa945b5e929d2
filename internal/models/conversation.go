// ABOUTME: Conversation represents one stored user/assistant exchange
// ABOUTME: Immutable once written, scoped to a user and chat session
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Conversation is a single completed exchange between the user and a persona.
type Conversation struct {
	ID           int64     `json:"id"`
	UserID       int       `json:"user_id"`
	Timestamp    time.Time `json:"timestamp"`
	UserInput    string    `json:"user_input"`
	AIResponse   string    `json:"ai_response"`
	Mode         string    `json:"mode"`
	Persona      string    `json:"persona"`
	Mood         string    `json:"mood,omitempty"`
	SessionID    string    `json:"session_id"`
	WordCount    int       `json:"word_count"`
	ResponseTime float64   `json:"response_time"`
}

// NewConversation builds a Conversation ready for saving. The response word
// count is computed from whitespace-split tokens; callers that already know
// it can overwrite WordCount before saving.
func NewConversation(userID int, input, response, mode, persona, sessionID string) (*Conversation, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("user input cannot be empty")
	}
	return &Conversation{
		UserID:     userID,
		Timestamp:  time.Now().UTC(),
		UserInput:  input,
		AIResponse: response,
		Mode:       mode,
		Persona:    persona,
		SessionID:  sessionID,
		WordCount:  len(strings.Fields(response)),
	}, nil
}

// NewSessionID generates a unique chat session identifier.
func NewSessionID() string {
	return fmt.Sprintf("session_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
