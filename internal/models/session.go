// ABOUTME: SessionState captures where a user left off between runs
// ABOUTME: Persisted as session_ prefixed keys in the preferences table
package models

// Session state field names as stored under the session_ key prefix.
const (
	SessionFieldMode      = "last_mode"
	SessionFieldPersona   = "last_persona"
	SessionFieldMood      = "last_mood"
	SessionFieldSwitches  = "mode_switches"
	SessionFieldTimestamp = "last_session_timestamp"
	SessionStatePrefix    = "session_"
)

// SessionStateFields is the bounded set of fields that round-trip through
// the preferences table. Anything outside this list is never persisted.
var SessionStateFields = []string{
	SessionFieldMode,
	SessionFieldPersona,
	SessionFieldMood,
	SessionFieldSwitches,
	SessionFieldTimestamp,
}

// SessionState is the saved end-of-session snapshot for a user. All fields
// are stored as strings; ModeSwitches is parsed back to an int on load.
type SessionState struct {
	LastMode             string `json:"last_mode"`
	LastPersona          string `json:"last_persona"`
	LastMood             string `json:"last_mood"`
	ModeSwitches         int    `json:"mode_switches"`
	LastSessionTimestamp string `json:"last_session_timestamp"`
}
