// ABOUTME: Session-local bounded error log, never persisted
// ABOUTME: FIFO of the most recent failures for diagnostics inside a chat session
package core

import "time"

// SessionError is one recorded failure
type SessionError struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
}

// ErrorLog keeps the most recent session errors in memory. Exceeding the
// bound drops the oldest entry. Purely observational: it never fails.
type ErrorLog struct {
	max     int
	entries []SessionError
}

// NewErrorLog creates an ErrorLog holding at most max entries.
func NewErrorLog(max int) *ErrorLog {
	if max <= 0 {
		max = 5
	}
	return &ErrorLog{max: max}
}

// Track appends one error, trimming to the bound.
func (l *ErrorLog) Track(errType, message string) {
	l.entries = append(l.entries, SessionError{
		Timestamp: time.Now().UTC(),
		Type:      errType,
		Message:   message,
	})
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Recent returns up to limit of the newest entries, oldest first.
func (l *ErrorLog) Recent(limit int) []SessionError {
	if limit <= 0 || limit > len(l.entries) {
		limit = len(l.entries)
	}
	return l.entries[len(l.entries)-limit:]
}

// Clear drops all entries.
func (l *ErrorLog) Clear() {
	l.entries = nil
}

// Len returns the number of retained entries.
func (l *ErrorLog) Len() int {
	return len(l.entries)
}
