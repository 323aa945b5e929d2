// ABOUTME: Preference storage operations for SQLite
// ABOUTME: Explicit settings, confidence-weighted learned preferences, session state
package sqlite

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/harper/duality/internal/models"
)

// PreferenceStore handles explicit user preferences
type PreferenceStore struct {
	db *DB
}

// NewPreferenceStore creates a new PreferenceStore
func NewPreferenceStore(db *DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Set stores a preference, replacing any existing value for the key.
func (s *PreferenceStore) Set(userID int, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (user_id, key, value, set_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, key) DO UPDATE SET
			value = excluded.value,
			set_date = excluded.set_date
	`, userID, key, value, time.Now().UTC())
	return err
}

// Get returns the preference value, or empty string when unset.
func (s *PreferenceStore) Get(userID int, key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM preferences WHERE user_id = ? AND key = ?",
		userID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// All returns every preference for the user, keyed by preference name.
func (s *PreferenceStore) All(userID int) (map[string]string, error) {
	rows, err := s.db.Query(
		"SELECT key, value FROM preferences WHERE user_id = ? ORDER BY key",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	prefs := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		prefs[key] = value
	}

	return prefs, rows.Err()
}

// Delete removes a preference. Deleting an absent key is not an error.
func (s *PreferenceStore) Delete(userID int, key string) error {
	_, err := s.db.Exec(
		"DELETE FROM preferences WHERE user_id = ? AND key = ?",
		userID, key,
	)
	return err
}

// SaveSessionState persists cross-session continuity fields as prefixed
// preference rows.
func (s *PreferenceStore) SaveSessionState(userID int, state *models.SessionState) error {
	fields := map[string]string{
		models.SessionFieldMode:      state.LastMode,
		models.SessionFieldPersona:   state.LastPersona,
		models.SessionFieldMood:      state.LastMood,
		models.SessionFieldSwitches:  strconv.Itoa(state.ModeSwitches),
		models.SessionFieldTimestamp: state.LastSessionTimestamp,
	}
	for _, field := range models.SessionStateFields {
		if err := s.Set(userID, models.SessionStatePrefix+field, fields[field]); err != nil {
			return err
		}
	}
	return nil
}

// LoadSessionState restores persisted session fields. Returns nil when no
// session has ever been saved. A malformed switch counter is treated as
// absent rather than failing the whole load.
func (s *PreferenceStore) LoadSessionState(userID int) (*models.SessionState, error) {
	rows, err := s.db.Query(
		"SELECT key, value FROM preferences WHERE user_id = ? AND key LIKE ?",
		userID, models.SessionStatePrefix+"%",
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	state := &models.SessionState{}
	found := false
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		found = true
		switch strings.TrimPrefix(key, models.SessionStatePrefix) {
		case models.SessionFieldMode:
			state.LastMode = value
		case models.SessionFieldPersona:
			state.LastPersona = value
		case models.SessionFieldMood:
			state.LastMood = value
		case models.SessionFieldSwitches:
			if n, err := strconv.Atoi(value); err == nil {
				state.ModeSwitches = n
			}
		case models.SessionFieldTimestamp:
			state.LastSessionTimestamp = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return state, nil
}

// LearnedPreferenceStore handles preferences inferred from conversation
type LearnedPreferenceStore struct {
	db *DB
}

// NewLearnedPreferenceStore creates a new LearnedPreferenceStore
func NewLearnedPreferenceStore(db *DB) *LearnedPreferenceStore {
	return &LearnedPreferenceStore{db: db}
}

// Learn records an observation for a preference key. A first observation
// stores the value with its confidence. Repeat observations replace the
// value, average the old and new confidence capped at 1.0, and bump the
// reinforcement count. The original learned date survives reinforcement.
func (s *LearnedPreferenceStore) Learn(userID int, key, value string, confidence float64) error {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO learned_preferences (user_id, key, value, confidence, learned_date, reinforcement_count)
		VALUES (?, ?, ?, ?, ?, 1)
		ON CONFLICT(user_id, key) DO UPDATE SET
			value = excluded.value,
			confidence = MIN((learned_preferences.confidence + excluded.confidence) / 2.0, 1.0),
			reinforcement_count = learned_preferences.reinforcement_count + 1
	`, userID, key, value, confidence, time.Now().UTC())
	return err
}

// Get returns the learned preference when its confidence meets the
// threshold, nil otherwise. The threshold comparison is inclusive.
func (s *LearnedPreferenceStore) Get(userID int, key string, minConfidence float64) (*models.LearnedPreference, error) {
	var pref models.LearnedPreference
	err := s.db.QueryRow(`
		SELECT user_id, key, value, confidence, learned_date, reinforcement_count
		FROM learned_preferences
		WHERE user_id = ? AND key = ?
	`, userID, key).Scan(&pref.UserID, &pref.Key, &pref.Value, &pref.Confidence,
		&pref.LearnedDate, &pref.ReinforcementCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if pref.Confidence < minConfidence {
		return nil, nil
	}
	return &pref, nil
}

// All returns every learned preference for the user, highest confidence
// first.
func (s *LearnedPreferenceStore) All(userID int) ([]models.LearnedPreference, error) {
	rows, err := s.db.Query(`
		SELECT user_id, key, value, confidence, learned_date, reinforcement_count
		FROM learned_preferences
		WHERE user_id = ?
		ORDER BY confidence DESC, key
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var prefs []models.LearnedPreference
	for rows.Next() {
		var pref models.LearnedPreference
		err := rows.Scan(&pref.UserID, &pref.Key, &pref.Value, &pref.Confidence,
			&pref.LearnedDate, &pref.ReinforcementCount)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, pref)
	}

	return prefs, rows.Err()
}
