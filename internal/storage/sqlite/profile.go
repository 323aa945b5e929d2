// ABOUTME: User profile storage operations for SQLite
// ABOUTME: Free-form profile facts such as the user's name
package sqlite

import (
	"database/sql"
	"time"
)

// ProfileKeyName is the profile field that personalizes greetings.
const ProfileKeyName = "name"

// ProfileStore handles free-form user profile fields
type ProfileStore struct {
	db *DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Set stores a profile field, replacing any existing value.
func (s *ProfileStore) Set(userID int, key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO user_profile (user_id, key, value, updated_date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_date = excluded.updated_date
	`, userID, key, value, time.Now().UTC())
	return err
}

// Get returns the profile field value, or empty string when unset.
func (s *ProfileStore) Get(userID int, key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM user_profile WHERE user_id = ? AND key = ?",
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

// All returns every profile field for the user.
func (s *ProfileStore) All(userID int) (map[string]string, error) {
	rows, err := s.db.Query(
		"SELECT key, value FROM user_profile WHERE user_id = ? ORDER BY key",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	profile := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		profile[key] = value
	}

	return profile, rows.Err()
}

// UserName returns the stored display name, or empty string when the user
// never introduced themselves.
func (s *ProfileStore) UserName(userID int) (string, error) {
	return s.Get(userID, ProfileKeyName)
}

// SetUserName stores the user's display name.
func (s *ProfileStore) SetUserName(userID int, name string) error {
	return s.Set(userID, ProfileKeyName, name)
}
