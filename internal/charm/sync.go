// ABOUTME: Push/pull between the local SQLite store and Charm Cloud KV
// ABOUTME: Backs up manual preferences, profile fields, and session state
package charm

import (
	"fmt"
	"strings"

	"github.com/harper/duality/internal/models"
	"github.com/harper/duality/internal/storage"
)

// Syncer copies durable personalization data between the local store and
// the cloud KV. Conversations stay local; only the small, user-curated
// entities round-trip.
type Syncer struct {
	client *Client
	store  *storage.Store
	userID int
}

// NewSyncer builds a Syncer for one user's data.
func NewSyncer(client *Client, store *storage.Store, userID int) *Syncer {
	return &Syncer{client: client, store: store, userID: userID}
}

// Push uploads manual preferences, profile fields, and the saved session
// snapshot, then syncs once. Returns the number of keys written.
func (s *Syncer) Push() (int, error) {
	written := 0

	prefs, err := s.store.AllPreferences(s.userID)
	if err != nil {
		return written, fmt.Errorf("failed to read preferences: %w", err)
	}
	for key, value := range prefs {
		if err := s.client.Set(PrefKey(key), []byte(value)); err != nil {
			return written, err
		}
		written++
	}

	profile, err := s.store.Profile(s.userID)
	if err != nil {
		return written, fmt.Errorf("failed to read profile: %w", err)
	}
	for field, value := range profile {
		if err := s.client.Set(ProfileKey(field), []byte(value)); err != nil {
			return written, err
		}
		written++
	}

	state, err := s.store.LoadSessionState(s.userID)
	if err != nil {
		return written, fmt.Errorf("failed to read session state: %w", err)
	}
	if state != nil {
		if err := s.client.SetJSON(SessionKey(), state); err != nil {
			return written, err
		}
		written++
	}

	if err := s.client.Sync(); err != nil {
		return written, fmt.Errorf("failed to sync to cloud: %w", err)
	}
	return written, nil
}

// Pull downloads cloud entries and applies them to the local store.
// Returns the number of entries applied.
func (s *Syncer) Pull() (int, error) {
	if err := s.client.Sync(); err != nil {
		return 0, fmt.Errorf("failed to sync from cloud: %w", err)
	}

	applied := 0

	prefKeys, err := s.client.ListKeys(PrefPrefix)
	if err != nil {
		return applied, err
	}
	for _, key := range prefKeys {
		value, err := s.client.Get(key)
		if err != nil {
			return applied, fmt.Errorf("failed to read %s: %w", key, err)
		}
		name := strings.TrimPrefix(key, PrefPrefix)
		if err := s.store.SetPreference(s.userID, name, string(value)); err != nil {
			return applied, err
		}
		applied++
	}

	profileKeys, err := s.client.ListKeys(ProfilePrefix)
	if err != nil {
		return applied, err
	}
	for _, key := range profileKeys {
		value, err := s.client.Get(key)
		if err != nil {
			return applied, fmt.Errorf("failed to read %s: %w", key, err)
		}
		field := strings.TrimPrefix(key, ProfilePrefix)
		if err := s.store.SetProfileField(s.userID, field, string(value)); err != nil {
			return applied, err
		}
		applied++
	}

	sessionKeys, err := s.client.ListKeys(SessionPrefix)
	if err != nil {
		return applied, err
	}
	if len(sessionKeys) > 0 {
		var state models.SessionState
		if err := s.client.GetJSON(SessionKey(), &state); err != nil {
			return applied, fmt.Errorf("failed to read session snapshot: %w", err)
		}
		if err := s.store.SaveSessionState(s.userID, &state); err != nil {
			return applied, err
		}
		applied++
	}

	return applied, nil
}
