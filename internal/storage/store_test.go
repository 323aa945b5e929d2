// ABOUTME: Tests for the unified Store facade
// ABOUTME: Covers delegation round-trips and retention pruning at startup
package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/duality/internal/models"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStoreInMemory()
	if err != nil {
		t.Fatalf("NewStoreInMemory() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	conv, err := models.NewConversation(1, "hello", "hi there", "pacify", "pacificia", "session_x")
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	if err := store.SaveConversation(conv); err != nil {
		t.Fatalf("SaveConversation() error = %v", err)
	}

	context, err := store.RecentContext(1, 5, "")
	if err != nil {
		t.Fatalf("RecentContext() error = %v", err)
	}
	if context == "" {
		t.Error("RecentContext() = empty, want rendered exchange")
	}

	if err := store.SetPreference(1, "tone", "playful"); err != nil {
		t.Fatalf("SetPreference() error = %v", err)
	}
	tone, err := store.GetPreference(1, "tone")
	if err != nil {
		t.Fatalf("GetPreference() error = %v", err)
	}
	if tone != "playful" {
		t.Errorf("GetPreference() = %q, want %q", tone, "playful")
	}

	if err := store.LearnPreference(1, "response_length", "short", 0.85); err != nil {
		t.Fatalf("LearnPreference() error = %v", err)
	}
	learned, err := store.LearnedPreference(1, "response_length", 0.7)
	if err != nil {
		t.Fatalf("LearnedPreference() error = %v", err)
	}
	if learned == nil || learned.Value != "short" {
		t.Errorf("LearnedPreference() = %+v, want short at 0.85", learned)
	}

	if err := store.SaveOpinion(1, "go generics", "worth the wait", 0.9); err != nil {
		t.Fatalf("SaveOpinion() error = %v", err)
	}
	op, err := store.Opinion(1, "generics")
	if err != nil {
		t.Fatalf("Opinion() error = %v", err)
	}
	if op == nil || op.Stance != "worth the wait" {
		t.Errorf("Opinion() = %+v, want saved stance", op)
	}

	if err := store.TrackEmotion(1, 0.6, "enthusiastic", "hello"); err != nil {
		t.Fatalf("TrackEmotion() error = %v", err)
	}
	pattern, err := store.EmotionalPattern(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("EmotionalPattern() error = %v", err)
	}
	if pattern == nil || pattern.SampleSize != 1 {
		t.Errorf("EmotionalPattern() = %+v, want one sample", pattern)
	}

	if err := store.SetUserName(1, "Harper"); err != nil {
		t.Fatalf("SetUserName() error = %v", err)
	}
	name, err := store.UserName(1)
	if err != nil {
		t.Fatalf("UserName() error = %v", err)
	}
	if name != "Harper" {
		t.Errorf("UserName() = %q, want %q", name, "Harper")
	}

	stats, err := store.Stats(1)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 1 {
		t.Errorf("Stats().Total = %d, want 1", stats.Total)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "duality.db")

	store, err := NewStore(dbPath, 30)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	conv, err := models.NewConversation(1, "remember me", "always", "pacify", "pacificia", "session_p")
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	if err := store.SaveConversation(conv); err != nil {
		t.Fatalf("SaveConversation() error = %v", err)
	}
	if err := store.SaveSessionState(1, &models.SessionState{LastMode: "defy", LastPersona: "void"}); err != nil {
		t.Fatalf("SaveSessionState() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewStore(dbPath, 30)
	if err != nil {
		t.Fatalf("NewStore() reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	history, err := reopened.History(1, 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 || history[0].UserInput != "remember me" {
		t.Errorf("History() after reopen = %v, want persisted conversation", history)
	}

	state, err := reopened.LoadSessionState(1)
	if err != nil {
		t.Fatalf("LoadSessionState() error = %v", err)
	}
	if state == nil || state.LastMode != "defy" || state.LastPersona != "void" {
		t.Errorf("LoadSessionState() = %+v, want persisted state", state)
	}
}

func TestStorePrunesAtInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "duality.db")

	store, err := NewStore(dbPath, 30)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	old, err := models.NewConversation(1, "stale", "forgotten", "pacify", "pacificia", "session_old")
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	old.Timestamp = time.Now().UTC().Add(-31 * 24 * time.Hour)
	if err := store.SaveConversation(old); err != nil {
		t.Fatalf("SaveConversation() error = %v", err)
	}

	fresh, err := models.NewConversation(1, "fresh", "kept", "pacify", "pacificia", "session_new")
	if err != nil {
		t.Fatalf("NewConversation() error = %v", err)
	}
	fresh.Timestamp = time.Now().UTC().Add(-29 * 24 * time.Hour)
	if err := store.SaveConversation(fresh); err != nil {
		t.Fatalf("SaveConversation() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewStore(dbPath, 30)
	if err != nil {
		t.Fatalf("NewStore() reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	history, err := reopened.History(1, 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("History() after prune = %d rows, want 1", len(history))
	}
	if history[0].UserInput != "fresh" {
		t.Errorf("History()[0].UserInput = %q, want the 29-day-old row kept", history[0].UserInput)
	}
}
