// ABOUTME: Tests for preference storage operations
// ABOUTME: Covers explicit prefs, learned confidence averaging, and session state
package sqlite

import (
	"math"
	"testing"

	"github.com/harper/duality/internal/models"
)

func TestPreferenceStoreSetAndGet(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	if err := store.Set(1, "response_length", "short"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(1, "response_length")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "short" {
		t.Errorf("Get() = %q, want %q", got, "short")
	}

	if err := store.Set(1, "response_length", "long"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err = store.Get(1, "response_length")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "long" {
		t.Errorf("Get() after overwrite = %q, want %q", got, "long")
	}
}

func TestPreferenceStoreGetMissing(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	got, err := store.Get(1, "never_set")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() = %q, want empty string", got)
	}
}

func TestPreferenceStoreAllAndDelete(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	if err := store.Set(1, "tone", "playful"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(1, "response_length", "short"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(2, "tone", "serious"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	all, err := store.All(1)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("All() returned %d preferences, want 2", len(all))
	}
	if all["tone"] != "playful" {
		t.Errorf("All()[tone] = %q, want %q", all["tone"], "playful")
	}

	if err := store.Delete(1, "tone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err := store.Get(1, "tone")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "" {
		t.Errorf("Get() after delete = %q, want empty string", got)
	}

	otherTone, err := store.Get(2, "tone")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if otherTone != "serious" {
		t.Errorf("Delete() touched another user's preference")
	}
}

func TestPreferenceStoreSessionStateRoundTrip(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	saved := &models.SessionState{
		LastMode:             "defy",
		LastPersona:          "void",
		LastMood:             "sarcastic",
		ModeSwitches:         3,
		LastSessionTimestamp: "2026-08-22T10:00:00Z",
	}
	if err := store.SaveSessionState(1, saved); err != nil {
		t.Fatalf("SaveSessionState() error = %v", err)
	}

	loaded, err := store.LoadSessionState(1)
	if err != nil {
		t.Fatalf("LoadSessionState() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadSessionState() = nil, want saved state")
	}
	if *loaded != *saved {
		t.Errorf("LoadSessionState() = %+v, want %+v", loaded, saved)
	}
}

func TestPreferenceStoreSessionStateAbsent(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	loaded, err := store.LoadSessionState(1)
	if err != nil {
		t.Fatalf("LoadSessionState() error = %v", err)
	}
	if loaded != nil {
		t.Errorf("LoadSessionState() = %+v, want nil", loaded)
	}
}

func TestPreferenceStoreSessionStateMalformedSwitches(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewPreferenceStore(db)

	if err := store.Set(1, "session_last_mode", "pacify"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set(1, "session_mode_switches", "not-a-number"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	loaded, err := store.LoadSessionState(1)
	if err != nil {
		t.Fatalf("LoadSessionState() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadSessionState() = nil, want partial state")
	}
	if loaded.LastMode != "pacify" {
		t.Errorf("LastMode = %q, want %q", loaded.LastMode, "pacify")
	}
	if loaded.ModeSwitches != 0 {
		t.Errorf("ModeSwitches = %d, want 0 for malformed value", loaded.ModeSwitches)
	}
}

func TestLearnedPreferenceStoreLearnFirstObservation(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewLearnedPreferenceStore(db)

	if err := store.Learn(1, "response_length", "short", 0.85); err != nil {
		t.Fatalf("Learn() error = %v", err)
	}

	pref, err := store.Get(1, "response_length", 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if pref == nil {
		t.Fatal("Get() = nil, want learned preference")
	}
	if pref.Value != "short" {
		t.Errorf("Value = %q, want %q", pref.Value, "short")
	}
	if pref.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", pref.Confidence)
	}
	if pref.ReinforcementCount != 1 {
		t.Errorf("ReinforcementCount = %d, want 1", pref.ReinforcementCount)
	}
}

func TestLearnedPreferenceStoreReinforcementAveraging(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewLearnedPreferenceStore(db)

	if err := store.Learn(1, "tone", "serious", 0.8); err != nil {
		t.Fatalf("Learn() error = %v", err)
	}
	first, err := store.Get(1, "tone", 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first == nil {
		t.Fatal("Get() = nil after first observation")
	}

	if err := store.Learn(1, "tone", "playful", 0.6); err != nil {
		t.Fatalf("Learn() error = %v", err)
	}

	second, err := store.Get(1, "tone", 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if second == nil {
		t.Fatal("Get() = nil after reinforcement")
	}
	if second.Value != "playful" {
		t.Errorf("Value = %q, want latest observation %q", second.Value, "playful")
	}
	if math.Abs(second.Confidence-0.7) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.7", second.Confidence)
	}
	if second.ReinforcementCount != 2 {
		t.Errorf("ReinforcementCount = %d, want 2", second.ReinforcementCount)
	}
	if !second.LearnedDate.Equal(first.LearnedDate) {
		t.Errorf("LearnedDate changed on reinforcement: %v -> %v", first.LearnedDate, second.LearnedDate)
	}
}

func TestLearnedPreferenceStoreConfidenceCap(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewLearnedPreferenceStore(db)

	for i := 0; i < 5; i++ {
		if err := store.Learn(1, "detail", "high", 1.5); err != nil {
			t.Fatalf("Learn() error = %v", err)
		}
	}

	pref, err := store.Get(1, "detail", 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if pref == nil {
		t.Fatal("Get() = nil, want learned preference")
	}
	if pref.Confidence > 1.0 {
		t.Errorf("Confidence = %v, want at most 1.0", pref.Confidence)
	}
}

func TestLearnedPreferenceStoreThreshold(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewLearnedPreferenceStore(db)

	if err := store.Learn(1, "tone", "serious", 0.7); err != nil {
		t.Fatalf("Learn() error = %v", err)
	}

	tests := []struct {
		name      string
		threshold float64
		wantFound bool
	}{
		{"below threshold", 0.8, false},
		{"exactly at threshold", 0.7, true},
		{"above threshold", 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pref, err := store.Get(1, "tone", tt.threshold)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if (pref != nil) != tt.wantFound {
				t.Errorf("Get() found = %v, want %v", pref != nil, tt.wantFound)
			}
		})
	}
}

func TestLearnedPreferenceStoreAll(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewLearnedPreferenceStore(db)

	if err := store.Learn(1, "tone", "playful", 0.6); err != nil {
		t.Fatalf("Learn() error = %v", err)
	}
	if err := store.Learn(1, "response_length", "short", 0.9); err != nil {
		t.Fatalf("Learn() error = %v", err)
	}
	if err := store.Learn(2, "tone", "serious", 0.8); err != nil {
		t.Fatalf("Learn() error = %v", err)
	}

	all, err := store.All(1)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("All() returned %d preferences, want 2", len(all))
	}
	if all[0].Key != "response_length" {
		t.Errorf("All()[0].Key = %q, want highest confidence first", all[0].Key)
	}
}
