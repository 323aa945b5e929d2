// ABOUTME: Tests for emotional tracking storage
// ABOUTME: Covers sample persistence, windowed aggregation, and trend labels
package sqlite

import (
	"testing"
	"time"

	"github.com/harper/duality/internal/models"
)

func trackSample(t *testing.T, store *EmotionStore, userID int, score float64, emotion string, age time.Duration) {
	t.Helper()
	sample := &models.EmotionalSample{
		UserID:          userID,
		Timestamp:       time.Now().UTC().Add(-age),
		SentimentScore:  score,
		DetectedEmotion: emotion,
		Context:         "test context",
	}
	if err := store.Track(sample); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
}

func TestEmotionStoreTrack(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	sample := &models.EmotionalSample{
		UserID:          1,
		SentimentScore:  0.5,
		DetectedEmotion: "enthusiastic",
	}
	if err := store.Track(sample); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if sample.ID == 0 {
		t.Error("Track() did not set sample ID")
	}
	if sample.Timestamp.IsZero() {
		t.Error("Track() did not default the timestamp")
	}
}

func TestEmotionStorePattern(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	trackSample(t, store, 1, 0.6, "enthusiastic", time.Hour)
	trackSample(t, store, 1, 0.4, "engaged", 2*time.Hour)
	trackSample(t, store, 1, 0.5, "enthusiastic", 3*time.Hour)

	pattern, err := store.Pattern(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("Pattern() error = %v", err)
	}
	if pattern == nil {
		t.Fatal("Pattern() = nil, want aggregated pattern")
	}

	if pattern.AvgSentiment != 0.5 {
		t.Errorf("AvgSentiment = %v, want 0.5", pattern.AvgSentiment)
	}
	if pattern.Trend != "positive" {
		t.Errorf("Trend = %q, want %q", pattern.Trend, "positive")
	}
	if pattern.DominantEmotion != "enthusiastic" {
		t.Errorf("DominantEmotion = %q, want %q", pattern.DominantEmotion, "enthusiastic")
	}
	if pattern.SampleSize != 3 {
		t.Errorf("SampleSize = %d, want 3", pattern.SampleSize)
	}
}

func TestEmotionStorePatternTrendLabels(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   string
	}{
		{"positive above threshold", []float64{0.5, 0.3}, "positive"},
		{"negative below threshold", []float64{-0.5, -0.3}, "negative"},
		{"neutral inside band", []float64{0.2, -0.1}, "neutral"},
		{"exactly at boundary stays neutral", []float64{0.2, 0.2}, "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := OpenInMemory()
			if err != nil {
				t.Fatalf("OpenInMemory() error = %v", err)
			}
			defer func() { _ = db.Close() }()

			store := NewEmotionStore(db)
			for _, score := range tt.scores {
				trackSample(t, store, 1, score, "neutral", time.Hour)
			}

			pattern, err := store.Pattern(1, 24*time.Hour)
			if err != nil {
				t.Fatalf("Pattern() error = %v", err)
			}
			if pattern == nil {
				t.Fatal("Pattern() = nil, want pattern")
			}
			if pattern.Trend != tt.want {
				t.Errorf("Trend = %q, want %q", pattern.Trend, tt.want)
			}
		})
	}
}

func TestEmotionStorePatternWindowExcludesOldSamples(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	trackSample(t, store, 1, -0.9, "neutral", 48*time.Hour)
	trackSample(t, store, 1, 0.6, "enthusiastic", time.Hour)

	pattern, err := store.Pattern(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("Pattern() error = %v", err)
	}
	if pattern == nil {
		t.Fatal("Pattern() = nil, want pattern")
	}
	if pattern.SampleSize != 1 {
		t.Errorf("SampleSize = %d, want 1 inside the window", pattern.SampleSize)
	}
	if pattern.AvgSentiment != 0.6 {
		t.Errorf("AvgSentiment = %v, want 0.6", pattern.AvgSentiment)
	}
}

func TestEmotionStorePatternEmpty(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	pattern, err := store.Pattern(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("Pattern() error = %v", err)
	}
	if pattern != nil {
		t.Errorf("Pattern() = %+v, want nil for empty window", pattern)
	}
}

func TestEmotionStorePatternDominantTieFirstSeen(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	// Newest first in aggregation order: curious then engaged, one each
	trackSample(t, store, 1, 0.1, "engaged", 2*time.Hour)
	trackSample(t, store, 1, 0.1, "curious", time.Hour)

	pattern, err := store.Pattern(1, 24*time.Hour)
	if err != nil {
		t.Fatalf("Pattern() error = %v", err)
	}
	if pattern == nil {
		t.Fatal("Pattern() = nil, want pattern")
	}
	if pattern.DominantEmotion != "curious" {
		t.Errorf("DominantEmotion = %q, want first observed %q", pattern.DominantEmotion, "curious")
	}
}

func TestEmotionStorePruneOlderThan(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewEmotionStore(db)

	trackSample(t, store, 1, 0.5, "engaged", 31*24*time.Hour)
	trackSample(t, store, 1, 0.5, "engaged", time.Hour)

	pruned, err := store.PruneOlderThan(time.Now().UTC().Add(-30 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("PruneOlderThan() error = %v", err)
	}
	if pruned != 1 {
		t.Errorf("PruneOlderThan() removed %d rows, want 1", pruned)
	}
}
