// ABOUTME: Emotional tracking storage operations for SQLite
// ABOUTME: Sentiment samples plus windowed trend aggregation
package sqlite

import (
	"math"
	"time"

	"github.com/harper/duality/internal/models"
)

// EmotionStore handles sentiment sample persistence
type EmotionStore struct {
	db *DB
}

// NewEmotionStore creates a new EmotionStore
func NewEmotionStore(db *DB) *EmotionStore {
	return &EmotionStore{db: db}
}

// Track appends one sentiment sample.
func (s *EmotionStore) Track(sample *models.EmotionalSample) error {
	timestamp := sample.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	result, err := s.db.Exec(`
		INSERT INTO emotional_tracking (user_id, timestamp, sentiment_score, detected_emotion, context)
		VALUES (?, ?, ?, ?, ?)
	`, sample.UserID, timestamp, sample.SentimentScore, sample.DetectedEmotion,
		nullString(sample.Context))
	if err != nil {
		return err
	}

	if id, err := result.LastInsertId(); err == nil {
		sample.ID = id
	}
	sample.Timestamp = timestamp

	return nil
}

// Pattern aggregates the newest samples inside the window, at most 20 of
// them. Returns nil when the window holds no samples. Ties between equally
// frequent emotions go to the one observed first.
func (s *EmotionStore) Pattern(userID int, window time.Duration) (*models.EmotionalPattern, error) {
	cutoff := time.Now().UTC().Add(-window)
	rows, err := s.db.Query(`
		SELECT sentiment_score, detected_emotion
		FROM emotional_tracking
		WHERE user_id = ? AND timestamp > ?
		ORDER BY id DESC
		LIMIT 20
	`, userID, cutoff)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var (
		scores       []float64
		emotionOrder []string
		emotionCount = make(map[string]int)
	)
	for rows.Next() {
		var (
			score   float64
			emotion string
		)
		if err := rows.Scan(&score, &emotion); err != nil {
			return nil, err
		}
		scores = append(scores, score)
		if emotion == "" {
			continue
		}
		if _, seen := emotionCount[emotion]; !seen {
			emotionOrder = append(emotionOrder, emotion)
		}
		emotionCount[emotion]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	var sum float64
	for _, score := range scores {
		sum += score
	}
	avg := sum / float64(len(scores))

	trend := "neutral"
	if avg > 0.2 {
		trend = "positive"
	} else if avg < -0.2 {
		trend = "negative"
	}

	dominant := "neutral"
	if len(emotionOrder) > 0 {
		dominant = emotionOrder[0]
	}
	for _, emotion := range emotionOrder {
		if emotionCount[emotion] > emotionCount[dominant] {
			dominant = emotion
		}
	}

	return &models.EmotionalPattern{
		AvgSentiment:    math.Round(avg*100) / 100,
		Trend:           trend,
		DominantEmotion: dominant,
		SampleSize:      len(scores),
	}, nil
}

// PruneOlderThan removes samples older than the cutoff across all users.
func (s *EmotionStore) PruneOlderThan(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec("DELETE FROM emotional_tracking WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
