// ABOUTME: Opinion storage operations for SQLite
// ABOUTME: Per-topic stances with confidence that drifts toward repeat observations
package sqlite

import (
	"database/sql"
	"time"

	"github.com/harper/duality/internal/models"
)

// OpinionStore handles persisted per-topic stances
type OpinionStore struct {
	db *DB
}

// NewOpinionStore creates a new OpinionStore
func NewOpinionStore(db *DB) *OpinionStore {
	return &OpinionStore{db: db}
}

// Save records a stance on a topic. A repeat observation replaces the stance,
// averages the old and new confidence clamped to [0, 1], and refreshes the
// last-mentioned timestamp while keeping the original formed date.
func (s *OpinionStore) Save(userID int, topic, stance string, confidence float64) error {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO opinions (user_id, topic, stance, confidence, formed_date, last_mentioned)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, topic) DO UPDATE SET
			stance = excluded.stance,
			confidence = MIN(MAX((opinions.confidence + excluded.confidence) / 2.0, 0.0), 1.0),
			last_mentioned = excluded.last_mentioned
	`, userID, topic, stance, confidence, now, now)
	return err
}

// Get returns the first opinion whose topic contains the query, or nil when
// no topic matches.
func (s *OpinionStore) Get(userID int, topic string) (*models.Opinion, error) {
	var op models.Opinion
	err := s.db.QueryRow(`
		SELECT user_id, topic, stance, confidence, formed_date, last_mentioned
		FROM opinions
		WHERE user_id = ? AND topic LIKE ?
	`, userID, "%"+topic+"%").Scan(&op.UserID, &op.Topic, &op.Stance,
		&op.Confidence, &op.FormedDate, &op.LastMentioned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &op, nil
}

// All returns opinions at or above the confidence floor, strongest first,
// capped at limit.
func (s *OpinionStore) All(userID int, minConfidence float64, limit int) ([]models.Opinion, error) {
	rows, err := s.db.Query(`
		SELECT user_id, topic, stance, confidence, formed_date, last_mentioned
		FROM opinions
		WHERE user_id = ? AND confidence >= ?
		ORDER BY confidence DESC
		LIMIT ?
	`, userID, minConfidence, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var opinions []models.Opinion
	for rows.Next() {
		var op models.Opinion
		err := rows.Scan(&op.UserID, &op.Topic, &op.Stance, &op.Confidence,
			&op.FormedDate, &op.LastMentioned)
		if err != nil {
			return nil, err
		}
		opinions = append(opinions, op)
	}

	return opinions, rows.Err()
}
