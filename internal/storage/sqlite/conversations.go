// ABOUTME: Conversation storage operations for SQLite
// ABOUTME: Append-only exchange history with context rendering and stats
package sqlite

import (
	"database/sql"
	"math"
	"strings"
	"time"

	"github.com/harper/duality/internal/models"
)

// ConversationStore handles conversation persistence
type ConversationStore struct {
	db *DB
}

// NewConversationStore creates a new ConversationStore
func NewConversationStore(db *DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Save appends one immutable conversation row. The word count falls back to
// the whitespace-split token count of the response when unset.
func (s *ConversationStore) Save(conv *models.Conversation) error {
	timestamp := conv.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	wordCount := conv.WordCount
	if wordCount == 0 {
		wordCount = len(strings.Fields(conv.AIResponse))
	}

	result, err := s.db.Exec(`
		INSERT INTO conversations (user_id, timestamp, user_input, ai_response, mode, persona, mood, session_id, word_count, response_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, conv.UserID, timestamp, conv.UserInput, conv.AIResponse, conv.Mode,
		conv.Persona, nullString(conv.Mood), conv.SessionID, wordCount, conv.ResponseTime)
	if err != nil {
		return err
	}

	if id, err := result.LastInsertId(); err == nil {
		conv.ID = id
	}
	conv.Timestamp = timestamp
	conv.WordCount = wordCount

	return nil
}

// RecentContext renders the last limit exchanges in chronological order
// (oldest first) as alternating "User:" and persona lines. Text is never
// truncated, full fidelity is the contract here. An empty mode means no
// mode filter.
func (s *ConversationStore) RecentContext(userID, limit int, mode string) (string, error) {
	query := `
		SELECT user_input, ai_response, persona, mood
		FROM conversations
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?`
	args := []interface{}{userID, limit}
	if mode != "" {
		query = `
		SELECT user_input, ai_response, persona, mood
		FROM conversations
		WHERE user_id = ? AND mode = ?
		ORDER BY id DESC
		LIMIT ?`
		args = []interface{}{userID, mode, limit}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return "", err
	}
	defer func() { _ = rows.Close() }()

	type exchange struct {
		input    string
		response string
		persona  string
		mood     string
	}

	var recent []exchange
	for rows.Next() {
		var (
			ex   exchange
			mood sql.NullString
		)
		if err := rows.Scan(&ex.input, &ex.response, &ex.persona, &mood); err != nil {
			return "", err
		}
		if mood.Valid {
			ex.mood = mood.String
		}
		recent = append(recent, ex)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if len(recent) == 0 {
		return "", nil
	}

	var lines []string
	for i := len(recent) - 1; i >= 0; i-- {
		ex := recent[i]
		lines = append(lines, "User: "+ex.input)
		lines = append(lines, ex.persona+": "+ex.response)
		if ex.mood != "" {
			lines = append(lines, "[Mood: "+ex.mood+"]")
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n"), nil
}

// History returns structured conversation records, newest first.
func (s *ConversationStore) History(userID, limit int) ([]models.Conversation, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, timestamp, user_input, ai_response, mode, persona, mood, session_id, word_count, response_time
		FROM conversations
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanConversations(rows)
}

// Search returns conversations whose input or response contains the query,
// newest first.
func (s *ConversationStore) Search(userID int, query string, maxResults int) ([]models.Conversation, error) {
	likePattern := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id, user_id, timestamp, user_input, ai_response, mode, persona, mood, session_id, word_count, response_time
		FROM conversations
		WHERE user_id = ? AND (user_input LIKE ? OR ai_response LIKE ?)
		ORDER BY id DESC
		LIMIT ?
	`, userID, likePattern, likePattern, maxResults)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return s.scanConversations(rows)
}

// ClearSession deletes a user's conversations, all of them when sessionID is
// empty. Destructive and irreversible, callers confirm with the user first.
func (s *ConversationStore) ClearSession(userID int, sessionID string) (int64, error) {
	var (
		result sql.Result
		err    error
	)
	if sessionID != "" {
		result, err = s.db.Exec("DELETE FROM conversations WHERE user_id = ? AND session_id = ?", userID, sessionID)
	} else {
		result, err = s.db.Exec("DELETE FROM conversations WHERE user_id = ?", userID)
	}
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// PruneOlderThan removes conversation rows older than the cutoff across all
// users. Retention maintenance, run at store initialization.
func (s *ConversationStore) PruneOlderThan(cutoff time.Time) (int64, error) {
	result, err := s.db.Exec("DELETE FROM conversations WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Stats aggregates usage numbers for one user. Current mode and persona come
// from the preferences table, falling back to the registry defaults.
func (s *ConversationStore) Stats(userID int) (*models.Stats, error) {
	stats := &models.Stats{
		PersonaUsage:   make(map[string]int),
		CurrentMode:    string(models.DefaultMode),
		CurrentPersona: models.DefaultPersona(models.DefaultMode).Name,
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM conversations WHERE user_id = ?", userID).Scan(&stats.Total); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM conversations WHERE user_id = ? AND mode = 'pacify'", userID).Scan(&stats.PacifyCount); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM conversations WHERE user_id = ? AND mode = 'defy'", userID).Scan(&stats.DefyCount); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT persona, COUNT(*)
		FROM conversations
		WHERE user_id = ?
		GROUP BY persona
		ORDER BY COUNT(*) DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			persona string
			count   int
		)
		if err := rows.Scan(&persona, &count); err != nil {
			return nil, err
		}
		stats.PersonaUsage[persona] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var avgTime, avgWords sql.NullFloat64
	if err := s.db.QueryRow("SELECT AVG(response_time) FROM conversations WHERE user_id = ? AND response_time IS NOT NULL", userID).Scan(&avgTime); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow("SELECT AVG(word_count) FROM conversations WHERE user_id = ? AND word_count IS NOT NULL", userID).Scan(&avgWords); err != nil {
		return nil, err
	}
	stats.AvgResponseTime = math.Round(avgTime.Float64*100) / 100
	stats.AvgWordCount = math.Round(avgWords.Float64*10) / 10

	var mode sql.NullString
	err = s.db.QueryRow("SELECT value FROM preferences WHERE user_id = ? AND key = ?", userID, models.PrefActiveMode).Scan(&mode)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if mode.Valid {
		stats.CurrentMode = mode.String
	}

	var persona sql.NullString
	err = s.db.QueryRow("SELECT value FROM preferences WHERE user_id = ? AND key = ?", userID, models.PrefActivePersona).Scan(&persona)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if persona.Valid {
		stats.CurrentPersona = persona.String
	}

	return stats, nil
}

// scanConversations scans rows into a slice of Conversation
func (s *ConversationStore) scanConversations(rows *sql.Rows) ([]models.Conversation, error) {
	var convs []models.Conversation

	for rows.Next() {
		var (
			conv         models.Conversation
			mood         sql.NullString
			wordCount    sql.NullInt64
			responseTime sql.NullFloat64
		)

		err := rows.Scan(&conv.ID, &conv.UserID, &conv.Timestamp, &conv.UserInput,
			&conv.AIResponse, &conv.Mode, &conv.Persona, &mood, &conv.SessionID,
			&wordCount, &responseTime)
		if err != nil {
			return nil, err
		}

		if mood.Valid {
			conv.Mood = mood.String
		}
		conv.WordCount = int(wordCount.Int64)
		conv.ResponseTime = responseTime.Float64

		convs = append(convs, conv)
	}

	return convs, rows.Err()
}

// nullString converts an empty string to sql.NullString
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
