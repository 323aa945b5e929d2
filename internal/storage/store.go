// ABOUTME: Unified Store facade that wraps all SQLite stores
// ABOUTME: Owns schema setup and time-based retention pruning at startup
package storage

import (
	"fmt"
	"log"
	"time"

	"github.com/harper/duality/internal/models"
	"github.com/harper/duality/internal/storage/sqlite"
)

// Store manages all persistent data for duality using SQLite
type Store struct {
	db            *sqlite.DB
	conversations *sqlite.ConversationStore
	preferences   *sqlite.PreferenceStore
	learned       *sqlite.LearnedPreferenceStore
	opinions      *sqlite.OpinionStore
	emotions      *sqlite.EmotionStore
	profile       *sqlite.ProfileStore
}

// NewStore opens (or creates) the database at dbPath and prunes rows older
// than retentionDays. An empty dbPath uses the XDG default location. Pruning
// is best-effort: a failure is logged, never fatal.
func NewStore(dbPath string, retentionDays int) (*Store, error) {
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}

	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := newStore(db)
	store.pruneExpired(retentionDays)
	return store, nil
}

// NewStoreInMemory creates an in-memory store (for testing)
func NewStoreInMemory() (*Store, error) {
	db, err := sqlite.OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStore(db), nil
}

func newStore(db *sqlite.DB) *Store {
	return &Store{
		db:            db,
		conversations: sqlite.NewConversationStore(db),
		preferences:   sqlite.NewPreferenceStore(db),
		learned:       sqlite.NewLearnedPreferenceStore(db),
		opinions:      sqlite.NewOpinionStore(db),
		emotions:      sqlite.NewEmotionStore(db),
		profile:       sqlite.NewProfileStore(db),
	}
}

// pruneExpired drops conversations and emotional samples past the retention
// window. Runs once at startup so steady-state reads stay bounded.
func (s *Store) pruneExpired(retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	if _, err := s.conversations.PruneOlderThan(cutoff); err != nil {
		log.Printf("[Store] failed to prune conversations: %v", err)
	}
	if _, err := s.emotions.PruneOlderThan(cutoff); err != nil {
		log.Printf("[Store] failed to prune emotional samples: %v", err)
	}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the filesystem location of the database.
func (s *Store) Path() string {
	return s.db.Path()
}

// --- Conversation operations ---

// SaveConversation appends one exchange to the permanent history.
func (s *Store) SaveConversation(conv *models.Conversation) error {
	return s.conversations.Save(conv)
}

// RecentContext renders the last limit exchanges for prompt injection,
// oldest first, never truncated. Mode filters when non-empty.
func (s *Store) RecentContext(userID, limit int, mode string) (string, error) {
	return s.conversations.RecentContext(userID, limit, mode)
}

// History returns structured conversation records, newest first.
func (s *Store) History(userID, limit int) ([]models.Conversation, error) {
	return s.conversations.History(userID, limit)
}

// SearchConversations finds exchanges whose input or response contains the
// query.
func (s *Store) SearchConversations(userID int, query string, maxResults int) ([]models.Conversation, error) {
	return s.conversations.Search(userID, query, maxResults)
}

// ClearSession deletes a user's conversations, all of them when sessionID is
// empty. Returns the number of rows removed.
func (s *Store) ClearSession(userID int, sessionID string) (int64, error) {
	return s.conversations.ClearSession(userID, sessionID)
}

// Stats aggregates usage numbers for one user.
func (s *Store) Stats(userID int) (*models.Stats, error) {
	return s.conversations.Stats(userID)
}

// --- Preference operations ---

// SetPreference stores an explicit preference.
func (s *Store) SetPreference(userID int, key, value string) error {
	return s.preferences.Set(userID, key, value)
}

// GetPreference returns an explicit preference, or empty string when unset.
func (s *Store) GetPreference(userID int, key string) (string, error) {
	return s.preferences.Get(userID, key)
}

// AllPreferences returns every explicit preference for the user.
func (s *Store) AllPreferences(userID int) (map[string]string, error) {
	return s.preferences.All(userID)
}

// DeletePreference removes an explicit preference.
func (s *Store) DeletePreference(userID int, key string) error {
	return s.preferences.Delete(userID, key)
}

// LearnPreference records an inferred preference observation.
func (s *Store) LearnPreference(userID int, key, value string, confidence float64) error {
	return s.learned.Learn(userID, key, value, confidence)
}

// LearnedPreference returns an inferred preference once its confidence
// reaches minConfidence, nil otherwise.
func (s *Store) LearnedPreference(userID int, key string, minConfidence float64) (*models.LearnedPreference, error) {
	return s.learned.Get(userID, key, minConfidence)
}

// AllLearnedPreferences returns inferred preferences, highest confidence
// first.
func (s *Store) AllLearnedPreferences(userID int) ([]models.LearnedPreference, error) {
	return s.learned.All(userID)
}

// --- Opinion operations ---

// SaveOpinion records a stance on a topic.
func (s *Store) SaveOpinion(userID int, topic, stance string, confidence float64) error {
	return s.opinions.Save(userID, topic, stance, confidence)
}

// Opinion returns the first stance whose topic contains the query, or nil.
func (s *Store) Opinion(userID int, topic string) (*models.Opinion, error) {
	return s.opinions.Get(userID, topic)
}

// AllOpinions returns stances at or above the confidence floor, strongest
// first.
func (s *Store) AllOpinions(userID int, minConfidence float64, limit int) ([]models.Opinion, error) {
	return s.opinions.All(userID, minConfidence, limit)
}

// --- Emotional tracking operations ---

// TrackEmotion appends one sentiment sample.
func (s *Store) TrackEmotion(userID int, score float64, emotion, context string) error {
	return s.emotions.Track(&models.EmotionalSample{
		UserID:          userID,
		SentimentScore:  score,
		DetectedEmotion: emotion,
		Context:         context,
	})
}

// EmotionalPattern aggregates recent samples inside the window, or nil when
// the window is empty.
func (s *Store) EmotionalPattern(userID int, window time.Duration) (*models.EmotionalPattern, error) {
	return s.emotions.Pattern(userID, window)
}

// --- Session state operations ---

// SaveSessionState persists cross-session continuity fields.
func (s *Store) SaveSessionState(userID int, state *models.SessionState) error {
	return s.preferences.SaveSessionState(userID, state)
}

// LoadSessionState restores persisted session fields, or nil when no session
// was ever saved.
func (s *Store) LoadSessionState(userID int) (*models.SessionState, error) {
	return s.preferences.LoadSessionState(userID)
}

// --- Profile operations ---

// UserName returns the stored display name, or empty string.
func (s *Store) UserName(userID int) (string, error) {
	return s.profile.UserName(userID)
}

// SetUserName stores the user's display name.
func (s *Store) SetUserName(userID int, name string) error {
	return s.profile.SetUserName(userID, name)
}

// ProfileField returns one profile field, or empty string when unset.
func (s *Store) ProfileField(userID int, key string) (string, error) {
	return s.profile.Get(userID, key)
}

// SetProfileField stores one profile field.
func (s *Store) SetProfileField(userID int, key, value string) error {
	return s.profile.Set(userID, key, value)
}

// Profile returns every profile field for the user.
func (s *Store) Profile(userID int) (map[string]string, error) {
	return s.profile.All(userID)
}
