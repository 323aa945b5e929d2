// ABOUTME: SQLite database schema for conversation memory storage
// ABOUTME: Every table is scoped by user_id, queries must always filter on it
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Conversation exchanges, immutable once written
CREATE TABLE IF NOT EXISTS conversations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
    user_input TEXT,
    ai_response TEXT,
    mode TEXT,
    persona TEXT,
    mood TEXT,
    session_id TEXT,
    word_count INTEGER,
    response_time REAL
);

-- Assistant stances per topic, one row per (user, topic)
CREATE TABLE IF NOT EXISTS opinions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    topic TEXT NOT NULL,
    stance TEXT NOT NULL,
    confidence REAL DEFAULT 0.5,
    formed_date DATETIME DEFAULT CURRENT_TIMESTAMP,
    last_mentioned DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(user_id, topic)
);

-- Sentiment samples, append-only
CREATE TABLE IF NOT EXISTS emotional_tracking (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
    sentiment_score REAL,
    detected_emotion TEXT,
    context TEXT
);

-- Explicit user settings, including session_ prefixed session state
CREATE TABLE IF NOT EXISTS preferences (
    user_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    value TEXT,
    set_date DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, key)
);

-- Inferred settings with reinforcement-averaged confidence
CREATE TABLE IF NOT EXISTS learned_preferences (
    user_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    value TEXT,
    confidence REAL DEFAULT 0.5,
    learned_date DATETIME DEFAULT CURRENT_TIMESTAMP,
    reinforcement_count INTEGER DEFAULT 1,
    PRIMARY KEY (user_id, key)
);

-- Free-form per-user profile values such as user_name
CREATE TABLE IF NOT EXISTS user_profile (
    user_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    value TEXT,
    PRIMARY KEY (user_id, key)
);

-- Indexes for efficient per-user querying
CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id);
CREATE INDEX IF NOT EXISTS idx_conversations_user_timestamp ON conversations(user_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_opinions_user ON opinions(user_id);
CREATE INDEX IF NOT EXISTS idx_emotional_user ON emotional_tracking(user_id);
CREATE INDEX IF NOT EXISTS idx_preferences_user ON preferences(user_id);
CREATE INDEX IF NOT EXISTS idx_learned_pref_user ON learned_preferences(user_id);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
