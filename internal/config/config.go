// ABOUTME: Centralized configuration for the duality memory engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration. Construct once at startup and pass
// into component constructors; components never read the environment themselves.
type Config struct {
	// Groq API settings (OpenAI-compatible endpoint)
	GroqAPIKey         string
	ExtraAPIKeys       []string
	BaseURL            string
	PacifyModel        string
	DefyModel          string
	Timeout            time.Duration
	MaxRetries         int
	RetryDelay         time.Duration
	RateLimitPerMinute int

	// Memory settings
	DBPath           string
	UserID           int
	RetentionDays    int
	EmotionalWindow  time.Duration
	ContextLimit     int
	OpinionThreshold float64
	MaxSessionErrors int

	// Charm sync settings
	CharmHost   string
	CharmDBName string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		ExtraAPIKeys:       splitKeys(os.Getenv("GROQ_API_KEYS")),
		BaseURL:            getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		PacifyModel:        getEnv("DUALITY_PACIFY_MODEL", "llama-3.3-70b-versatile"),
		DefyModel:          getEnv("DUALITY_DEFY_MODEL", "llama-3.3-70b-versatile"),
		Timeout:            getEnvDuration("GROQ_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("GROQ_MAX_RETRIES", 2),
		RetryDelay:         getEnvDuration("GROQ_RETRY_DELAY", 2*time.Second),
		RateLimitPerMinute: getEnvInt("GROQ_RATE_LIMIT", 30),
		DBPath:             os.Getenv("DUALITY_DB"),
		UserID:             getEnvInt("DUALITY_USER_ID", 1),
		RetentionDays:      getEnvInt("DUALITY_RETENTION_DAYS", 30),
		EmotionalWindow:    getEnvDuration("DUALITY_EMOTIONAL_WINDOW", 24*time.Hour),
		ContextLimit:       getEnvInt("DUALITY_CONTEXT_LIMIT", DefaultContextLimit),
		OpinionThreshold:   getEnvFloat("DUALITY_OPINION_THRESHOLD", 0.8),
		MaxSessionErrors:   getEnvInt("DUALITY_MAX_SESSION_ERRORS", 5),
		CharmHost:          getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:        getEnv("CHARM_DB", "duality"),
	}

	return cfg, cfg.Validate()
}

// Context window bounds. The engine falls back to DefaultContextLimit
// exchanges when the user has not tuned the context_limit preference; the
// settings surface only accepts values in [MinContextLimit, MaxContextLimit].
const (
	DefaultContextLimit = 20
	MinContextLimit     = 1
	MaxContextLimit     = 10
)

// Temperature bounds for the user-adjustable creativity setting.
const (
	TemperatureMin = 0.1
	TemperatureMax = 1.0
)

func (c *Config) Validate() error {
	if c.OpinionThreshold < 0 || c.OpinionThreshold > 1 {
		return fmt.Errorf("DUALITY_OPINION_THRESHOLD must be 0-1, got %f", c.OpinionThreshold)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("GROQ_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.RetentionDays <= 0 {
		return fmt.Errorf("DUALITY_RETENTION_DAYS must be positive, got %d", c.RetentionDays)
	}
	if c.ContextLimit < 1 || c.ContextLimit > 50 {
		return fmt.Errorf("DUALITY_CONTEXT_LIMIT must be 1-50, got %d", c.ContextLimit)
	}
	return nil
}

// APIKeys returns the primary key followed by any extra keys, blanks removed.
func (c *Config) APIKeys() []string {
	var keys []string
	if strings.TrimSpace(c.GroqAPIKey) != "" {
		keys = append(keys, c.GroqAPIKey)
	}
	keys = append(keys, c.ExtraAPIKeys...)
	return keys
}

// ModelFor returns the chat model configured for a mode.
func (c *Config) ModelFor(mode string) string {
	if mode == "defy" {
		return c.DefyModel
	}
	return c.PacifyModel
}

// TemperatureFor returns the default sampling temperature for a mode.
func TemperatureFor(mode string) float64 {
	if mode == "defy" {
		return 0.80
	}
	return 0.60
}

// ClampTemperature bounds a user-supplied temperature to the legal range.
func ClampTemperature(t float64) float64 {
	if t < TemperatureMin {
		return TemperatureMin
	}
	if t > TemperatureMax {
		return TemperatureMax
	}
	return t
}

func splitKeys(s string) []string {
	if s == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
