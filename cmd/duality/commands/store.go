// ABOUTME: Shared storage bootstrap for CLI commands
// ABOUTME: Loads .env, reads config, and opens the SQLite store
package commands

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/storage"
)

// openStore loads configuration and opens the conversation store. Callers
// own the returned store and must Close it.
func openStore() (*storage.Store, *config.Config, error) {
	// Load .env for API keys and overrides
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.NewStore(cfg.DBPath, cfg.RetentionDays)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	return store, cfg, nil
}
