// ABOUTME: Main entry point for the duality MCP server with stdio transport
// ABOUTME: Initializes configuration, storage, and the nine memory tools
package main

import (
	"log"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/mcp"
	"github.com/harper/duality/internal/storage"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.NewStore(cfg.DBPath, cfg.RetentionDays)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	server := mcpserver.NewMCPServer(
		"Duality Memory Engine",
		"0.1.0",
	)

	mcp.RegisterTools(server, store, cfg)

	// log writes to stderr, stdout stays clean for the protocol
	log.Println("duality MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
