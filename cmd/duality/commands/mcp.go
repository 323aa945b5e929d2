// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes the memory engine to LLM agents over stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/mcp"
	"github.com/harper/duality/internal/storage"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Duality as an MCP (Model Context Protocol) server, exposing
conversation memory, preferences, opinions, and emotional state
as tools over stdio.

Configure in Claude Desktop's config file to enable memory tools.`,
		RunE: runMCPServe,
		Example: `  # Start MCP server (typically called by an agent host)
  duality mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "duality": {
  #       "command": "duality",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCPServe starts the MCP server
func runMCPServe(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for overrides)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.NewStore(cfg.DBPath, cfg.RetentionDays)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Duality Memory Engine",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, store, cfg)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		// log writes to stderr, stdout stays clean for the protocol
		log.Println("Duality MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		// Close storage (flushes pending writes, closes DB)
		if err := store.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
