// ABOUTME: MCP tool definitions and registration for the duality server
// ABOUTME: Defines JSON schemas for the nine memory and personalization tools
package mcp

import (
	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Store, cfg *config.Config) *Handlers {
	handlers := &Handlers{
		store: store,
		cfg:   cfg,
	}

	// 1. save_exchange - Persist one completed conversation exchange
	server.AddTool(mcp.Tool{
		Name:        "save_exchange",
		Description: "Save a completed conversation exchange to duality memory. Records input, response, mode, persona, and mood for future context.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_input": map[string]interface{}{
					"type":        "string",
					"description": "The user's message",
				},
				"ai_response": map[string]interface{}{
					"type":        "string",
					"description": "The assistant's reply",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "Conversation mode: pacify or defy (default: pacify)",
				},
				"persona": map[string]interface{}{
					"type":        "string",
					"description": "Persona that produced the reply (default: the mode's default persona)",
				},
				"mood": map[string]interface{}{
					"type":        "string",
					"description": "Detected mood for this exchange, if any",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Chat session identifier (default: a new session)",
				},
				"response_time": map[string]interface{}{
					"type":        "number",
					"description": "Response latency in seconds",
				},
			},
			Required: []string{"user_input", "ai_response"},
		},
	}, handlers.SaveExchange)

	// 2. get_context - Recent exchanges formatted for prompt injection
	server.AddTool(mcp.Tool{
		Name:        "get_context",
		Description: "Get recent conversation context formatted for prompt injection, oldest first. Optionally filtered by mode.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of exchanges to include (default: 20)",
					"default":     20,
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "Only include exchanges from this mode (pacify or defy)",
				},
			},
		},
	}, handlers.GetContext)

	// 3. get_history - Raw conversation history with optional search
	server.AddTool(mcp.Tool{
		Name:        "get_history",
		Description: "Get recent conversation history, newest first. A search term restricts results to matching inputs and responses.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of conversations to return (default: 10)",
					"default":     10,
				},
				"search": map[string]interface{}{
					"type":        "string",
					"description": "Case-insensitive term to match against inputs and responses",
				},
			},
		},
	}, handlers.GetHistory)

	// 4. learn_preference - Record a confidence-weighted learned preference
	server.AddTool(mcp.Tool{
		Name:        "learn_preference",
		Description: "Record a learned user preference. Repeated observations reinforce the stored confidence.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"key": map[string]interface{}{
					"type":        "string",
					"description": "Preference key (e.g. response_length, humor_style)",
				},
				"value": map[string]interface{}{
					"type":        "string",
					"description": "Preference value (e.g. short, playful)",
				},
				"confidence": map[string]interface{}{
					"type":        "number",
					"description": "Confidence between 0 and 1 (default: 0.6)",
					"default":     0.6,
				},
			},
			Required: []string{"key", "value"},
		},
	}, handlers.LearnPreference)

	// 5. get_preferences - Manual and learned preferences together
	server.AddTool(mcp.Tool{
		Name:        "get_preferences",
		Description: "Get the user's manual preferences and confidence-weighted learned preferences.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetPreferences)

	// 6. get_opinions - Formed opinions with stance and confidence
	server.AddTool(mcp.Tool{
		Name:        "get_opinions",
		Description: "List opinions the assistant has formed, strongest first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"min_confidence": map[string]interface{}{
					"type":        "number",
					"description": "Only include opinions at or above this confidence (default: 0)",
					"default":     0,
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of opinions to return (default: 20)",
					"default":     20,
				},
			},
		},
	}, handlers.GetOpinions)

	// 7. get_emotional_state - Recent sentiment trajectory
	server.AddTool(mcp.Tool{
		Name:        "get_emotional_state",
		Description: "Summarize the user's recent emotional trajectory: average sentiment, trend, and dominant emotion.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"hours": map[string]interface{}{
					"type":        "number",
					"description": "Window size in hours (default: 24)",
					"default":     24,
				},
			},
		},
	}, handlers.GetEmotionalState)

	// 8. get_stats - Usage statistics across modes and personas
	server.AddTool(mcp.Tool{
		Name:        "get_stats",
		Description: "Get conversation statistics: totals per mode, persona usage, and response averages.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetStats)

	// 9. suggest_switch - Advisory persona/mode switch evaluation
	server.AddTool(mcp.Tool{
		Name:        "suggest_switch",
		Description: "Evaluate whether a persona or mode switch would better fit the given input. Advisory only; nothing is changed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user_input": map[string]interface{}{
					"type":        "string",
					"description": "The user message to evaluate",
				},
				"mode": map[string]interface{}{
					"type":        "string",
					"description": "Currently active mode (default: pacify)",
				},
				"persona": map[string]interface{}{
					"type":        "string",
					"description": "Currently active persona (default: the mode's default persona)",
				},
			},
			Required: []string{"user_input"},
		},
	}, handlers.SuggestSwitch)

	return handlers
}
