// ABOUTME: MCP tool handler implementations for the duality server
// ABOUTME: Contains handler implementations with proper error handling for all nine tools
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/duality/internal/config"
	"github.com/harper/duality/internal/core"
	"github.com/harper/duality/internal/models"
	"github.com/harper/duality/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	store *storage.Store
	cfg   *config.Config
}

// SaveExchange handles the save_exchange tool
func (h *Handlers) SaveExchange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userInput, err := request.RequireString("user_input")
	if err != nil {
		return mcp.NewToolResultError("user_input argument is required and must be a string"), nil
	}
	aiResponse, err := request.RequireString("ai_response")
	if err != nil {
		return mcp.NewToolResultError("ai_response argument is required and must be a string"), nil
	}

	mode := request.GetString("mode", string(models.ModePacify))
	if !models.ValidMode(mode) {
		return mcp.NewToolResultError("mode must be pacify or defy"), nil
	}

	personaName := request.GetString("persona", "")
	if personaName == "" {
		personaName = models.DefaultPersona(models.Mode(mode)).Name
	} else {
		persona, ok := models.PersonaByName(personaName)
		if !ok || persona.Mode != models.Mode(mode) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid persona %q for mode %q", personaName, mode)), nil
		}
	}

	sessionID := request.GetString("session_id", "")
	if sessionID == "" {
		sessionID = models.NewSessionID()
	}

	conv, err := models.NewConversation(h.cfg.UserID, userInput, aiResponse, mode, personaName, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	conv.Mood = request.GetString("mood", "")
	conv.ResponseTime = request.GetFloat("response_time", 0)

	if err := h.store.SaveConversation(conv); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save exchange: %v", err)), nil
	}

	response := map[string]interface{}{
		"saved":      true,
		"session_id": sessionID,
		"word_count": conv.WordCount,
		"timestamp":  conv.Timestamp.Format(time.RFC3339),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetContext handles the get_context tool
func (h *Handlers) GetContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", h.cfg.ContextLimit)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be a positive number"), nil
	}

	mode := request.GetString("mode", "")
	if mode != "" && !models.ValidMode(mode) {
		return mcp.NewToolResultError("mode must be pacify or defy"), nil
	}

	contextText, err := h.store.RecentContext(h.cfg.UserID, limit, mode)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load context: %v", err)), nil
	}

	response := map[string]interface{}{
		"context": contextText,
		"limit":   limit,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetHistory handles the get_history tool
func (h *Handlers) GetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 10)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be a positive number"), nil
	}

	var (
		conversations []models.Conversation
		err           error
	)
	if search := request.GetString("search", ""); search != "" {
		conversations, err = h.store.SearchConversations(h.cfg.UserID, search, limit)
	} else {
		conversations, err = h.store.History(h.cfg.UserID, limit)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load history: %v", err)), nil
	}

	items := make([]map[string]interface{}, 0, len(conversations))
	for _, conv := range conversations {
		items = append(items, map[string]interface{}{
			"timestamp":   conv.Timestamp.Format(time.RFC3339),
			"user_input":  conv.UserInput,
			"ai_response": conv.AIResponse,
			"mode":        conv.Mode,
			"persona":     conv.Persona,
			"mood":        conv.Mood,
			"session_id":  conv.SessionID,
		})
	}

	response := map[string]interface{}{
		"conversations": items,
		"count":         len(items),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// LearnPreference handles the learn_preference tool
func (h *Handlers) LearnPreference(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key argument is required and must be a string"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value argument is required and must be a string"), nil
	}

	confidence := request.GetFloat("confidence", 0.6)
	if confidence < 0 || confidence > 1 {
		return mcp.NewToolResultError("confidence must be between 0 and 1"), nil
	}

	if err := h.store.LearnPreference(h.cfg.UserID, key, value, confidence); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to learn preference: %v", err)), nil
	}

	response := map[string]interface{}{
		"learned":    true,
		"key":        key,
		"value":      value,
		"confidence": confidence,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetPreferences handles the get_preferences tool
func (h *Handlers) GetPreferences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	manual, err := h.store.AllPreferences(h.cfg.UserID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load preferences: %v", err)), nil
	}

	learned, err := h.store.AllLearnedPreferences(h.cfg.UserID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load learned preferences: %v", err)), nil
	}

	learnedItems := make([]map[string]interface{}, 0, len(learned))
	for _, pref := range learned {
		learnedItems = append(learnedItems, map[string]interface{}{
			"key":                 pref.Key,
			"value":               pref.Value,
			"confidence":          pref.Confidence,
			"reinforcement_count": pref.ReinforcementCount,
		})
	}

	response := map[string]interface{}{
		"preferences": manual,
		"learned":     learnedItems,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetOpinions handles the get_opinions tool
func (h *Handlers) GetOpinions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minConfidence := request.GetFloat("min_confidence", 0)
	limit := request.GetInt("limit", 20)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be a positive number"), nil
	}

	opinions, err := h.store.AllOpinions(h.cfg.UserID, minConfidence, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load opinions: %v", err)), nil
	}

	items := make([]map[string]interface{}, 0, len(opinions))
	for _, opinion := range opinions {
		items = append(items, map[string]interface{}{
			"topic":       opinion.Topic,
			"stance":      opinion.Stance,
			"confidence":  opinion.Confidence,
			"formed_date": opinion.FormedDate.Format(time.RFC3339),
		})
	}

	response := map[string]interface{}{
		"opinions": items,
		"count":    len(items),
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetEmotionalState handles the get_emotional_state tool
func (h *Handlers) GetEmotionalState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window := h.cfg.EmotionalWindow
	if hours := request.GetInt("hours", 0); hours > 0 {
		window = time.Duration(hours) * time.Hour
	}

	pattern, err := h.store.EmotionalPattern(h.cfg.UserID, window)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load emotional state: %v", err)), nil
	}
	if pattern == nil {
		pattern = &models.EmotionalPattern{Trend: "neutral", DominantEmotion: "neutral"}
	}

	response := map[string]interface{}{
		"avg_sentiment":    pattern.AvgSentiment,
		"trend":            pattern.Trend,
		"dominant_emotion": pattern.DominantEmotion,
		"sample_size":      pattern.SampleSize,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetStats handles the get_stats tool
func (h *Handlers) GetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.store.Stats(h.cfg.UserID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load stats: %v", err)), nil
	}

	responseJSON, err := json.Marshal(stats)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SuggestSwitch handles the suggest_switch tool
func (h *Handlers) SuggestSwitch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userInput, err := request.RequireString("user_input")
	if err != nil {
		return mcp.NewToolResultError("user_input argument is required and must be a string"), nil
	}

	mode := request.GetString("mode", string(models.ModePacify))
	if !models.ValidMode(mode) {
		return mcp.NewToolResultError("mode must be pacify or defy"), nil
	}

	personaName := request.GetString("persona", "")
	if personaName == "" {
		personaName = models.DefaultPersona(models.Mode(mode)).Name
	} else if _, ok := models.PersonaByName(personaName); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown persona %q", personaName)), nil
	}

	response := map[string]interface{}{
		"suggestion": nil,
	}
	if suggestion := core.SuggestSwitch(userInput, models.Mode(mode), personaName); suggestion != nil {
		response["suggestion"] = map[string]interface{}{
			"type":        string(suggestion.Type),
			"current":     suggestion.Current,
			"recommended": suggestion.Recommended,
			"reason":      suggestion.Reason,
		}
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
