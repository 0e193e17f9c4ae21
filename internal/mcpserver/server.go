// Package mcpserver exposes the mem0 memory store as MCP tools over SSE.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MegaGrindStone/go-mcp"
	"github.com/rs/zerolog"
)

const previewLimit = 200

// MemoryStore is the subset of the mem0 client the tool server needs.
type MemoryStore interface {
	Add(ctx context.Context, content string) error
	Search(ctx context.Context, query string) ([]string, error)
	GetAll(ctx context.Context) ([]string, error)
}

// Server implements mcp.ToolServer, translating MCP tool calls into mem0
// memory operations. Tool failures are reported as results with IsError set
// rather than protocol errors, so clients always receive a textual outcome.
type Server struct {
	store  MemoryStore
	logger zerolog.Logger
}

// NewServer creates a tool server backed by the given memory store.
func NewServer(store MemoryStore, logger zerolog.Logger) Server {
	return Server{
		store:  store,
		logger: logger.With().Str("component", "mcpserver").Logger(),
	}
}

// ListTools implements mcp.ToolServer interface.
func (s Server) ListTools(
	context.Context,
	mcp.ListToolsParams,
	mcp.ProgressReporter,
	mcp.RequestClientFunc,
) (mcp.ListToolsResult, error) {
	return toolList, nil
}

// CallTool implements mcp.ToolServer interface.
func (s Server) CallTool(
	ctx context.Context,
	params mcp.CallToolParams,
	_ mcp.ProgressReporter,
	_ mcp.RequestClientFunc,
) (mcp.CallToolResult, error) {
	switch params.Name {
	case "add_coding_preference":
		return s.addPreference(ctx, params)
	case "get_all_coding_preferences":
		return s.getAllPreferences(ctx)
	case "search_coding_preferences":
		return s.searchPreferences(ctx, params)
	default:
		return mcp.CallToolResult{}, fmt.Errorf("tool not found: %s", params.Name)
	}
}

func (s Server) addPreference(ctx context.Context, params mcp.CallToolParams) (mcp.CallToolResult, error) {
	var args addPreferenceArgs
	if err := json.Unmarshal(params.Arguments, &args); err != nil {
		return mcp.CallToolResult{}, err
	}

	s.logger.Info().Int("size_bytes", len(args.Text)).Msg("Adding coding preference")

	if err := s.store.Add(ctx, args.Text); err != nil {
		s.logger.Error().Err(err).Msg("Failed to add coding preference")
		return errorResult(fmt.Sprintf("Error adding preference: %v", err)), nil
	}

	return textResult(fmt.Sprintf("Successfully added preference: %s", preview(args.Text))), nil
}

func (s Server) getAllPreferences(ctx context.Context) (mcp.CallToolResult, error) {
	memories, err := s.store.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to get coding preferences")
		return errorResult(fmt.Sprintf("Error getting preferences: %v", err)), nil
	}

	s.logger.Info().Int("count", len(memories)).Msg("Retrieved coding preferences")

	return jsonResult(memories)
}

func (s Server) searchPreferences(ctx context.Context, params mcp.CallToolParams) (mcp.CallToolResult, error) {
	var args searchPreferencesArgs
	if err := json.Unmarshal(params.Arguments, &args); err != nil {
		return mcp.CallToolResult{}, err
	}

	memories, err := s.store.Search(ctx, args.Query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", args.Query).Msg("Failed to search coding preferences")
		return errorResult(fmt.Sprintf("Error searching preferences: %v", err)), nil
	}

	s.logger.Info().Int("count", len(memories)).Str("query", args.Query).Msg("Searched coding preferences")

	return jsonResult(memories)
}

func jsonResult(memories []string) (mcp.CallToolResult, error) {
	if memories == nil {
		memories = []string{}
	}
	memoriesJSON, err := json.MarshalIndent(memories, "", "  ")
	if err != nil {
		return mcp.CallToolResult{}, err
	}
	return textResult(string(memoriesJSON)), nil
}

func textResult(text string) mcp.CallToolResult {
	return mcp.CallToolResult{
		Content: []mcp.Content{
			{
				Type: mcp.ContentTypeText,
				Text: text,
			},
		},
		IsError: false,
	}
}

func errorResult(text string) mcp.CallToolResult {
	return mcp.CallToolResult{
		Content: []mcp.Content{
			{
				Type: mcp.ContentTypeText,
				Text: text,
			},
		},
		IsError: true,
	}
}

func preview(text string) string {
	if len(text) > previewLimit {
		return text[:previewLimit] + "..."
	}
	return text
}
