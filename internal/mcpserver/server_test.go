package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/MegaGrindStone/go-mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	added    []string
	searched []string
	memories []string
	err      error
}

func (f *fakeStore) Add(_ context.Context, content string) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, content)
	return nil
}

func (f *fakeStore) Search(_ context.Context, query string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.searched = append(f.searched, query)
	return f.memories, nil
}

func (f *fakeStore) GetAll(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.memories, nil
}

func callTool(t *testing.T, srv Server, name string, args any) mcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	require.NoError(t, err)

	result, err := srv.CallTool(context.Background(), mcp.CallToolParams{
		Name:      name,
		Arguments: argsJSON,
	}, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	return result
}

func TestServer_ListTools(t *testing.T) {
	srv := NewServer(&fakeStore{}, zerolog.Nop())

	result, err := srv.ListTools(context.Background(), mcp.ListToolsParams{}, nil, nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 3)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.NotEmpty(t, tool.InputSchema)
	}
	assert.Equal(t, []string{"add_coding_preference", "get_all_coding_preferences", "search_coding_preferences"}, names)
}

func TestServer_AddPreference(t *testing.T) {
	store := &fakeStore{}
	srv := NewServer(store, zerolog.Nop())

	result := callTool(t, srv, "add_coding_preference", addPreferenceArgs{Text: "def main(): pass"})

	assert.False(t, result.IsError)
	assert.Equal(t, "Successfully added preference: def main(): pass", result.Content[0].Text)
	assert.Equal(t, []string{"def main(): pass"}, store.added)
}

func TestServer_AddPreferenceTruncatesLongPreview(t *testing.T) {
	store := &fakeStore{}
	srv := NewServer(store, zerolog.Nop())

	long := strings.Repeat("x", 500)
	result := callTool(t, srv, "add_coding_preference", addPreferenceArgs{Text: long})

	assert.False(t, result.IsError)
	assert.Equal(t, "Successfully added preference: "+long[:200]+"...", result.Content[0].Text)
}

func TestServer_AddPreferenceFailure(t *testing.T) {
	srv := NewServer(&fakeStore{err: errors.New("upstream down")}, zerolog.Nop())

	result := callTool(t, srv, "add_coding_preference", addPreferenceArgs{Text: "snippet"})

	assert.True(t, result.IsError)
	assert.Equal(t, "Error adding preference: upstream down", result.Content[0].Text)
}

func TestServer_GetAllPreferences(t *testing.T) {
	srv := NewServer(&fakeStore{memories: []string{"pref one", "pref two"}}, zerolog.Nop())

	result := callTool(t, srv, "get_all_coding_preferences", struct{}{})

	assert.False(t, result.IsError)

	var memories []string
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &memories))
	assert.Equal(t, []string{"pref one", "pref two"}, memories)
}

func TestServer_GetAllPreferencesEmpty(t *testing.T) {
	srv := NewServer(&fakeStore{}, zerolog.Nop())

	result := callTool(t, srv, "get_all_coding_preferences", struct{}{})

	assert.False(t, result.IsError)
	assert.Equal(t, "[]", result.Content[0].Text)
}

func TestServer_GetAllPreferencesFailure(t *testing.T) {
	srv := NewServer(&fakeStore{err: errors.New("timeout")}, zerolog.Nop())

	result := callTool(t, srv, "get_all_coding_preferences", struct{}{})

	assert.True(t, result.IsError)
	assert.Equal(t, "Error getting preferences: timeout", result.Content[0].Text)
}

func TestServer_SearchPreferences(t *testing.T) {
	store := &fakeStore{memories: []string{"goroutine pool pattern"}}
	srv := NewServer(store, zerolog.Nop())

	result := callTool(t, srv, "search_coding_preferences", searchPreferencesArgs{Query: "concurrency"})

	assert.False(t, result.IsError)
	assert.Equal(t, []string{"concurrency"}, store.searched)

	var memories []string
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &memories))
	assert.Equal(t, []string{"goroutine pool pattern"}, memories)
}

func TestServer_SearchPreferencesFailure(t *testing.T) {
	srv := NewServer(&fakeStore{err: errors.New("bad gateway")}, zerolog.Nop())

	result := callTool(t, srv, "search_coding_preferences", searchPreferencesArgs{Query: "anything"})

	assert.True(t, result.IsError)
	assert.Equal(t, "Error searching preferences: bad gateway", result.Content[0].Text)
}

func TestServer_UnknownTool(t *testing.T) {
	srv := NewServer(&fakeStore{}, zerolog.Nop())

	_, err := srv.CallTool(context.Background(), mcp.CallToolParams{
		Name:      "delete_everything",
		Arguments: json.RawMessage(`{}`),
	}, nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool not found")
}

func TestServer_MalformedArguments(t *testing.T) {
	srv := NewServer(&fakeStore{}, zerolog.Nop())

	_, err := srv.CallTool(context.Background(), mcp.CallToolParams{
		Name:      "add_coding_preference",
		Arguments: json.RawMessage(`{not json`),
	}, nil, nil)

	assert.Error(t, err)
}
