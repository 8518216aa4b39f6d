package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/smartfolder/smartfolder/internal/suppress"
	"github.com/smartfolder/smartfolder/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerRegistersEveryTool(t *testing.T) {
	registry := tools.NewRegistry()
	s := NewServer(registry, suppress.New(), Config{FolderPath: t.TempDir()})
	assert.NotNil(t, s)
}

func TestNewServerHonorsToolIDs(t *testing.T) {
	registry := tools.NewRegistry()
	s := NewServer(registry, suppress.New(), Config{
		FolderPath: t.TempDir(),
		ToolIDs:    []string{"read_file", "write_file"},
	})
	assert.NotNil(t, s)
}

func TestToolDefinitionCarriesTheToolsSchema(t *testing.T) {
	registry := tools.NewRegistry()
	rf, ok := registry.Get("read_file")
	require.True(t, ok)

	def := toolDefinition(rf)
	assert.Equal(t, "read_file", def.Name)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(def.RawInputSchema, &schema))
	assert.Equal(t, rf.Schema()["type"], schema["type"])
}

func TestHandlerForRunsTheNamedToolAgainstTheSandbox(t *testing.T) {
	registry := tools.NewRegistry()
	dir := t.TempDir()
	toolCtx := tools.Context{FolderPath: dir, Suppressor: suppress.New()}

	handler := handlerFor(registry, "create_folder", toolCtx)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"path": "inbox"}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.IsError)
}

func TestHandlerForReportsToolFailureAsAnMCPError(t *testing.T) {
	registry := tools.NewRegistry()
	dir := t.TempDir()
	toolCtx := tools.Context{FolderPath: dir, Suppressor: suppress.New()}

	handler := handlerFor(registry, "read_file", toolCtx)
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"path": "missing.txt"}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
