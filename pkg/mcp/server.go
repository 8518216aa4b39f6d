// Package mcp stands up an MCP stdio server exposing the sandboxed folder
// tools (internal/tools) for external MCP-aware clients, the same way the
// teacher's pkg/mcp/register.go exposes vault tools -- grounded on that
// package's mcp.NewTool/s.AddTool wiring, generalized to forward to
// tools.Registry.Execute instead of vault-specific actions.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/smartfolder/smartfolder/internal/suppress"
	"github.com/smartfolder/smartfolder/internal/tools"
)

// Config carries the single folder this MCP server exposes tools against,
// and the tool subset to register.
type Config struct {
	FolderPath string
	DryRun     bool
	ToolIDs    []string // empty means every known tool
}

// NewServer builds an MCPServer with every configured tool registered
// against cfg's folder, ready for server.ServeStdio. suppressor is shared
// with any folder watcher running in the same process, so a write made
// through this server is ignored by the watcher the same way an
// agent-driven write would be.
func NewServer(registry *tools.Registry, suppressor *suppress.Set, cfg Config) *server.MCPServer {
	s := server.NewMCPServer(
		"smartfolder",
		"v0.1.0",
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions()),
	)

	toolCtx := tools.Context{FolderPath: cfg.FolderPath, DryRun: cfg.DryRun, Suppressor: suppressor}

	selected := registry.All()
	if len(cfg.ToolIDs) > 0 {
		selected = registry.Subset(cfg.ToolIDs)
	}
	for _, t := range selected {
		def := toolDefinition(t)
		s.AddTool(def, handlerFor(registry, t.Name(), toolCtx))
	}
	return s
}

// toolDefinition converts a tools.Tool's JSON-schema contract into an
// mcp.Tool via its raw-schema constructor, so every tool's single schema
// (internal/tools/schema.go) is the one source of truth shared by both the
// model-facing gateway (C8) and this server, per spec.md §9's "a single
// authoritative schema per tool" design note.
func toolDefinition(t tools.Tool) mcp.Tool {
	raw, err := json.Marshal(t.Schema())
	if err != nil {
		raw = []byte(`{"type":"object"}`)
	}
	return mcp.NewToolWithRawSchema(t.Name(), t.Description(), raw)
}

func handlerFor(registry *tools.Registry, name string, toolCtx tools.Context) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		result := registry.Execute(name, toolCtx, args)
		encoded, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding result: %s", err)), nil
		}
		if !result.OK {
			return mcp.NewToolResultError(string(encoded)), nil
		}
		return mcp.NewToolResultText(string(encoded)), nil
	}
}

func instructions() string {
	return `This MCP server exposes smartfolder's sandboxed file tools for a single
watched folder. Every tool refuses to touch paths outside that folder.

Tools mirror what the autonomous agent loop can do: read_file, write_file,
rename_file, move_file, grep, sed, head, tail, create_folder. rename_file and
move_file preserve git history when the folder is a git repository.

If the server was started with --dry-run, mutating tools report what they
would have done without touching disk.`
}
