package cmd

import (
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"
	"github.com/smartfolder/smartfolder/internal/suppress"
	"github.com/smartfolder/smartfolder/internal/tools"
	smartmcp "github.com/smartfolder/smartfolder/pkg/mcp"
	"github.com/spf13/cobra"
)

var (
	mcpFolderPath string
	mcpDryRun     bool
	mcpToolIDs    []string
)

// mcpCmd stands up an MCP stdio server exposing the nine sandboxed folder
// tools for a single folder, the supplemental feature described in
// SPEC_FULL.md §4.1, grounded on the teacher's `mcp` subcommand
// (cmd/mcp.go) and its pkg/mcp/register.go tool registration.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing smartfolder's sandboxed tools for one folder",
	Long: `Runs a Model Context Protocol server over stdio, exposing read_file,
write_file, rename_file, move_file, grep, sed, head, tail, and create_folder
scoped to a single folder. Lets external MCP clients (Claude Desktop,
Cursor) drive the same sandbox the autonomous agent loop uses, bypassing
the model gateway and the file-watcher pipeline entirely.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if mcpFolderPath == "" {
			return fmt.Errorf("--folder is required")
		}
		registry := tools.NewRegistry()
		suppressor := suppress.New()

		s := smartmcp.NewServer(registry, suppressor, smartmcp.Config{
			FolderPath: mcpFolderPath,
			DryRun:     mcpDryRun,
			ToolIDs:    mcpToolIDs,
		})

		if verbose {
			log.Printf("mcp: serving folder %s (dryRun=%v)", mcpFolderPath, mcpDryRun)
		}
		return server.ServeStdio(s)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpFolderPath, "folder", "", "folder to sandbox tool calls against (required)")
	mcpCmd.Flags().BoolVar(&mcpDryRun, "dry-run", false, "report what mutating tools would do without touching disk")
	mcpCmd.Flags().StringSliceVar(&mcpToolIDs, "tools", nil, "restrict to these tool names (default: all nine)")
	rootCmd.AddCommand(mcpCmd)
}
