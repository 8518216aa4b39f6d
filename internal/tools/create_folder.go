package tools

import (
	"os"

	"github.com/smartfolder/smartfolder/internal/sandbox"
)

// createFolderTool makes a new directory (and any missing parents) within
// the sandboxed folder.
type createFolderTool struct{}

func (createFolderTool) Name() string { return "create_folder" }

func (createFolderTool) Description() string {
	return "Create a new directory, including any missing parent directories."
}

func (createFolderTool) Schema() map[string]any {
	return objectSchema([]string{"path"}, map[string]map[string]any{
		"path": stringProp("Directory path to create, relative to the folder root."),
	})
}

func (createFolderTool) Execute(ctx Context, args map[string]any) Result {
	rel, ok := argString(args, "path")
	if !ok {
		return Result{OK: false, Error: "path is required"}
	}
	abs, err := sandbox.Contain(ctx.FolderPath, rel)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	if ctx.DryRun {
		return Result{OK: true, Payload: map[string]any{"skipped": true, "reason": "dry_run", "path": rel}}
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if ctx.Suppressor != nil {
		ctx.Suppressor.Mark(abs)
	}
	return Result{OK: true, Payload: map[string]any{"path": rel}}
}
