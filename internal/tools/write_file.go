package tools

import (
	"os"

	"github.com/smartfolder/smartfolder/internal/sandbox"
)

// writeFileTool creates a new file. Per spec.md §4.7 write_file is for new
// text artifacts only -- it refuses binary extensions and refuses to
// overwrite an existing path.
type writeFileTool struct{}

func (writeFileTool) Name() string { return "write_file" }

func (writeFileTool) Description() string {
	return "Create a new file with the given text content. Refuses to overwrite an existing file."
}

func (writeFileTool) Schema() map[string]any {
	return objectSchema([]string{"path", "content"}, map[string]map[string]any{
		"path":    stringProp("Path of the new file, relative to the folder root."),
		"content": stringProp("Text content to write."),
	})
}

func (writeFileTool) Execute(ctx Context, args map[string]any) Result {
	rel, ok := argString(args, "path")
	if !ok {
		return Result{OK: false, Error: "path is required"}
	}
	content, ok := argString(args, "content")
	if !ok {
		return Result{OK: false, Error: "content is required"}
	}
	abs, err := assertTextTarget(ctx.FolderPath, rel)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if err := sandbox.AssertNotExists(abs); err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	if ctx.DryRun {
		return Result{OK: true, Payload: map[string]any{"skipped": true, "reason": "dry_run", "path": rel}}
	}

	if err := sandbox.EnsureParentDir(abs); err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if ctx.Suppressor != nil {
		ctx.Suppressor.Mark(abs)
	}
	return Result{OK: true, Payload: map[string]any{"path": rel, "bytesWritten": len(content)}}
}
