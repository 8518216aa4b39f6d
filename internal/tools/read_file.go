package tools

import (
	"github.com/smartfolder/smartfolder/internal/sandbox"
)

// readFileTool returns a file's contents (capped at sandbox.DefaultReadCap).
// Per spec.md §4.7 it refuses binary-extension paths -- those bytes were
// already attached to the prompt by the content provider (C5).
type readFileTool struct{}

func (readFileTool) Name() string { return "read_file" }

func (readFileTool) Description() string {
	return "Read the text contents of a file within the watched folder. Refuses binary file types and files over 256KiB."
}

func (readFileTool) Schema() map[string]any {
	return objectSchema([]string{"path"}, map[string]map[string]any{
		"path": stringProp("Path to the file, relative to the folder root."),
	})
}

func (readFileTool) Execute(ctx Context, args map[string]any) Result {
	rel, ok := argString(args, "path")
	if !ok {
		return Result{OK: false, Error: "path is required"}
	}
	abs, err := assertTextTarget(ctx.FolderPath, rel)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if err := sandbox.AssertExists(abs); err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	data, err := sandbox.ReadCapped(abs, sandbox.DefaultReadCap)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	return Result{OK: true, Payload: map[string]any{
		"bytes":   len(data),
		"preview": string(data),
	}}
}
