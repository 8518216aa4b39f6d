package tools

import (
	"fmt"
	"os"

	"github.com/smartfolder/smartfolder/internal/classifier"
	"github.com/smartfolder/smartfolder/internal/sandbox"
)

// moveFileTool relocates a file or directory. Per spec.md §4.7 it behaves
// like rename_file, except the extension-preservation rule is skipped when
// from is a directory.
type moveFileTool struct{}

func (moveFileTool) Name() string { return "move_file" }

func (moveFileTool) Description() string {
	return "Move a file or directory to a new path within the folder. Files must keep their extension; directories may not."
}

func (moveFileTool) Schema() map[string]any {
	return objectSchema([]string{"from", "to"}, map[string]map[string]any{
		"from": stringProp("Current path, relative to the folder root."),
		"to":   stringProp("Destination path, relative to the folder root."),
	})
}

func (moveFileTool) Execute(ctx Context, args map[string]any) Result {
	from, ok := argString(args, "from")
	if !ok {
		return Result{OK: false, Error: "from is required"}
	}
	to, ok := argString(args, "to")
	if !ok {
		return Result{OK: false, Error: "to is required"}
	}

	srcAbs, err := sandbox.Contain(ctx.FolderPath, from)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	info, err := os.Stat(srcAbs)
	if err != nil {
		return Result{OK: false, Error: fmt.Sprintf("does not exist: %v", err)}
	}

	if !info.IsDir() {
		oldExt := classifier.FinalExtension(from)
		newExt := classifier.FinalExtension(to)
		if oldExt != newExt {
			return Result{OK: false, Error: fmt.Sprintf("extension mismatch: %q must end with %q", to, oldExt)}
		}
	}

	dstAbs, err := sandbox.Contain(ctx.FolderPath, to)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if err := sandbox.AssertNotExists(dstAbs); err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	if ctx.DryRun {
		return Result{OK: true, Payload: map[string]any{"skipped": true, "reason": "dry_run", "oldName": from, "newName": to}}
	}

	if err := sandbox.EnsureParentDir(dstAbs); err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	gitPreserved, err := moveOrRename(srcAbs, dstAbs)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if ctx.Suppressor != nil {
		ctx.Suppressor.Mark(srcAbs)
		ctx.Suppressor.Mark(dstAbs)
	}
	return Result{OK: true, Payload: map[string]any{
		"moved":               true,
		"oldName":             from,
		"newName":             to,
		"message":             fmt.Sprintf("moved %s to %s", from, to),
		"gitHistoryPreserved": gitPreserved,
	}}
}
