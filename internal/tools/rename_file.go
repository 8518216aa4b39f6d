package tools

import (
	"fmt"

	"github.com/smartfolder/smartfolder/internal/classifier"
	"github.com/smartfolder/smartfolder/internal/sandbox"
)

// renameFileTool renames or relocates a file. Per spec.md §4.7 it must
// preserve the source extension: if from ends in E, to must end in E too,
// else ExtensionMismatch.
type renameFileTool struct{}

func (renameFileTool) Name() string { return "rename_file" }

func (renameFileTool) Description() string {
	return "Rename a file to a new path within the folder. The new path must keep the original file extension."
}

func (renameFileTool) Schema() map[string]any {
	return objectSchema([]string{"from", "to"}, map[string]map[string]any{
		"from": stringProp("Current path of the file, relative to the folder root."),
		"to":   stringProp("New path for the file, relative to the folder root."),
	})
}

func (renameFileTool) Execute(ctx Context, args map[string]any) Result {
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
	if err := sandbox.AssertExists(srcAbs); err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	oldExt := classifier.FinalExtension(from)
	newExt := classifier.FinalExtension(to)
	if oldExt != newExt {
		return Result{OK: false, Error: fmt.Sprintf("extension mismatch: %q must end with %q", to, oldExt)}
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
		"renamed":             true,
		"oldName":             from,
		"newName":             to,
		"message":             fmt.Sprintf("renamed %s to %s", from, to),
		"gitHistoryPreserved": gitPreserved,
	}}
}
