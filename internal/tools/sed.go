package tools

import (
	"bytes"
	"os"
	"regexp"
	"strings"

	"github.com/smartfolder/smartfolder/internal/sandbox"
)

// sedTool performs a literal global replace across a file's contents. Per
// spec.md §4.7 find is regex-escaped before use -- the caller's string is
// never interpreted as a regular expression.
type sedTool struct{}

func (sedTool) Name() string { return "sed" }

func (sedTool) Description() string {
	return "Replace every literal occurrence of find with replace in a text file. Writes back only if the content changed."
}

func (sedTool) Schema() map[string]any {
	return objectSchema([]string{"path", "find", "replace"}, map[string]map[string]any{
		"path":            stringProp("Path to the file, relative to the folder root."),
		"find":            stringProp("Literal text to find (not a regular expression)."),
		"replace":         stringProp("Replacement text."),
		"caseInsensitive": {"type": "boolean", "description": "Match case-insensitively."},
	})
}

func (sedTool) Execute(ctx Context, args map[string]any) Result {
	rel, ok := argString(args, "path")
	if !ok {
		return Result{OK: false, Error: "path is required"}
	}
	find, ok := argString(args, "find")
	if !ok {
		return Result{OK: false, Error: "find is required"}
	}
	replace, ok := argString(args, "replace")
	if !ok {
		return Result{OK: false, Error: "replace is required"}
	}
	caseInsensitive, _ := args["caseInsensitive"].(bool)

	abs, err := assertTextTarget(ctx.FolderPath, rel)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	data, err := sandbox.ReadCapped(abs, sandbox.DefaultReadCap)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	pattern := regexp.QuoteMeta(find)
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	replacements := len(re.FindAllIndex(data, -1))
	if replacements == 0 {
		return Result{OK: true, Payload: map[string]any{"replacements": 0, "changed": false}}
	}
	// Escape $ so the literal replacement text can't be misread as a regexp
	// group reference by ReplaceAll.
	literalReplace := strings.ReplaceAll(replace, "$", "$$")
	replaced := re.ReplaceAll(data, []byte(literalReplace))
	if bytes.Equal(replaced, data) {
		return Result{OK: true, Payload: map[string]any{"replacements": replacements, "changed": false}}
	}

	if ctx.DryRun {
		return Result{OK: true, Payload: map[string]any{"skipped": true, "reason": "dry_run", "replacements": replacements}}
	}

	if err := os.WriteFile(abs, replaced, 0o644); err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if ctx.Suppressor != nil {
		ctx.Suppressor.Mark(abs)
	}
	return Result{OK: true, Payload: map[string]any{"replacements": replacements, "changed": true}}
}
