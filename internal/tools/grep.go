package tools

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/smartfolder/smartfolder/internal/sandbox"
)

// grepTool performs a literal substring search over a text file's lines,
// per spec.md §4.7 ("Literal substring search ... returns up to 100
// {line, content} matches and a truncated flag").
type grepTool struct{}

const grepMaxMatches = 100

func (grepTool) Name() string { return "grep" }

func (grepTool) Description() string {
	return fmt.Sprintf("Search a text file for lines containing a literal substring, returning at most %d matches with line numbers.", grepMaxMatches)
}

func (grepTool) Schema() map[string]any {
	return objectSchema([]string{"path", "pattern"}, map[string]map[string]any{
		"path":            stringProp("Path to the file, relative to the folder root."),
		"pattern":         stringProp("Literal substring to search for (not a regular expression)."),
		"caseInsensitive": {"type": "boolean", "description": "Match case-insensitively."},
	})
}

func (grepTool) Execute(ctx Context, args map[string]any) Result {
	rel, ok := argString(args, "path")
	if !ok {
		return Result{OK: false, Error: "path is required"}
	}
	pattern, ok := argString(args, "pattern")
	if !ok {
		return Result{OK: false, Error: "pattern is required"}
	}
	caseInsensitive, _ := args["caseInsensitive"].(bool)

	abs, err := assertTextTarget(ctx.FolderPath, rel)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	if err := sandbox.AssertExists(abs); err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	f, err := os.Open(abs)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	defer f.Close()

	needle := pattern
	if caseInsensitive {
		needle = strings.ToLower(needle)
	}

	type match struct {
		Line    int    `json:"line"`
		Content string `json:"content"`
	}
	var matches []match
	truncated := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		haystack := line
		if caseInsensitive {
			haystack = strings.ToLower(line)
		}
		if strings.Contains(haystack, needle) {
			if len(matches) >= grepMaxMatches {
				truncated = true
				break
			}
			matches = append(matches, match{Line: lineNo, Content: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	return Result{OK: true, Payload: map[string]any{
		"matches":   matches,
		"truncated": truncated,
	}}
}
