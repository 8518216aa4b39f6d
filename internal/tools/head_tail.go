package tools

import (
	"bufio"
	"os"

	"github.com/smartfolder/smartfolder/internal/sandbox"
)

const defaultLineCount = 10

// headTool returns the first N lines of a text file.
type headTool struct{}

func (headTool) Name() string { return "head" }

func (headTool) Description() string {
	return "Return the first N lines of a file (default 10)."
}

func (headTool) Schema() map[string]any {
	return objectSchema([]string{"path"}, map[string]map[string]any{
		"path":  stringProp("Path to the file, relative to the folder root."),
		"lines": intProp("Number of lines to return (default 10)."),
	})
}

func (headTool) Execute(ctx Context, args map[string]any) Result {
	return readLines(ctx, args, false)
}

// tailTool returns the last N lines of a text file.
type tailTool struct{}

func (tailTool) Name() string { return "tail" }

func (tailTool) Description() string {
	return "Return the last N lines of a file (default 10)."
}

func (tailTool) Schema() map[string]any {
	return objectSchema([]string{"path"}, map[string]map[string]any{
		"path":  stringProp("Path to the file, relative to the folder root."),
		"lines": intProp("Number of lines to return (default 10)."),
	})
}

func (tailTool) Execute(ctx Context, args map[string]any) Result {
	return readLines(ctx, args, true)
}

func readLines(ctx Context, args map[string]any, fromEnd bool) Result {
	rel, ok := argString(args, "path")
	if !ok {
		return Result{OK: false, Error: "path is required"}
	}
	n := argInt(args, "lines", defaultLineCount)
	if n <= 0 {
		n = defaultLineCount
	}

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

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var lines []string
	if !fromEnd {
		for scanner.Scan() && len(lines) < n {
			lines = append(lines, scanner.Text())
		}
	} else {
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		start := len(all) - n
		if start < 0 {
			start = 0
		}
		lines = all[start:]
	}
	if err := scanner.Err(); err != nil {
		return Result{OK: false, Error: err.Error()}
	}

	return Result{OK: true, Payload: map[string]any{"lines": lines}}
}
