// Package tools implements the nine sandboxed tools of spec.md §4.7: each
// has a JSON-schema input contract (expressed the same way the teacher's
// pkg/mcp/register.go builds mcp.NewTool definitions) and every one refuses
// to operate outside its folder.
package tools

import (
	"encoding/json"
	"log"
	"time"

	"github.com/smartfolder/smartfolder/internal/suppress"
)

// Context carries the per-job state every tool needs: the folder root to
// sandbox against, whether mutations are suppressed (dry_run), and the
// shared self-change suppressor tools mark on success.
type Context struct {
	FolderPath string
	DryRun     bool
	Suppressor *suppress.Set
}

// Result is the JSON-serializable outcome of one tool call, per spec.md §3.
type Result struct {
	OK      bool           `json:"ok"`
	Payload map[string]any `json:"payload,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Tool is one sandboxed operation the agent may invoke.
type Tool interface {
	Name() string
	Description() string
	Schema() map[string]any
	Execute(ctx Context, args map[string]any) Result
}

// Registry holds the full set of known tools and resolves a FolderSpec's
// configured subset.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry constructs the registry with all nine tools wired in.
func NewRegistry() *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range []Tool{
		readFileTool{}, writeFileTool{}, renameFileTool{}, moveFileTool{},
		grepTool{}, sedTool{}, headTool{}, tailTool{}, createFolderTool{},
	} {
		r.tools[t.Name()] = t
		r.order = append(r.order, t.Name())
	}
	return r
}

// Get returns the tool registered under name, if any.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Subset returns the tools named in ids, in the registry's canonical order,
// skipping any unknown id.
func (r *Registry) Subset(ids []string) []Tool {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []Tool
	for _, name := range r.order {
		if wanted[name] {
			out = append(out, r.tools[name])
		}
	}
	return out
}

// All returns every registered tool in canonical order.
func (r *Registry) All() []Tool {
	return r.Subset(r.order)
}

// Execute runs tool by name with args, logging the invocation per spec.md
// §4.7 ("every tool invocation is logged with {tool, args-sanitized,
// duration_ms, success, truncated-output}").
func (r *Registry) Execute(name string, ctx Context, args map[string]any) Result {
	t, ok := r.tools[name]
	if !ok {
		return Result{OK: false, Error: "unknown tool: " + name}
	}

	start := time.Now()
	res := t.Execute(ctx, args)
	logInvocation(name, args, time.Since(start), res)
	return res
}

func logInvocation(name string, args map[string]any, dur time.Duration, res Result) {
	const maxOutput = 200
	sanitized, _ := json.Marshal(sanitizeArgs(args))
	output, _ := json.Marshal(res)
	if len(output) > maxOutput {
		output = append(output[:maxOutput:maxOutput], "...(truncated)"...)
	}
	log.Printf("tool=%s args=%s duration_ms=%d success=%v output=%s", name, sanitized, dur.Milliseconds(), res.OK, output)
}

// sanitizeArgs drops/truncates large or sensitive fields before logging, so
// a write_file("x", "<200KB of content>") call doesn't flood the log.
func sanitizeArgs(args map[string]any) map[string]any {
	const maxLen = 200
	out := make(map[string]any, len(args))
	for k, v := range args {
		if s, ok := v.(string); ok && len(s) > maxLen {
			out[k] = s[:maxLen] + "...(truncated)"
			continue
		}
		out[k] = v
	}
	return out
}
