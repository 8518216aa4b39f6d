package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/smartfolder/smartfolder/internal/promptbuilder"
	"github.com/smartfolder/smartfolder/internal/tools"
)

// Completer is the subset of Client the driver depends on, so tests can
// substitute a fake gateway.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}

// PerToolResult records one executed tool call alongside its result, for
// the job's history record.
type PerToolResult struct {
	Call   ToolCall
	Result tools.Result
}

// RunResult is what a completed driver run returns to the job (C9).
type RunResult struct {
	FinalText     string
	PerToolResult []PerToolResult
	StepsUsed     int
}

// Driver runs the bounded model-call / tool-call loop described in
// spec.md §4.8.
type Driver struct {
	Gateway  Completer
	Registry *tools.Registry
	Model    string
	MaxSteps int
}

// Run executes the loop contract: send, execute any tool calls in order,
// repeat until the model returns plain text, the step cap is hit, or the
// gateway errors fatally.
func (d *Driver) Run(ctx context.Context, systemPrompt string, userMsg promptbuilder.Message, toolCtx tools.Context, toolIDs []string) (RunResult, error) {
	toolDefs := make([]tools.ModelToolDef, 0, len(toolIDs))
	for _, t := range d.Registry.Subset(toolIDs) {
		toolDefs = append(toolDefs, tools.ToModelToolDef(t))
	}

	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: toGatewayContent(userMsg)},
	}

	var result RunResult
	maxSteps := d.MaxSteps
	if maxSteps <= 0 {
		maxSteps = 25
	}

	for step := 0; step < maxSteps; step++ {
		resp, err := d.Gateway.Complete(ctx, CompletionRequest{
			Model:    d.Model,
			Messages: messages,
			Tools:    toolDefs,
		})
		if err != nil {
			return result, fmt.Errorf("agent driver: %w", err)
		}
		result.StepsUsed = step + 1

		if len(resp.ToolCalls) == 0 {
			result.FinalText = resp.Text
			return result, nil
		}

		messages = append(messages, Message{Role: "assistant", ToolCalls: resp.ToolCalls})

		// Tool calls execute sequentially, in the order the model issued
		// them, because later calls may reference files a prior call
		// renamed or moved.
		for _, call := range resp.ToolCalls {
			res := d.Registry.Execute(call.Name, toolCtx, call.Arguments)
			result.PerToolResult = append(result.PerToolResult, PerToolResult{Call: call, Result: res})
			messages = append(messages, Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Content:    res,
			})
			if !res.OK {
				log.Printf("agent: tool %s failed: %s", call.Name, res.Error)
			}
		}
	}

	result.FinalText = "step cap reached without a final answer"
	return result, nil
}

// toGatewayContent flattens a promptbuilder.Message into the gateway's
// content shape: a plain string for text-only messages, or a list of
// typed parts when a binary body is attached.
func toGatewayContent(msg promptbuilder.Message) any {
	if len(msg.Parts) == 1 && msg.Parts[0].ImageB64 == "" && msg.Parts[0].FileBytes == nil {
		return msg.Parts[0].Text
	}
	parts := make([]map[string]any, 0, len(msg.Parts))
	for _, p := range msg.Parts {
		switch {
		case p.ImageB64 != "":
			parts = append(parts, map[string]any{"type": "image", "base64": p.ImageB64, "mediaType": p.MediaType})
		case p.FileBytes != nil:
			parts = append(parts, map[string]any{"type": "file", "bytes": p.FileBytes, "mediaType": p.MediaType})
		default:
			parts = append(parts, map[string]any{"type": "text", "text": p.Text})
		}
	}
	return parts
}
