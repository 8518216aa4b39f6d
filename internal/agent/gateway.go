// Package agent implements the bounded multi-turn driver (C8) and its model
// gateway client, adapted from the teacher's OpenAI embeddings provider
// (pkg/embeddings/provider_openai.go) -- same request-building, auth-header,
// and status-code-check shape, now posting chat-completion-style messages
// with tool definitions instead of embedding batches.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/smartfolder/smartfolder/internal/tools"
)

// Message is one turn in the transcript sent to the gateway.
type Message struct {
	Role       string     `json:"role"`
	Content    any        `json:"content,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is one model-issued tool invocation.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// CompletionRequest is the gateway request envelope.
type CompletionRequest struct {
	Model       string                `json:"model"`
	Messages    []Message             `json:"messages"`
	Tools       []tools.ModelToolDef  `json:"tools,omitempty"`
	Temperature float64               `json:"temperature,omitempty"`
}

// CompletionResponse is the gateway's reply: either a final text answer or
// one or more tool calls to execute before the next turn.
type CompletionResponse struct {
	Text      string     `json:"text"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Client talks to the configured AI gateway over HTTP.
type Client struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// DefaultEndpoint matches the gateway the teacher's provider_openai.go
// targeted, generalized to a chat-completions-shaped path.
const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

// NewClient constructs a gateway client, defaulting the endpoint and HTTP
// client the same way NewOpenAIProvider defaulted model/endpoint.
func NewClient(endpoint, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("agent gateway client requires an API key")
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{Endpoint: endpoint, APIKey: apiKey, HTTPClient: http.DefaultClient}, nil
}

// Complete sends req to the gateway and decodes its response. Provider/HTTP
// failures are wrapped with a diagnostic naming possible causes, per
// spec.md §7's ProviderError kind.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("encode gateway request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return CompletionResponse{}, fmt.Errorf("gateway unreachable (network or DNS problem): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return CompletionResponse{}, fmt.Errorf(
			"gateway returned status %d (possible causes: unsupported file type sent to model, model mis-configured, gateway outage): %s",
			resp.StatusCode, string(msg))
	}

	var out CompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CompletionResponse{}, fmt.Errorf("decode gateway response: %w", err)
	}
	return out, nil
}
