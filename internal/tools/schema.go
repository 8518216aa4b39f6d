package tools

// stringProp/intProp build the same JSON-schema property shape
// mcp.WithString/mcp.WithNumber emit, so ToModelToolDef and
// the MCP stdio server (pkg/mcp) can share one schema per tool.

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func objectSchema(required []string, props map[string]map[string]any) map[string]any {
	properties := make(map[string]any, len(props))
	for k, v := range props {
		properties[k] = v
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// ModelToolDef is the provider-agnostic function-calling shape the agent
// driver (C8) sends to a model gateway: {name, description, parameters}.
type ModelToolDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToModelToolDef converts a Tool into the gateway's function-calling shape.
func ToModelToolDef(t Tool) ModelToolDef {
	return ModelToolDef{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.Schema(),
	}
}

// argString/argInt pull a typed arg out of the loosely-typed args
// map the model gateway hands back (JSON numbers decode as float64).
func argString(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func argInt(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}
