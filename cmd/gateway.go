package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/smartfolder/smartfolder/internal/agent"
	"github.com/smartfolder/smartfolder/internal/config"
	"github.com/smartfolder/smartfolder/internal/statedir"
)

// buildGateway resolves an API key from the config, the AI_GATEWAY_API_KEY
// environment variable, or the ~/.smartfolder/token fallback file (spec.md
// §6), and constructs a gateway client. A nil, nil return means no key was
// found anywhere; the supervisor tolerates a nil gateway and starts anyway,
// but every job (dry-run included) then records a "no AI gateway" error in
// its history instead of running the agent.
func buildGateway(ai config.AI) (agent.Completer, error) {
	key := resolveAPIKey(ai.APIKey)
	if key == "" {
		return nil, nil
	}
	return agent.NewClient("", key)
}

func resolveAPIKey(configured string) string {
	if strings.TrimSpace(configured) != "" {
		return configured
	}
	if v := os.Getenv("AI_GATEWAY_API_KEY"); v != "" {
		return v
	}
	raw, err := os.ReadFile(filepath.Join(statedir.Home(), "token"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}
