package feed

import (
	"encoding/json"
	"fmt"
	"os"
)

// ClientConfig holds the Reddit-facing client settings loaded from the key
// file. Reddit rate limits by user agent, so it is deployment-specific
// rather than an env var.
type ClientConfig struct {
	UserAgent string `json:"user_agent"`
}

// LoadClientConfig reads and validates the client config at path.
func LoadClientConfig(path string) (*ClientConfig, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("LoadClientConfig: read %s: %w", path, err)
	}

	var cfg ClientConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("LoadClientConfig: parse %s: %w", path, err)
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("LoadClientConfig: %s: user_agent is required", path)
	}
	return &cfg, nil
}
