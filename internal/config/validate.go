package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error (got %q)", c.Log.Level)
	}

	if c.Feed.Channel == "" {
		return fmt.Errorf("feed.channel must not be empty")
	}
	if c.Feed.BufferSize < 0 {
		return fmt.Errorf("feed.buffer_size must be >= 0 (got %d)", c.Feed.BufferSize)
	}

	if c.Classify.MaxTokens <= 0 {
		return fmt.Errorf("classify.max_tokens must be > 0 (got %d)", c.Classify.MaxTokens)
	}

	return nil
}
