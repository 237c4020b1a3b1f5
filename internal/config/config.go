// Package config loads the repository-local settings that live beside
// the object store rather than in the working tree: the default commit
// author identity, a structured log level, and the toggle for the
// optional advisory lock.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the JSON document stored at <root>/config.json. It is
// written once by init and not rewritten afterwards; the author command
// changes the author kept in the repository state, not this file.
type Config struct {
	Author   string `json:"author"`
	LogLevel string `json:"log_level"`
	Lock     bool   `json:"lock"`
}

// Default is the configuration init writes for a fresh repository.
func Default() Config {
	return Config{
		Author:   "Default author",
		LogLevel: "info",
		Lock:     true,
	}
}

// Load reads the configuration at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return c, nil
}

// Save writes the configuration at path, overwriting any prior contents.
func Save(path string, c Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
