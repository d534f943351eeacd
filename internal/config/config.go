// Package config resolves runtime configuration: environment defaults
// for file locations plus an optional YAML rules file overriding the
// style rules baked into the policy.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds file locations. Flags override env vars, env vars
// override the defaults here.
type Config struct {
	// ClosetPath is the closet inventory file.
	ClosetPath string `env:"OUTFIT_CLOSET" envDefault:"closet.json"`

	// ImagesDir holds the image files pieces reference.
	ImagesDir string `env:"OUTFIT_IMAGES" envDefault:"images"`

	// HistoryDB is the outfit history database. Empty disables history.
	HistoryDB string `env:"OUTFIT_HISTORY_DB"`

	// RulesPath is an optional rules file. Empty uses built-in rules.
	RulesPath string `env:"OUTFIT_RULES"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
