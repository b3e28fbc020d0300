package masteryls

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy values for unrecognized question types
const (
	UnknownTypesSkip = "skip"
	UnknownTypesKeep = "keep"
)

// Config holds the tolerance policies of the pipeline. The corpus is not
// self-consistent (some blocks carry ids, some do not), so the policies
// are explicit and configurable instead of silently assumed.
type Config struct {
	// RequireID makes a header without an id a diagnostic. Off by default:
	// the bank then synthesizes a deterministic file#ordinal key.
	RequireID bool `yaml:"require_id"`

	// UnknownTypes decides what happens to unrecognized type tags:
	// "skip" (default) reports and drops the block, "keep" admits it to
	// the bank as an inert unknown question.
	UnknownTypes string `yaml:"unknown_types"`

	// Workers is the number of files parsed in parallel
	Workers int `yaml:"workers"`

	// Extensions lists the file suffixes treated as markdown
	Extensions []string `yaml:"extensions"`
}

// DefaultConfig returns the default pipeline configuration
func DefaultConfig() *Config {
	return &Config{
		RequireID:    false,
		UnknownTypes: UnknownTypesSkip,
		Workers:      4,
		Extensions:   []string{".md", ".markdown"},
	}
}

// LoadConfig reads a YAML config file, filling unset fields with defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.UnknownTypes {
	case UnknownTypesSkip, UnknownTypesKeep:
	default:
		return fmt.Errorf("invalid unknown_types policy %q, want %q or %q", c.UnknownTypes, UnknownTypesSkip, UnknownTypesKeep)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	return nil
}
