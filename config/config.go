// Package config defines the file-based configuration for the agentloop CLI
// and examples. A Config is always a fully populated struct: Load starts
// from DefaultConfig and overlays whatever the YAML file sets, so callers
// never have to re-apply defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	MaxRetries int            `yaml:"max_retries"`
	Log        LogConfig      `yaml:"log"`
	Strategy   StrategyConfig `yaml:"strategy"`
	Model      ModelConfig    `yaml:"model"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error, default "info"
	Format string `yaml:"format"` // text|json, default "text"
}

// StrategyConfig selects how plans, verdicts and responses are produced.
type StrategyConfig struct {
	Planner   string `yaml:"planner"`    // rule|model, default "rule"
	GoalParam string `yaml:"goal_param"` // parameter filled with the goal text on rule plans
}

// ModelConfig configures the language model used by model-backed strategies.
// Ignored when the planner is "rule".
type ModelConfig struct {
	Provider    string  `yaml:"provider"` // mock|openai|anthropic, default "mock"
	Name        string  `yaml:"name"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		MaxRetries: 1,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Strategy: StrategyConfig{
			Planner:   "rule",
			GoalParam: "query",
		},
		Model: ModelConfig{
			Provider:    "mock",
			Temperature: 0.2,
			MaxTokens:   1024,
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults. A missing
// key keeps its default; an unreadable or malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the cross-field constraints a YAML decode cannot express.
func (c *Config) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", c.MaxRetries)
	}

	switch c.Strategy.Planner {
	case "rule", "model":
	default:
		return fmt.Errorf("unknown planner %q (want rule or model)", c.Strategy.Planner)
	}

	switch c.Model.Provider {
	case "mock", "openai", "anthropic":
	default:
		return fmt.Errorf("unknown model provider %q (want mock, openai or anthropic)", c.Model.Provider)
	}

	return nil
}
