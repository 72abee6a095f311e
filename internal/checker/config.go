package checker

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Configuration defaults. The defaults mirror the panel used in
// production: one fast model sampled at three temperatures for vote
// diversity, with a token budget sized for a short JSON answer.
const (
	DefaultModel     = "llama-3.1-8b-instant"
	DefaultMaxTokens = 256

	// AttemptCount is the fixed size of the judgment panel.
	AttemptCount = 3
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// AttemptConfig describes one judgment attempt: which model to ask and
// at what sampling temperature. Attempts need not use distinct models;
// temperature variation alone provides vote diversity.
type AttemptConfig struct {
	// Model is the provider-side model identifier for this attempt.
	Model string `yaml:"model" json:"model" validate:"required"`

	// Temperature controls sampling randomness for this attempt (0.0-1.0).
	Temperature float64 `yaml:"temperature" json:"temperature" validate:"min=0.0,max=1.0"`
}

// Config defines the checker's judgment panel. Exactly AttemptCount
// attempts are required; the panel is fixed per checker instance and
// shared read-only across all checks.
type Config struct {
	// Attempts is the ordered panel of judgment configurations.
	Attempts []AttemptConfig `yaml:"attempts" json:"attempts" validate:"required,len=3,dive"`

	// MaxTokens bounds the generated output per attempt. The judge only
	// needs to emit one small JSON object, so the budget stays tight.
	MaxTokens int `yaml:"max_tokens" json:"max_tokens" validate:"required,min=1,max=1024"`
}

// DefaultConfig returns the production panel: the default model at
// temperatures 0.1, 0.3, and 0.5.
func DefaultConfig() Config {
	return Config{
		Attempts: []AttemptConfig{
			{Model: DefaultModel, Temperature: 0.1},
			{Model: DefaultModel, Temperature: 0.3},
			{Model: DefaultModel, Temperature: 0.5},
		},
		MaxTokens: DefaultMaxTokens,
	}
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// LoadConfig reads a YAML panel configuration from path, overlaying it
// on the defaults so partial files stay valid.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
