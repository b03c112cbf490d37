// Package config provides configuration loading and validation for the
// analyzer service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults applied by MergeWithDefaults when neither the config file
// nor the environment provides a value.
const (
	DefaultOllamaURL       = "http://localhost:11434"
	DefaultModel           = "llama3.1"
	DefaultPort            = 8080
	DefaultTimeoutSeconds  = 180
	DefaultMaxRetries      = 3
	DefaultRetryDelay      = 2 * time.Second
	DefaultUploadDir       = "uploads"
	DefaultUploadRetention = time.Hour
)

// Config holds the service configuration, loadable from a JSON file.
// All fields are optional; missing values fall back to environment
// variables and then to defaults.
type Config struct {
	// Model runtime
	OllamaURL     string `json:"ollama_url,omitempty"`     // Ollama base URL
	DefaultModel  string `json:"default_model,omitempty"`  // Model used when no override applies
	AnalysisModel string `json:"analysis_model,omitempty"` // Override for extraction calls
	QuestionModel string `json:"question_model,omitempty"` // Override for question generation
	GuidanceModel string `json:"guidance_model,omitempty"` // Override for roadmap generation

	// Server
	Port           int    `json:"port,omitempty"`              // HTTP listen port
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`   // Per-generation timeout
	UploadDir      string `json:"upload_dir,omitempty"`        // Where uploaded resumes are staged
	RetentionMins  int    `json:"retention_minutes,omitempty"` // How long staged uploads are kept

	// Retry behavior
	MaxRetries     int `json:"max_retries,omitempty"`         // Generation attempts per call
	RetryDelaySecs int `json:"retry_delay_seconds,omitempty"` // Initial delay, doubles per attempt

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Debug-level logging
}

// Load reads configuration from a JSON file. An empty path yields an
// empty Config so environment and defaults still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	return &cfg, nil
}

// FromEnv fills empty fields from environment variables
func (c *Config) FromEnv() {
	if c.OllamaURL == "" {
		c.OllamaURL = os.Getenv("OLLAMA_URL")
	}
	if c.DefaultModel == "" {
		c.DefaultModel = os.Getenv("OLLAMA_MODEL")
	}
	if c.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Port = p
		}
	}
	if c.UploadDir == "" {
		c.UploadDir = os.Getenv("UPLOAD_DIR")
	}
}

// Validate checks that the configuration has usable values
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config error: 'max_retries' must be non-negative")
	}
	if c.RetryDelaySecs < 0 {
		return fmt.Errorf("config error: 'retry_delay_seconds' must be non-negative")
	}
	if c.RetentionMins < 0 {
		return fmt.Errorf("config error: 'retention_minutes' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// the package defaults. Per-purpose model overrides intentionally stay
// empty; ModelFor falls through to the default model.
func (c *Config) MergeWithDefaults() Config {
	result := *c

	if result.OllamaURL == "" {
		result.OllamaURL = DefaultOllamaURL
	}
	if result.DefaultModel == "" {
		result.DefaultModel = DefaultModel
	}
	if result.Port == 0 {
		result.Port = DefaultPort
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = DefaultMaxRetries
	}
	if result.RetryDelaySecs == 0 {
		result.RetryDelaySecs = int(DefaultRetryDelay / time.Second)
	}
	if result.UploadDir == "" {
		result.UploadDir = DefaultUploadDir
	}
	if result.RetentionMins == 0 {
		result.RetentionMins = int(DefaultUploadRetention / time.Minute)
	}
	return result
}

// Purpose selects which model override applies to a call.
type Purpose string

// Model purposes
const (
	PurposeAnalysis Purpose = "analysis"
	PurposeQuestion Purpose = "question"
	PurposeGuidance Purpose = "guidance"
)

// ModelFor returns the model for a purpose, falling back to the
// default model when no override is configured
func (c *Config) ModelFor(p Purpose) string {
	switch p {
	case PurposeAnalysis:
		if c.AnalysisModel != "" {
			return c.AnalysisModel
		}
	case PurposeQuestion:
		if c.QuestionModel != "" {
			return c.QuestionModel
		}
	case PurposeGuidance:
		if c.GuidanceModel != "" {
			return c.GuidanceModel
		}
	}
	return c.DefaultModel
}

// Timeout returns the generation timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the initial retry delay as a duration
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySecs) * time.Second
}

// Retention returns the upload retention window as a duration
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionMins) * time.Minute
}
