package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `{
		"ollama_url": "http://ollama:11434",
		"default_model": "mistral",
		"question_model": "llama3.1",
		"port": 9090,
		"max_retries": 5
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://ollama:11434", cfg.OllamaURL)
	assert.Equal(t, "mistral", cfg.DefaultModel)
	assert.Equal(t, "llama3.1", cfg.QuestionModel)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OLLAMA_URL", "http://env:11434")
	t.Setenv("OLLAMA_MODEL", "envmodel")
	t.Setenv("PORT", "7070")

	cfg := &Config{}
	cfg.FromEnv()
	assert.Equal(t, "http://env:11434", cfg.OllamaURL)
	assert.Equal(t, "envmodel", cfg.DefaultModel)
	assert.Equal(t, 7070, cfg.Port)
}

func TestFromEnvDoesNotOverrideFile(t *testing.T) {
	t.Setenv("OLLAMA_URL", "http://env:11434")

	cfg := &Config{OllamaURL: "http://file:11434"}
	cfg.FromEnv()
	assert.Equal(t, "http://file:11434", cfg.OllamaURL, "file values win over environment")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"empty config", Config{}, false},
		{"valid config", Config{Port: 8080, TimeoutSeconds: 60, MaxRetries: 3}, false},
		{"negative port", Config{Port: -1}, true},
		{"port too large", Config{Port: 70000}, true},
		{"negative timeout", Config{TimeoutSeconds: -5}, true},
		{"negative retries", Config{MaxRetries: -1}, true},
		{"negative retention", Config{RetentionMins: -10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{DefaultModel: "mistral"}
	merged := cfg.MergeWithDefaults()

	assert.Equal(t, "mistral", merged.DefaultModel, "set values survive")
	assert.Equal(t, DefaultOllamaURL, merged.OllamaURL)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultMaxRetries, merged.MaxRetries)
	assert.Equal(t, DefaultUploadDir, merged.UploadDir)
	assert.Empty(t, merged.AnalysisModel, "model overrides are not defaulted")
}

func TestModelFor(t *testing.T) {
	cfg := Config{
		DefaultModel:  "base",
		QuestionModel: "qmodel",
	}

	assert.Equal(t, "base", cfg.ModelFor(PurposeAnalysis), "no override falls back to default")
	assert.Equal(t, "qmodel", cfg.ModelFor(PurposeQuestion))
	assert.Equal(t, "base", cfg.ModelFor(PurposeGuidance))
	assert.Equal(t, "base", cfg.ModelFor(Purpose("unknown")))
}

func TestDurationAccessors(t *testing.T) {
	cfg := Config{TimeoutSeconds: 90, RetryDelaySecs: 4, RetentionMins: 30}
	assert.Equal(t, 90*time.Second, cfg.Timeout())
	assert.Equal(t, 4*time.Second, cfg.RetryDelay())
	assert.Equal(t, 30*time.Minute, cfg.Retention())
}
