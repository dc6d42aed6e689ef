// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and overrides

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "support-gateway.yaml")

	configContent := `
server:
  http_addr: "0.0.0.0:8080"
  environment: "development"

database:
  path: "./test.db"

llm:
  api_key: "gsk-test"
  model: "llama-3.1-8b-instant"
  max_tokens: 256
  history_window: 4

chat:
  max_message_length: 500

logging:
  level: "debug"
  format: "json"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if !cfg.Development() {
		t.Error("Development() = false, want true")
	}
	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}
	if cfg.LLM.APIKey != "gsk-test" {
		t.Errorf("LLM.APIKey = %q, want %q", cfg.LLM.APIKey, "gsk-test")
	}
	if cfg.LLM.Model != "llama-3.1-8b-instant" {
		t.Errorf("LLM.Model = %q, want %q", cfg.LLM.Model, "llama-3.1-8b-instant")
	}
	if cfg.LLM.MaxTokens != 256 {
		t.Errorf("LLM.MaxTokens = %d, want 256", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.HistoryWindow != 4 {
		t.Errorf("LLM.HistoryWindow = %d, want 4", cfg.LLM.HistoryWindow)
	}
	if cfg.Chat.MaxMessageLength != 500 {
		t.Errorf("Chat.MaxMessageLength = %d, want 500", cfg.Chat.MaxMessageLength)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}

	// Unset fields keep their defaults
	if cfg.LLM.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("LLM.BaseURL = %q, want Groq default", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Temperature != 0.7 {
		t.Errorf("LLM.Temperature = %v, want 0.7", cfg.LLM.Temperature)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != ":3001" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, ":3001")
	}
	if cfg.Chat.MaxMessageLength != 2000 {
		t.Errorf("Chat.MaxMessageLength = %d, want 2000", cfg.Chat.MaxMessageLength)
	}
	if cfg.LLM.Model != "llama-3.3-70b-versatile" {
		t.Errorf("LLM.Model = %q, want default model", cfg.LLM.Model)
	}
	if cfg.Development() {
		t.Error("Development() = true, want false")
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_SUPPORT_DB", "/tmp/expanded.db")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "support-gateway.yaml")

	configContent := `
database:
  path: "${TEST_SUPPORT_DB}"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/expanded.db" {
		t.Errorf("Database.Path = %q, want expanded value", cfg.Database.Path)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GROQ_API_KEY", "gsk-from-env")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != ":9090" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, ":9090")
	}
	if cfg.LLM.APIKey != "gsk-from-env" {
		t.Errorf("LLM.APIKey = %q, want env value", cfg.LLM.APIKey)
	}
	if !cfg.Development() {
		t.Error("Development() = false, want true")
	}
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Server.HTTPAddr = "" }, "http_addr"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"zero max length", func(c *Config) { c.Chat.MaxMessageLength = 0 }, "max_message_length"},
		{"zero window", func(c *Config) { c.LLM.HistoryWindow = 0 }, "history_window"},
		{"zero max tokens", func(c *Config) { c.LLM.MaxTokens = 0 }, "max_tokens"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tc.want)
			}
		})
	}
}
