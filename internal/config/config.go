// ABOUTME: Configuration loading and parsing for support-gateway
// ABOUTME: Supports YAML files with environment variable expansion and sane defaults

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config represents the complete support-gateway configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Chat     ChatConfig     `yaml:"chat"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`

	// Environment toggles development behavior (error detail in 500 bodies).
	// Anything other than "development" is treated as production.
	Environment string `yaml:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LLMConfig holds completion provider configuration.
// An empty APIKey disables completion; the gateway still serves requests
// and the orchestrator answers with fallback replies.
type LLMConfig struct {
	APIKey        string  `yaml:"api_key"`
	BaseURL       string  `yaml:"base_url"`
	Model         string  `yaml:"model"`
	Temperature   float32 `yaml:"temperature"`
	MaxTokens     int     `yaml:"max_tokens"`
	HistoryWindow int     `yaml:"history_window"`
}

// ChatConfig holds orchestrator limits
type ChatConfig struct {
	MaxMessageLength int `yaml:"max_message_length"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: ":3001",
		},
		Database: DatabaseConfig{
			Path: "data/support-gateway.db",
		},
		LLM: LLMConfig{
			BaseURL:       "https://api.groq.com/openai/v1",
			Model:         "llama-3.3-70b-versatile",
			Temperature:   0.7,
			MaxTokens:     500,
			HistoryWindow: 10,
		},
		Chat: ChatConfig{
			MaxMessageLength: 2000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// A missing file is not an error: defaults apply, adjusted by environment
// variables. Environment variables in the format ${VAR_NAME} are expanded
// inside the file before parsing.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		expandedData := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// applyEnvOverrides applies the plain environment variables the deployment
// platform sets directly, taking precedence over file values.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.HTTPAddr = ":" + port
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		c.Database.Path = path
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		c.Server.Environment = env
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Chat.MaxMessageLength <= 0 {
		return fmt.Errorf("chat.max_message_length must be positive")
	}
	if c.LLM.HistoryWindow <= 0 {
		return fmt.Errorf("llm.history_window must be positive")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive")
	}
	return nil
}

// Development reports whether development-mode behavior is enabled.
func (c *Config) Development() bool {
	return c.Server.Environment == "development"
}
