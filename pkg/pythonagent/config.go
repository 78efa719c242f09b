package pythonagent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSystemPrompt is the persona used when no override is configured.
const DefaultSystemPrompt = "You are a helpful and friendly AI assistant. Explain things simply."

// Config holds all runtime configuration for the agent.
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string

	MaxTokens   int64
	Temperature float64

	// ChatTimeout bounds one chat-completion request.
	ChatTimeout time.Duration
	// FetchTimeout bounds one remote script download.
	FetchTimeout time.Duration
	// ScriptTimeout bounds one script subprocess, wall clock.
	ScriptTimeout time.Duration

	// TrustedHost is the substring a remote script URL's hostname must contain.
	TrustedHost string
	// Interpreter overrides interpreter lookup when non-empty.
	Interpreter string

	Verbose bool
	Logger  Logger
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		Model:         "gpt-3.5-turbo",
		SystemPrompt:  DefaultSystemPrompt,
		MaxTokens:     1000,
		Temperature:   0.7,
		ChatTimeout:   30 * time.Second,
		FetchTimeout:  10 * time.Second,
		ScriptTimeout: 30 * time.Second,
		TrustedHost:   "raw.githubusercontent.com",
		Logger:        NopLogger{},
	}
}

func normalizeConfig(cfg Config) Config {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.TrustedHost = strings.TrimSpace(cfg.TrustedHost)
	cfg.Interpreter = strings.TrimSpace(cfg.Interpreter)
	if cfg.Logger == nil {
		cfg.Logger = NopLogger{}
	}

	defaults := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		cfg.SystemPrompt = defaults.SystemPrompt
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	if cfg.Temperature < 0 {
		cfg.Temperature = defaults.Temperature
	}
	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = defaults.ChatTimeout
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaults.FetchTimeout
	}
	if cfg.ScriptTimeout <= 0 {
		cfg.ScriptTimeout = defaults.ScriptTimeout
	}
	if cfg.TrustedHost == "" {
		cfg.TrustedHost = defaults.TrustedHost
	}
	return cfg
}

// configFile mirrors the optional YAML configuration file.
type configFile struct {
	BaseURL        string   `yaml:"base_url"`
	Model          string   `yaml:"model"`
	SystemPrompt   string   `yaml:"system_prompt"`
	MaxTokens      *int64   `yaml:"max_tokens"`
	Temperature    *float64 `yaml:"temperature"`
	ChatTimeoutSec *int     `yaml:"chat_timeout_seconds"`
	FetchTimeout   *int     `yaml:"fetch_timeout_seconds"`
	ScriptTimeout  *int     `yaml:"script_timeout_seconds"`
	TrustedHost    string   `yaml:"trusted_host"`
	Interpreter    string   `yaml:"interpreter"`
}

// LoadConfigFile overlays settings from a YAML file onto cfg.
// Only fields present in the file override; unknown fields are rejected.
func LoadConfigFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var file configFile
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if strings.TrimSpace(file.BaseURL) != "" {
		cfg.BaseURL = strings.TrimSpace(file.BaseURL)
	}
	if strings.TrimSpace(file.Model) != "" {
		cfg.Model = strings.TrimSpace(file.Model)
	}
	if strings.TrimSpace(file.SystemPrompt) != "" {
		cfg.SystemPrompt = file.SystemPrompt
	}
	if file.MaxTokens != nil {
		cfg.MaxTokens = *file.MaxTokens
	}
	if file.Temperature != nil {
		cfg.Temperature = *file.Temperature
	}
	if file.ChatTimeoutSec != nil {
		cfg.ChatTimeout = time.Duration(*file.ChatTimeoutSec) * time.Second
	}
	if file.FetchTimeout != nil {
		cfg.FetchTimeout = time.Duration(*file.FetchTimeout) * time.Second
	}
	if file.ScriptTimeout != nil {
		cfg.ScriptTimeout = time.Duration(*file.ScriptTimeout) * time.Second
	}
	if strings.TrimSpace(file.TrustedHost) != "" {
		cfg.TrustedHost = strings.TrimSpace(file.TrustedHost)
	}
	if strings.TrimSpace(file.Interpreter) != "" {
		cfg.Interpreter = strings.TrimSpace(file.Interpreter)
	}
	return cfg, nil
}
