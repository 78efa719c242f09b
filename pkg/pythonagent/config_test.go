package pythonagent

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Model != "gpt-3.5-turbo" {
		t.Fatalf("unexpected default model: %q", cfg.Model)
	}
	if cfg.MaxTokens != 1000 {
		t.Fatalf("unexpected default max tokens: %d", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.7 {
		t.Fatalf("unexpected default temperature: %v", cfg.Temperature)
	}
	if cfg.ChatTimeout != 30*time.Second || cfg.ScriptTimeout != 30*time.Second {
		t.Fatalf("unexpected default timeouts: chat=%s script=%s", cfg.ChatTimeout, cfg.ScriptTimeout)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("unexpected default fetch timeout: %s", cfg.FetchTimeout)
	}
	if cfg.TrustedHost != "raw.githubusercontent.com" {
		t.Fatalf("unexpected default trusted host: %q", cfg.TrustedHost)
	}
}

func TestLoadConfigFileOverlaysPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "model: gpt-4o-mini\ntemperature: 0.2\nscript_timeout_seconds: 5\ntrusted_host: raw.example.com\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigFile(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Fatalf("model not overridden: %q", cfg.Model)
	}
	if cfg.Temperature != 0.2 {
		t.Fatalf("temperature not overridden: %v", cfg.Temperature)
	}
	if cfg.ScriptTimeout != 5*time.Second {
		t.Fatalf("script timeout not overridden: %s", cfg.ScriptTimeout)
	}
	if cfg.TrustedHost != "raw.example.com" {
		t.Fatalf("trusted host not overridden: %q", cfg.TrustedHost)
	}
	// Absent fields keep their defaults.
	if cfg.MaxTokens != 1000 {
		t.Fatalf("max tokens should keep default, got %d", cfg.MaxTokens)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("fetch timeout should keep default, got %s", cfg.FetchTimeout)
	}
}

func TestLoadConfigFileRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("modle: typo\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfigFile(path, DefaultConfig()); err == nil {
		t.Fatal("expected error for unknown config field")
	}
}

func TestLoadConfigFileMissingFile(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"), DefaultConfig()); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
