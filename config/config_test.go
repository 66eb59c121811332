package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "port: \"8080\"\ngemini_model: \"gemini-2.0-flash\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("gemini_model = %q", cfg.GeminiModel)
	}

	// defaults
	if cfg.Provider != "gemini" {
		t.Errorf("provider default = %q", cfg.Provider)
	}
	if cfg.HistoryWindow != 6 {
		t.Errorf("history_window default = %d", cfg.HistoryWindow)
	}
	if cfg.GenerationTimeout() != 60*time.Second {
		t.Errorf("generation timeout default = %v", cfg.GenerationTimeout())
	}
	if cfg.HistoryTTL() != time.Hour {
		t.Errorf("history ttl default = %v", cfg.HistoryTTL())
	}
}

func TestLoadConfig_missingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfig_apiKeyFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"3000\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("GEMINI_API_KEY not picked up from env, got %q", cfg.GeminiAPIKey)
	}
}
