package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "backend_base_url = \"https://agent.auphere.app\"\nmode = \"planner\"\nsession_file = \"/tmp/auphere-sessions.json\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BackendBaseURL != "https://agent.auphere.app" {
		t.Fatalf("unexpected backend base: %q", cfg.BackendBaseURL)
	}
	if cfg.Mode != "planner" {
		t.Fatalf("unexpected mode: %q", cfg.Mode)
	}
	if cfg.SessionFile != "/tmp/auphere-sessions.json" {
		t.Fatalf("unexpected session file: %q", cfg.SessionFile)
	}
}

func TestLoadConfigWithoutFileKeepsDefaults(t *testing.T) {
	t.Setenv("AUPHERE_BACKEND_BASE", "")
	t.Setenv("AUPHERE_MODE", "")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BackendBaseURL == "" || cfg.SessionFile == "" {
		t.Fatalf("expected non-empty defaults, got %+v", cfg)
	}
	if cfg.Mode != "" {
		t.Fatalf("expected no default mode override, got %q", cfg.Mode)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("AUPHERE_BACKEND_BASE", "http://localhost:9999")
	t.Setenv("AUPHERE_MODE", "explore")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.BackendBaseURL != "http://localhost:9999" {
		t.Fatalf("expected env override, got %q", cfg.BackendBaseURL)
	}
	if cfg.Mode != "explore" {
		t.Fatalf("expected env mode, got %q", cfg.Mode)
	}
}
