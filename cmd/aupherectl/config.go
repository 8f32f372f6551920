package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type fileConfig struct {
	BackendBaseURL string `toml:"backend_base_url"`
	Mode           string `toml:"mode"`
	SessionFile    string `toml:"session_file"`
}

type config struct {
	BackendBaseURL string
	Mode           string
	SessionFile    string
}

func defaultConfig() config {
	cfg := config{
		BackendBaseURL: "http://localhost:8000",
		SessionFile:    ".auphere-sessions.json",
	}

	if dir, err := os.UserConfigDir(); err == nil {
		cfg.SessionFile = filepath.Join(dir, "auphere", "sessions.json")
	}

	return cfg
}

// loadConfig layers defaults, the optional TOML file and env overrides
// (AUPHERE_BACKEND_BASE, AUPHERE_MODE).
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path != "" {
		var raw fileConfig
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return config{}, fmt.Errorf("load config: %w", err)
		}

		if meta.IsDefined("backend_base_url") {
			if base := strings.TrimSpace(raw.BackendBaseURL); base != "" {
				cfg.BackendBaseURL = base
			}
		}
		if meta.IsDefined("mode") {
			cfg.Mode = strings.TrimSpace(raw.Mode)
		}
		if meta.IsDefined("session_file") {
			if file := strings.TrimSpace(raw.SessionFile); file != "" {
				cfg.SessionFile = file
			}
		}
	}

	if base := strings.TrimSpace(os.Getenv("AUPHERE_BACKEND_BASE")); base != "" {
		cfg.BackendBaseURL = base
	}
	if mode := strings.TrimSpace(os.Getenv("AUPHERE_MODE")); mode != "" {
		cfg.Mode = mode
	}

	return cfg, nil
}
