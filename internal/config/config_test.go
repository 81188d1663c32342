package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"TRADEVISION_API_BASE",
	"TRADEVISION_POLL_INTERVAL",
	"TRADEVISION_SYMBOLS",
	"PORT",
	"GRPC_PORT",
	"SQLITE_PATH",
	"LOG_LEVEL",
	"LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tradevision.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8001
  grpc_port: 9001
  web_port: 8081
api:
  base_url: "http://backend:8000/"
  symbols: ["AAPL", "TSLA"]
  default_symbol: "TSLA"
  poll_interval: 5s
  request_timeout: 2s
storage:
  sqlite_path: "/tmp/tv/fixtures.db"
logging:
  level: "debug"
  format: "text"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	// -- Server --
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 8001 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8001)
	}
	if cfg.Server.GRPCPort != 9001 {
		t.Errorf("Server.GRPCPort = %d, want %d", cfg.Server.GRPCPort, 9001)
	}
	if cfg.Server.WebPort != 8081 {
		t.Errorf("Server.WebPort = %d, want %d", cfg.Server.WebPort, 8081)
	}

	// -- API --
	if cfg.API.BaseURL != "http://backend:8000" {
		t.Errorf("API.BaseURL = %q, want trailing slash trimmed", cfg.API.BaseURL)
	}
	if len(cfg.API.Symbols) != 2 || cfg.API.Symbols[1] != "TSLA" {
		t.Errorf("API.Symbols = %v, want [AAPL TSLA]", cfg.API.Symbols)
	}
	if cfg.API.DefaultSymbol != "TSLA" {
		t.Errorf("API.DefaultSymbol = %q, want %q", cfg.API.DefaultSymbol, "TSLA")
	}
	if cfg.API.PollInterval != 5*time.Second {
		t.Errorf("API.PollInterval = %v, want %v", cfg.API.PollInterval, 5*time.Second)
	}
	if cfg.API.RequestTimeout != 2*time.Second {
		t.Errorf("API.RequestTimeout = %v, want %v", cfg.API.RequestTimeout, 2*time.Second)
	}

	// -- Storage / Logging --
	if cfg.Storage.SQLitePath != "/tmp/tv/fixtures.db" {
		t.Errorf("Storage.SQLitePath = %q", cfg.Storage.SQLitePath)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want debug/text", cfg.Logging)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("API.BaseURL = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.PollInterval != DefaultPollInterval {
		t.Errorf("API.PollInterval = %v, want %v", cfg.API.PollInterval, DefaultPollInterval)
	}
	if cfg.API.RequestTimeout != 0 {
		t.Errorf("API.RequestTimeout = %v, want 0 (no timeout)", cfg.API.RequestTimeout)
	}
	if len(cfg.API.Symbols) != 4 || cfg.API.DefaultSymbol != "AAPL" {
		t.Errorf("API.Symbols = %v default %q", cfg.API.Symbols, cfg.API.DefaultSymbol)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api:
  base_url: "http://yaml:8000"
logging:
  level: "warn"
`)

	t.Setenv("TRADEVISION_API_BASE", "http://env:9999")
	t.Setenv("TRADEVISION_POLL_INTERVAL", "30s")
	t.Setenv("TRADEVISION_SYMBOLS", "nvda, amd")
	t.Setenv("PORT", "8123")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.API.BaseURL != "http://env:9999" {
		t.Errorf("API.BaseURL = %q, want %q (env override)", cfg.API.BaseURL, "http://env:9999")
	}
	if cfg.API.PollInterval != 30*time.Second {
		t.Errorf("API.PollInterval = %v, want 30s (env override)", cfg.API.PollInterval)
	}
	if len(cfg.API.Symbols) != 2 || cfg.API.Symbols[0] != "NVDA" || cfg.API.DefaultSymbol != "NVDA" {
		t.Errorf("API.Symbols = %v default %q", cfg.API.Symbols, cfg.API.DefaultSymbol)
	}
	if cfg.Server.Port != 8123 {
		t.Errorf("Server.Port = %d, want 8123 (env override)", cfg.Server.Port)
	}
	// level should remain from YAML since no env override was set.
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q (from YAML)", cfg.Logging.Level, "warn")
	}
}

func TestLoadBadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRADEVISION_POLL_INTERVAL", "often")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() should reject an unparseable poll interval")
	}
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api: [unterminated")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
}
