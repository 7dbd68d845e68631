package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Slskd.URL != "http://localhost:5030" {
		t.Errorf("Slskd.URL = %q", cfg.Slskd.URL)
	}
	if cfg.Slskd.SpecPath != "spec/openapi.json" {
		t.Errorf("Slskd.SpecPath = %q", cfg.Slskd.SpecPath)
	}
	if cfg.Server.Name != "slskd-mcp" || cfg.Server.Port != "5031" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if !cfg.MCP.ConfirmMutations {
		t.Error("MCP.ConfirmMutations = false, want true by default")
	}
	if cfg.MCP.ReadOnly {
		t.Error("MCP.ReadOnly = true, want false by default")
	}
	if len(cfg.MCP.Modules) != 0 {
		t.Errorf("MCP.Modules = %v, want empty (all modules)", cfg.MCP.Modules)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error for missing file: %v", err)
	}
	if cfg.Slskd.URL != "http://localhost:5030" {
		t.Errorf("Slskd.URL = %q, want default", cfg.Slskd.URL)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
[slskd]
url = "http://slskd.local:5030"
api_key = "secret-key"

[mcp]
modules = ["searches", "transfers"]
read_only = true

[logging]
level = "debug"
`
	path := filepath.Join(t.TempDir(), "slskd-mcp.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Slskd.URL != "http://slskd.local:5030" {
		t.Errorf("Slskd.URL = %q", cfg.Slskd.URL)
	}
	if cfg.Slskd.APIKey != "secret-key" {
		t.Errorf("Slskd.APIKey = %q", cfg.Slskd.APIKey)
	}
	if len(cfg.MCP.Modules) != 2 || cfg.MCP.Modules[0] != "searches" || cfg.MCP.Modules[1] != "transfers" {
		t.Errorf("MCP.Modules = %v", cfg.MCP.Modules)
	}
	if !cfg.MCP.ReadOnly {
		t.Error("MCP.ReadOnly = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}

	// untouched sections keep their defaults
	if cfg.Server.Port != "5031" {
		t.Errorf("Server.Port = %q, want default", cfg.Server.Port)
	}
	if !cfg.MCP.ConfirmMutations {
		t.Error("MCP.ConfirmMutations = false, want default true")
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[slskd\nurl ="), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() expected error for malformed TOML, got nil")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SLSKD_URL", "http://env:5030")
	t.Setenv("SLSKD_API_KEY", "env-key")
	t.Setenv("SLSKD_MODULES", "searches, rooms ,")
	t.Setenv("SLSKD_READ_ONLY", "true")
	t.Setenv("SLSKD_MCP_PORT", "9999")
	t.Setenv("SLSKD_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Slskd.URL != "http://env:5030" {
		t.Errorf("Slskd.URL = %q", cfg.Slskd.URL)
	}
	if cfg.Slskd.APIKey != "env-key" {
		t.Errorf("Slskd.APIKey = %q", cfg.Slskd.APIKey)
	}
	if len(cfg.MCP.Modules) != 2 || cfg.MCP.Modules[0] != "searches" || cfg.MCP.Modules[1] != "rooms" {
		t.Errorf("MCP.Modules = %v, want trimmed [searches rooms]", cfg.MCP.Modules)
	}
	if !cfg.MCP.ReadOnly {
		t.Error("MCP.ReadOnly = false, want true from env")
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("Server.Port = %q", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	content := `
[slskd]
url = "http://file:5030"
`
	path := filepath.Join(t.TempDir(), "slskd-mcp.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SLSKD_URL", "http://env-wins:5030")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Slskd.URL != "http://env-wins:5030" {
		t.Errorf("Slskd.URL = %q, want env to win over file", cfg.Slskd.URL)
	}
}

func TestLoadConfigInvalidReadOnlyIgnored(t *testing.T) {
	t.Setenv("SLSKD_READ_ONLY", "not-a-bool")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.MCP.ReadOnly {
		t.Error("MCP.ReadOnly = true, want unparseable env value ignored")
	}
}
