// Package common provides shared configuration, logging, and version
// utilities for slskd-mcp.
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all slskd-mcp configuration.
type Config struct {
	Slskd   SlskdConfig   `toml:"slskd"`
	Server  ServerConfig  `toml:"server"`
	MCP     MCPConfig     `toml:"mcp"`
	Logging LoggingConfig `toml:"logging"`
}

// SlskdConfig holds slskd instance settings.
type SlskdConfig struct {
	URL      string `toml:"url"`
	APIKey   string `toml:"api_key"`
	SpecPath string `toml:"spec_path"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// MCPConfig holds tool exposure settings.
type MCPConfig struct {
	// Modules restricts registration to the named modules. Empty enables all.
	Modules []string `toml:"modules"`
	// ReadOnly excludes mutation tools from registration entirely.
	ReadOnly bool `toml:"read_only"`
	// ConfirmMutations requires confirm=true on every mutation call.
	ConfirmMutations bool `toml:"confirm_mutations"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() Config {
	return Config{
		Slskd: SlskdConfig{
			URL:      "http://localhost:5030",
			SpecPath: "spec/openapi.json",
		},
		Server: ServerConfig{
			Name: "slskd-mcp",
			Port: "5031",
		},
		MCP: MCPConfig{
			ConfirmMutations: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/slskd-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration with priority: defaults -> TOML file ->
// environment. A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides applies SLSKD_* environment variable overrides. These
// match the env surface of the original slskd-mcp deployment.
func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv("SLSKD_URL"); url != "" {
		cfg.Slskd.URL = url
	}
	if key := os.Getenv("SLSKD_API_KEY"); key != "" {
		cfg.Slskd.APIKey = key
	}
	if spec := os.Getenv("SLSKD_SPEC_PATH"); spec != "" {
		cfg.Slskd.SpecPath = spec
	}
	if mods := os.Getenv("SLSKD_MODULES"); mods != "" {
		var modules []string
		for _, m := range strings.Split(mods, ",") {
			if m = strings.TrimSpace(m); m != "" {
				modules = append(modules, m)
			}
		}
		cfg.MCP.Modules = modules
	}
	if ro := os.Getenv("SLSKD_READ_ONLY"); ro != "" {
		if v, err := strconv.ParseBool(ro); err == nil {
			cfg.MCP.ReadOnly = v
		}
	}
	if port := os.Getenv("SLSKD_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if level := os.Getenv("SLSKD_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
