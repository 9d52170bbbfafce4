// Package config handles connector.yaml manifest parsing and the
// user-level configuration in ~/.tmmcp.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/health"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/log"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/resolver"
)

// FileName is the manifest looked for in the working directory.
const FileName = "connector.yaml"

// Config represents a connector.yaml manifest. Everything is optional;
// a missing manifest means defaults throughout.
type Config struct {
	// Command replaces the default MCP server command.
	Command []string `yaml:"command,omitempty"`

	// Env is merged into the child environment before credential
	// resolution output. Keys the resolver manages are rejected.
	Env map[string]string `yaml:"env,omitempty"`

	// Port overrides the keep-alive server port.
	Port int `yaml:"port,omitempty"`

	// CredentialsFile overrides where the service account key is
	// materialized.
	CredentialsFile string `yaml:"credentials_file,omitempty"`
}

// Load reads connector.yaml from the given directory.
// Returns nil, nil if the file doesn't exist.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate command if specified
	if len(cfg.Command) > 0 && cfg.Command[0] == "" {
		return nil, fmt.Errorf("command[0] cannot be empty: the first element must be the executable")
	}

	// Credential material belongs in the real environment where the
	// resolver can see it, not in a manifest on disk.
	managed := resolver.Managed()
	for key := range cfg.Env {
		if slices.Contains(managed, key) {
			return nil, fmt.Errorf("env.%s is managed by credential resolution\n\nSet %s in the process environment instead of %s", key, key, FileName)
		}
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", cfg.Port)
	}

	return &cfg, nil
}

// ApplyEnv merges the manifest's env entries into the snapshot.
// Manifest values win over ambient ones.
func (c *Config) ApplyEnv(snap *env.Snapshot) {
	if c == nil {
		return
	}
	for key, value := range c.Env {
		snap.Set(key, value)
	}
}

// ResolvePort picks the keep-alive port: an explicit flag wins, then
// the manifest, then the PORT environment variable, then the default.
func ResolvePort(flagPort int, cfg *Config, snap *env.Snapshot) int {
	if flagPort > 0 {
		return flagPort
	}
	if cfg != nil && cfg.Port > 0 {
		return cfg.Port
	}
	if raw, ok := snap.Lookup(health.EnvPort); ok && raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port < 1 || port > 65535 {
			log.Warn("ignoring invalid PORT value", "value", raw)
			return health.DefaultPort
		}
		return port
	}
	return health.DefaultPort
}
