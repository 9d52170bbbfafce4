package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/resolver"
)

// GlobalConfig holds user-level settings from ~/.tmmcp/config.yaml.
type GlobalConfig struct {
	OAuth OAuthClientConfig `yaml:"oauth"`
}

// OAuthClientConfig identifies the OAuth application used for
// interactive authorization. Environment variables override the file.
type OAuthClientConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// LoadGlobal reads ~/.tmmcp/config.yaml and applies environment overrides.
func LoadGlobal() (*GlobalConfig, error) {
	cfg := &GlobalConfig{}

	// Try to load from file
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".tmmcp", "config.yaml")
		if data, err := os.ReadFile(configPath); err == nil {
			_ = yaml.Unmarshal(data, cfg) // Ignore unmarshal errors, use defaults
		}
	}

	// Apply environment overrides
	if id := os.Getenv(resolver.VarOAuthClientID); id != "" {
		cfg.OAuth.ClientID = id
	}
	if secret := os.Getenv(resolver.VarOAuthClientSecret); secret != "" {
		cfg.OAuth.ClientSecret = secret
	}

	return cfg, nil
}

// GlobalConfigDir returns the path to ~/.tmmcp.
func GlobalConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tmmcp")
	}
	return filepath.Join(homeDir, ".tmmcp")
}
