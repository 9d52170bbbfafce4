package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/resolver"
)

// writeManifest writes a connector.yaml into a temp dir and returns the dir.
func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return dir
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != nil {
		t.Errorf("expected nil config for missing manifest, got %+v", cfg)
	}
}

func TestLoad_FullManifest(t *testing.T) {
	dir := writeManifest(t, `
command: ["node", "server.js", "--flag"]
env:
  TM_AUTH_TOKEN: tok-123
  EXTRA: value
port: 9090
credentials_file: /var/secrets/gsc-key.json
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Command) != 3 || cfg.Command[0] != "node" {
		t.Errorf("unexpected command: %v", cfg.Command)
	}
	if cfg.Env["TM_AUTH_TOKEN"] != "tok-123" || cfg.Env["EXTRA"] != "value" {
		t.Errorf("unexpected env: %v", cfg.Env)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if cfg.CredentialsFile != "/var/secrets/gsc-key.json" {
		t.Errorf("credentials_file = %q", cfg.CredentialsFile)
	}
}

func TestLoad_EmptyCommandExecutable(t *testing.T) {
	dir := writeManifest(t, `command: ["", "arg"]`)

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "command[0]") {
		t.Errorf("expected command validation error, got %v", err)
	}
}

func TestLoad_RejectsManagedEnvKeys(t *testing.T) {
	for _, key := range []string{
		resolver.VarApplicationCredentials,
		resolver.VarOAuthRefreshToken,
		resolver.VarCredentialsJSON,
	} {
		t.Run(key, func(t *testing.T) {
			dir := writeManifest(t, "env:\n  "+key+": something\n")

			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), "managed by credential resolution") {
				t.Errorf("expected managed-key error for %s, got %v", key, err)
			}
		})
	}
}

func TestLoad_AllowsPassthroughEnvKeys(t *testing.T) {
	dir := writeManifest(t, `
env:
  DATAFORSEO_USERNAME: user
  WORDPRESS_USERNAME: admin
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env["DATAFORSEO_USERNAME"] != "user" {
		t.Errorf("unexpected env: %v", cfg.Env)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, manifest := range []string{"port: 70000", "port: -1"} {
		dir := writeManifest(t, manifest)
		if _, err := Load(dir); err == nil || !strings.Contains(err.Error(), "invalid port") {
			t.Errorf("manifest %q: expected port error, got %v", manifest, err)
		}
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := writeManifest(t, "command: [unclosed")

	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "parsing "+FileName) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	snap := env.FromEnviron([]string{"EXTRA=ambient", "KEEP=yes"})
	cfg := &Config{Env: map[string]string{"EXTRA": "manifest", "NEW": "added"}}

	cfg.ApplyEnv(snap)

	if got := snap.Get("EXTRA"); got != "manifest" {
		t.Errorf("EXTRA = %q, want manifest value to win", got)
	}
	if got := snap.Get("NEW"); got != "added" {
		t.Errorf("NEW = %q, want added", got)
	}
	if got := snap.Get("KEEP"); got != "yes" {
		t.Errorf("KEEP = %q, want untouched", got)
	}

	// A nil config is a no-op.
	var none *Config
	none.ApplyEnv(snap)
	if snap.Len() != 3 {
		t.Errorf("nil ApplyEnv changed snapshot: %v", snap.Environ())
	}
}

func TestResolvePort(t *testing.T) {
	tests := []struct {
		name     string
		flagPort int
		cfg      *Config
		environ  []string
		want     int
	}{
		{"flag wins", 7000, &Config{Port: 9090}, []string{"PORT=3000"}, 7000},
		{"manifest beats env", 0, &Config{Port: 9090}, []string{"PORT=3000"}, 9090},
		{"env when no flag or manifest", 0, nil, []string{"PORT=3000"}, 3000},
		{"invalid env falls back", 0, nil, []string{"PORT=abc"}, 8080},
		{"out of range env falls back", 0, nil, []string{"PORT=99999"}, 8080},
		{"empty env falls back", 0, nil, []string{"PORT="}, 8080},
		{"default", 0, nil, nil, 8080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePort(tt.flagPort, tt.cfg, env.FromEnviron(tt.environ))
			if got != tt.want {
				t.Errorf("ResolvePort = %d, want %d", got, tt.want)
			}
		})
	}
}
