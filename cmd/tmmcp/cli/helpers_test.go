package cli

import (
	"testing"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/config"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/launch"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/resolver"
)

func TestChildCommand(t *testing.T) {
	manifest := &config.Config{Command: []string{"node", "server.js"}}

	tests := []struct {
		name    string
		cfg     *config.Config
		args    []string
		dashIdx int
		want    []string
		wantErr bool
	}{
		{
			name:    "dash args win over manifest",
			cfg:     manifest,
			args:    []string{"deno", "run", "main.ts"},
			dashIdx: 0,
			want:    []string{"deno", "run", "main.ts"},
		},
		{
			name:    "empty after dash",
			cfg:     manifest,
			args:    []string{},
			dashIdx: 0,
			wantErr: true,
		},
		{
			name:    "bare arg without dash",
			cfg:     nil,
			args:    []string{"node"},
			dashIdx: -1,
			wantErr: true,
		},
		{
			name:    "manifest command",
			cfg:     manifest,
			args:    nil,
			dashIdx: -1,
			want:    []string{"node", "server.js"},
		},
		{
			name:    "default command",
			cfg:     nil,
			args:    nil,
			dashIdx: -1,
			want:    launch.DefaultCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := childCommand(tt.cfg, tt.args, tt.dashIdx)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("childCommand() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("childCommand() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("childCommand() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("childCommand() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestBuildEnvReport(t *testing.T) {
	snap := env.FromEnviron([]string{
		resolver.VarOAuthRefreshToken + "=tok-123",
		resolver.VarOAuthClientID + "=",
	})
	result := resolver.Resolve(snap, resolver.Options{})

	report := buildEnvReport(result)

	if report.Strategy != string(resolver.KindOAuth) {
		t.Errorf("Strategy = %q, want %q", report.Strategy, resolver.KindOAuth)
	}
	if report.CredentialsFile != "" {
		t.Errorf("CredentialsFile = %q, want empty for OAuth", report.CredentialsFile)
	}
	if len(report.Variables) != len(resolver.Recognized()) {
		t.Fatalf("got %d variables, want %d", len(report.Variables), len(resolver.Recognized()))
	}

	byName := make(map[string]varStatus, len(report.Variables))
	for _, v := range report.Variables {
		byName[v.Name] = v
	}

	token := byName[resolver.VarOAuthRefreshToken]
	if !token.Set || token.Empty || token.Bytes != len("tok-123") {
		t.Errorf("refresh token status = %+v, want set with %d bytes", token, len("tok-123"))
	}

	clientID := byName[resolver.VarOAuthClientID]
	if !clientID.Set || !clientID.Empty {
		t.Errorf("client ID status = %+v, want set but empty", clientID)
	}

	if appCreds := byName[resolver.VarApplicationCredentials]; appCreds.Set {
		t.Errorf("%s reported set, want removed under OAuth strategy", resolver.VarApplicationCredentials)
	}
}

func TestBuildEnvReportServiceAccount(t *testing.T) {
	keyPath := t.TempDir() + "/key.json"
	snap := env.FromEnviron([]string{
		resolver.VarCredentialsJSON + `={"type":"service_account"}`,
	})
	result := resolver.Resolve(snap, resolver.Options{CredentialsPath: keyPath})

	report := buildEnvReport(result)

	if report.Strategy != string(resolver.KindServiceAccount) {
		t.Fatalf("Strategy = %q, want %q", report.Strategy, resolver.KindServiceAccount)
	}
	if report.CredentialsFile != keyPath {
		t.Errorf("CredentialsFile = %q, want %q", report.CredentialsFile, keyPath)
	}
}
