// Package resolver selects a Search Console authentication strategy from the
// deployment environment and produces the environment the MCP runtime is
// launched with. Resolution never fails: every problem inside it (key file
// write, base64 decode) is logged and degrades to a launch with weaker
// credentials rather than no launch at all.
package resolver

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/log"
)

// CredentialsFileName is the fixed name of the materialized service-account
// key inside the platform temp directory.
const CredentialsFileName = "gsc-sa-key.json"

// Options tunes resolution.
type Options struct {
	// CredentialsPath overrides where the service-account key file is
	// written. Empty uses DefaultCredentialsPath.
	CredentialsPath string
}

// Result is the resolution outcome: the selected strategy and the environment
// snapshot the launcher forwards to the child.
type Result struct {
	Strategy Strategy
	Env      *env.Snapshot
}

// DefaultCredentialsPath returns the platform temp-dir location of the
// service-account key file.
func DefaultCredentialsPath() string {
	return filepath.Join(os.TempDir(), CredentialsFileName)
}

// Resolve derives the launch environment from the input snapshot. The input
// is never mutated; callers receive an independent output snapshot.
//
// Strategy precedence, evaluated once per run:
//  1. GSC_OAUTH_REFRESH_TOKEN non-empty: OAuth. GOOGLE_APPLICATION_CREDENTIALS
//     is deleted so the downstream client cannot silently prefer a stale
//     service-account file over the granted token.
//  2. A service-account JSON blob non-empty: the blob is written verbatim to
//     the key file (owner-only permissions) and GOOGLE_APPLICATION_CREDENTIALS
//     points at it.
//  3. Neither: unauthenticated; GOOGLE_APPLICATION_CREDENTIALS is deleted.
//
// Independently, GOOGLE_PRIVATE_KEY_BASE64 is decoded into GOOGLE_PRIVATE_KEY
// for the Analytics tools.
func Resolve(in *env.Snapshot, opts Options) Result {
	out := in.Clone()

	keyPath := opts.CredentialsPath
	if keyPath == "" {
		keyPath = DefaultCredentialsPath()
	}

	strategy := selectStrategy(out, keyPath)
	materializePrivateKey(out)

	return Result{Strategy: strategy, Env: out}
}

// selectStrategy applies the mutually exclusive strategy rules, mutating out.
func selectStrategy(out *env.Snapshot, keyPath string) Strategy {
	if out.Get(VarOAuthRefreshToken) != "" {
		if prior, ok := out.Lookup(VarApplicationCredentials); ok {
			log.Debug("OAuth strategy active, removing service-account variable",
				"var", VarApplicationCredentials, "prior", prior)
			out.Unset(VarApplicationCredentials)
		}
		return Strategy{Kind: KindOAuth}
	}

	if blob, source := serviceAccountJSON(out); blob != "" {
		if err := writeCredentialsFile(keyPath, blob); err != nil {
			// Soft failure: the launch proceeds with Search Console
			// unauthenticated rather than not at all.
			log.Error("writing service-account key file failed, launching unauthenticated",
				"var", source, "path", keyPath, "error", err)
			out.Unset(VarApplicationCredentials)
			return Strategy{Kind: KindNone}
		}
		out.Set(VarApplicationCredentials, keyPath)
		log.Debug("service-account key file written", "var", source, "path", keyPath)
		return Strategy{Kind: KindServiceAccount, CredentialsFile: keyPath}
	}

	out.Unset(VarApplicationCredentials)
	log.Warn("no Search Console credentials configured, tools requiring them will fail",
		"checked", []string{VarOAuthRefreshToken, VarCredentialsJSON, VarCredentialsJSONAlias})
	return Strategy{Kind: KindNone}
}

// serviceAccountJSON returns the first non-empty service-account blob and the
// variable it came from. GSC_CREDENTIALS_JSON_STRING takes precedence over
// the older GOOGLE_APPLICATION_CREDENTIALS_STRING name.
func serviceAccountJSON(s *env.Snapshot) (blob, source string) {
	for _, name := range []string{VarCredentialsJSON, VarCredentialsJSONAlias} {
		if v := s.Get(name); v != "" {
			return v, name
		}
	}
	return "", ""
}

// writeCredentialsFile writes the key blob verbatim with owner-only
// permissions, replacing any prior file. The prior file is removed first so
// an existing file cannot retain wider permissions.
func writeCredentialsFile(path, content string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale key file: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}
	return nil
}

// materializePrivateKey decodes GOOGLE_PRIVATE_KEY_BASE64 into
// GOOGLE_PRIVATE_KEY. Platforms that strip newlines from multiline secrets
// are the reason the key travels base64-encoded. A decode failure leaves any
// prior GOOGLE_PRIVATE_KEY value untouched.
func materializePrivateKey(out *env.Snapshot) {
	encoded := out.Get(VarPrivateKeyBase64)
	if encoded == "" {
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		log.Error("decoding private key failed, keeping prior value",
			"var", VarPrivateKeyBase64, "error", err)
		return
	}
	out.Set(VarPrivateKey, string(decoded))
	log.Debug("private key materialized", "var", VarPrivateKey, "bytes", len(decoded))
}
