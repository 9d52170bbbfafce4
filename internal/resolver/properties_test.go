package resolver

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
)

// For any input environment, at most one Search Console authentication mode
// may be configured after resolution, and each strategy's observable effects
// hold regardless of what else is in the environment.
func TestResolve_StrategyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	keyPath := filepath.Join(t.TempDir(), CredentialsFileName)
	opts := Options{CredentialsPath: keyPath}

	// A value that is always non-empty; gopter's string generators may
	// produce "".
	nonEmpty := gen.AlphaString().Map(func(s string) string { return "v" + s })

	properties.Property("OAuth removes GOOGLE_APPLICATION_CREDENTIALS for any prior value", prop.ForAll(
		func(token, prior string) bool {
			in := env.New()
			in.Set(VarOAuthRefreshToken, token)
			in.Set(VarApplicationCredentials, prior)

			res := Resolve(in, opts)
			return res.Strategy.Kind == KindOAuth && !res.Env.Has(VarApplicationCredentials)
		},
		nonEmpty,
		gen.AlphaString(),
	))

	properties.Property("never both OAuth active and credentials path set", prop.ForAll(
		func(token, blob, prior string) bool {
			in := env.New()
			in.Set(VarOAuthRefreshToken, token)
			in.Set(VarCredentialsJSON, blob)
			in.Set(VarApplicationCredentials, prior)

			res := Resolve(in, opts)
			return !(res.Strategy.Kind == KindOAuth && res.Env.Has(VarApplicationCredentials))
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("service account writes the blob verbatim and points at it", prop.ForAll(
		func(blob string) bool {
			in := env.New()
			in.Set(VarCredentialsJSON, blob)

			res := Resolve(in, opts)
			if res.Strategy.Kind != KindServiceAccount {
				return false
			}
			if res.Env.Get(VarApplicationCredentials) != keyPath {
				return false
			}
			content, err := os.ReadFile(keyPath)
			return err == nil && string(content) == blob
		},
		nonEmpty,
	))

	properties.Property("empty triggers leave credentials absent for any prior value", prop.ForAll(
		func(prior string) bool {
			in := env.New()
			in.Set(VarOAuthRefreshToken, "")
			in.Set(VarCredentialsJSON, "")
			in.Set(VarApplicationCredentials, prior)

			res := Resolve(in, opts)
			return res.Strategy.Kind == KindNone && !res.Env.Has(VarApplicationCredentials)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// For any string, encoding it as base64 and resolving yields the identical
// string in GOOGLE_PRIVATE_KEY.
func TestResolve_PrivateKeyRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	opts := Options{CredentialsPath: filepath.Join(t.TempDir(), CredentialsFileName)}

	properties.Property("decode inverts encode exactly", prop.ForAll(
		func(key string) bool {
			if key == "" {
				// Empty is indistinguishable from unset on the wire;
				// the resolver skips it.
				return true
			}
			in := env.New()
			in.Set(VarPrivateKeyBase64, base64.StdEncoding.EncodeToString([]byte(key)))

			res := Resolve(in, opts)
			return res.Env.Get(VarPrivateKey) == key
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
