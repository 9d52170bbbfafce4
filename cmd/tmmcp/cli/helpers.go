package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/config"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/credstore"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/gsc"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/resolver"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newGSCService builds a Search Console client using the same credential
// precedence as a launch: environment strategies first, then the
// keychain-stored refresh token from 'tmmcp auth login'.
func newGSCService(ctx context.Context) (*gsc.Service, error) {
	result := resolver.Resolve(env.FromOS(), resolver.Options{})

	switch result.Strategy.Kind {
	case resolver.KindOAuth:
		return oauthService(ctx, result.Env.Get(resolver.VarOAuthRefreshToken),
			result.Env.Get(resolver.VarOAuthRedirectURI))

	case resolver.KindServiceAccount:
		return gsc.New(ctx, gsc.Options{CredentialsFile: result.Strategy.CredentialsFile})

	default:
		token, err := credstore.Load()
		if errors.Is(err, credstore.ErrNotFound) {
			return nil, fmt.Errorf("no Search Console credentials: set %s or %s, or run 'tmmcp auth login'",
				resolver.VarOAuthRefreshToken, resolver.VarCredentialsJSON)
		}
		if err != nil {
			return nil, err
		}
		return oauthService(ctx, token, "")
	}
}

func oauthService(ctx context.Context, refreshToken, redirectURL string) (*gsc.Service, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, err
	}
	if global.OAuth.ClientID == "" || global.OAuth.ClientSecret == "" {
		return nil, fmt.Errorf("set %s and %s (or oauth.client_id/client_secret in ~/.tmmcp/config.yaml) to use the refresh token",
			resolver.VarOAuthClientID, resolver.VarOAuthClientSecret)
	}
	return gsc.New(ctx, gsc.Options{
		ClientID:     global.OAuth.ClientID,
		ClientSecret: global.OAuth.ClientSecret,
		RedirectURL:  redirectURL,
		RefreshToken: refreshToken,
	})
}

// gscError adds re-authorization guidance when an API error means the
// stored grant was revoked.
func gscError(err error) error {
	if err == nil {
		return nil
	}
	if gsc.IsCredentialRevoked(err) {
		return fmt.Errorf("%w\n\nThe Google authorization is no longer valid. Run 'tmmcp auth login' to re-authorize.", err)
	}
	return err
}
