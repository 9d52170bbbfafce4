package gsc

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/searchconsole/v1"
)

// Options selects the credential source for a Service. Exactly one
// source is used, checked in order: HTTPClient (tests), RefreshToken,
// CredentialsJSON, CredentialsFile.
type Options struct {
	// ClientID and ClientSecret identify the OAuth application.
	// Required when RefreshToken is set.
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// RefreshToken selects user OAuth. Access tokens are minted from it
	// on demand and refreshed automatically.
	RefreshToken string

	// CredentialsJSON is raw service account key material.
	CredentialsJSON []byte

	// CredentialsFile is a path to a service account key file.
	CredentialsFile string

	// Endpoint overrides the API base URL. Tests point this at a fake.
	Endpoint string

	// HTTPClient bypasses credential setup entirely and is used as-is.
	// Tests pair it with Endpoint.
	HTTPClient *http.Client
}

// OAuthConfig returns the OAuth application config used for Search
// Console grants. The scope allows full site and sitemap management.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{searchconsole.WebmastersScope},
	}
}

func (o Options) clientOptions(ctx context.Context) ([]option.ClientOption, error) {
	var opts []option.ClientOption
	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint))
	}

	switch {
	case o.HTTPClient != nil:
		opts = append(opts, option.WithHTTPClient(o.HTTPClient))
	case o.RefreshToken != "":
		if o.ClientID == "" || o.ClientSecret == "" {
			return nil, fmt.Errorf("refresh token requires an OAuth client ID and secret")
		}
		cfg := OAuthConfig(o.ClientID, o.ClientSecret, o.RedirectURL)
		source := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: o.RefreshToken})
		opts = append(opts, option.WithTokenSource(source))
	case len(o.CredentialsJSON) > 0:
		opts = append(opts, option.WithCredentialsJSON(o.CredentialsJSON))
	case o.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	default:
		return nil, ErrNoCredentials
	}
	return opts, nil
}
