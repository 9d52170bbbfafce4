// Package authflow runs the interactive OAuth authorization flow that
// mints a Search Console refresh token. It starts a loopback HTTP
// server for the redirect, hands the user an authorization URL, and
// exchanges the returned code for tokens.
package authflow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/gsc"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/ui"
)

// defaultTimeout is how long to wait for the user to finish in the browser.
const defaultTimeout = 5 * time.Minute

// Flow configures an interactive authorization.
type Flow struct {
	ClientID     string
	ClientSecret string

	// OnAuthURL, when set, receives the authorization URL instead of it
	// being printed. Tests use this to simulate the browser.
	OnAuthURL func(url string)

	// Endpoint overrides Google's OAuth endpoints, for tests.
	Endpoint oauth2.Endpoint

	// ListenAddr overrides the loopback listener address, for tests.
	// Empty means a random port on 127.0.0.1.
	ListenAddr string

	// Timeout overrides how long to wait for the browser redirect.
	Timeout time.Duration
}

// Authorize walks the user through granting Search Console access and
// returns the resulting token. The token's RefreshToken is what the
// connector persists; the flow requests offline access and forces the
// consent screen so Google issues one even for repeat grants.
func (f Flow) Authorize(ctx context.Context) (*oauth2.Token, error) {
	if f.ClientID == "" || f.ClientSecret == "" {
		return nil, fmt.Errorf("authorization requires an OAuth client ID and secret")
	}

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	listenAddr := f.ListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}
	defer listener.Close()

	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("unexpected listener address type: %T", listener.Addr())
	}
	redirectURL := fmt.Sprintf("http://127.0.0.1:%d/callback", tcpAddr.Port)

	cfg := gsc.OAuthConfig(f.ClientID, f.ClientSecret, redirectURL)
	if f.Endpoint != (oauth2.Endpoint{}) {
		cfg.Endpoint = f.Endpoint
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			errCh <- fmt.Errorf("invalid state parameter (possible CSRF attack)")
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		if errMsg := r.URL.Query().Get("error"); errMsg != "" {
			if desc := r.URL.Query().Get("error_description"); desc != "" {
				errMsg = errMsg + ": " + desc
			}
			errCh <- fmt.Errorf("authorization refused: %s", errMsg)
			_, _ = fmt.Fprintf(w, "<html><body><h1>Authorization Failed</h1><p>%s</p><p>You can close this tab.</p></body></html>", html.EscapeString(errMsg))
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			errCh <- fmt.Errorf("no authorization code in callback")
			http.Error(w, "No authorization code", http.StatusBadRequest)
			return
		}

		codeCh <- code
		_, _ = fmt.Fprint(w, "<html><body><h1>Authorization Successful</h1><p>You can close this tab and return to the terminal.</p></body></html>")
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			errCh <- fmt.Errorf("callback server error: %w", serveErr)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	if f.OnAuthURL != nil {
		f.OnAuthURL(authURL)
	} else {
		ui.Infof("\nOpen this URL in your browser to authorize:\n\n  %s\n", authURL)
		ui.Info("Waiting for authorization...")
	}

	timeout := f.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-timeoutCtx.Done():
		return nil, fmt.Errorf("authorization timed out after %s", timeout)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, fmt.Errorf("no refresh token granted; revoke the app's access at https://myaccount.google.com/permissions and try again")
	}
	return token, nil
}

// randomState generates the CSRF state parameter.
func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
