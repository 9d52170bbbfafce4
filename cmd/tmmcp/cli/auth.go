// cmd/tmmcp/cli/auth.go
package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/authflow"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/config"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/credstore"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/resolver"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored Search Console authorization",
}

var (
	authClientID     string
	authClientSecret string
)

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize with Google and store the refresh token",
	Long: `Authorize with Google Search Console in a browser and store the
resulting refresh token in the system keychain.

The OAuth client ID and secret are read from --client-id/--client-secret,
the ` + resolver.VarOAuthClientID + ` and ` + resolver.VarOAuthClientSecret + ` environment
variables, or oauth.client_id/oauth.client_secret in ~/.tmmcp/config.yaml.

After login, 'tmmcp gsc' commands use the stored token automatically. For
hosted deployments, copy the token with 'tmmcp auth show --reveal' and set
it as ` + resolver.VarOAuthRefreshToken + ` in the service environment.`,
	Args: cobra.NoArgs,
	RunE: runAuthLogin,
}

var authShowReveal bool

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored authorization",
	Args:  cobra.NoArgs,
	RunE:  runAuthShow,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored refresh token from the keychain",
	Args:  cobra.NoArgs,
	RunE:  runAuthClear,
}

func init() {
	authLoginCmd.Flags().StringVar(&authClientID, "client-id", "", "Google OAuth client ID")
	authLoginCmd.Flags().StringVar(&authClientSecret, "client-secret", "", "Google OAuth client secret")
	authShowCmd.Flags().BoolVar(&authShowReveal, "reveal", false, "print the token value instead of a summary")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	clientID, clientSecret := authClientID, authClientSecret
	if clientID == "" || clientSecret == "" {
		global, err := config.LoadGlobal()
		if err != nil {
			return err
		}
		if clientID == "" {
			clientID = global.OAuth.ClientID
		}
		if clientSecret == "" {
			clientSecret = global.OAuth.ClientSecret
		}
	}
	if clientID == "" || clientSecret == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("missing OAuth client configuration\n\nPass --client-id and --client-secret, set %s and %s, or add\noauth.client_id and oauth.client_secret to ~/.tmmcp/config.yaml",
				resolver.VarOAuthClientID, resolver.VarOAuthClientSecret)
		}
		var err error
		if clientID, clientSecret, err = promptClientConfig(clientID, clientSecret); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flow := authflow.Flow{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}
	token, err := flow.Authorize(ctx)
	if err != nil {
		return err
	}

	if err := credstore.Save(token.RefreshToken); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("%s Authorization stored in the system keychain.\n", ui.OKTag())
	fmt.Println()
	fmt.Println("Local 'tmmcp gsc' commands now use it automatically. For a hosted")
	fmt.Printf("deployment, run 'tmmcp auth show --reveal' and set the token as\n%s in the service environment.\n", resolver.VarOAuthRefreshToken)
	return nil
}

// promptClientConfig fills in whichever of the two values is missing.
// Only called when stdin is a terminal.
func promptClientConfig(clientID, clientSecret string) (string, string, error) {
	fmt.Println("Enter the Google OAuth client for this connector (a \"Desktop app\"")
	fmt.Println("client from the Google Cloud Console).")
	fmt.Println()

	if clientID == "" {
		fmt.Print("Client ID: ")
		if _, err := fmt.Scanln(&clientID); err != nil {
			return "", "", fmt.Errorf("reading client ID: %w", err)
		}
		clientID = strings.TrimSpace(clientID)
		if clientID == "" {
			return "", "", fmt.Errorf("client ID cannot be empty")
		}
	}

	if clientSecret == "" {
		fmt.Print("Client Secret: ")
		secretBytes, err := readSecret()
		if err != nil {
			return "", "", fmt.Errorf("reading client secret: %w", err)
		}
		fmt.Println() // newline after hidden input
		clientSecret = strings.TrimSpace(string(secretBytes))
		if clientSecret == "" {
			return "", "", fmt.Errorf("client secret cannot be empty")
		}
	}

	return clientID, clientSecret, nil
}

// readSecret reads a line from stdin without echoing.
func readSecret() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		return term.ReadPassword(fd)
	}
	// Not a terminal, read normally (for piped input)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	return []byte(strings.TrimSuffix(line, "\n")), err
}

func runAuthShow(cmd *cobra.Command, args []string) error {
	token, err := credstore.Load()
	if err != nil {
		if err == credstore.ErrNotFound {
			return fmt.Errorf("no stored authorization; run 'tmmcp auth login'")
		}
		return err
	}

	if authShowReveal {
		fmt.Println(token)
		return nil
	}

	if jsonOut {
		return printJSON(map[string]any{
			"stored": true,
			"bytes":  len(token),
		})
	}
	fmt.Printf("%s Refresh token stored (%d bytes). Use --reveal to print it.\n", ui.OKTag(), len(token))
	return nil
}

func runAuthClear(cmd *cobra.Command, args []string) error {
	if err := credstore.Clear(); err != nil {
		if err == credstore.ErrNotFound {
			ui.Warn("No stored authorization to remove.")
			return nil
		}
		return err
	}
	fmt.Printf("%s Stored authorization removed.\n", ui.OKTag())
	return nil
}
