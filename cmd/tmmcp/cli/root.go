// Package cli implements the tmmcp command-line interface using Cobra.
// It wires credential resolution, the MCP server launch, the keep-alive
// server, and the Search Console helper commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/log"
)

var (
	verbose bool
	jsonOut bool
)

// exitCode is what Execute returns when command execution succeeds.
// The run command sets it to the child process's exit code.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "tmmcp",
	Short: "TypingMind MCP connector for Google Search Console",
	Long: `tmmcp prepares Google Search Console credentials from deployment
environment variables, launches the TypingMind MCP server with them, and
forwards the server's exit code.

Credential sources, in precedence order:
  1. GSC_OAUTH_REFRESH_TOKEN         user OAuth refresh token
  2. GSC_CREDENTIALS_JSON_STRING     service account key JSON
     (GOOGLE_APPLICATION_CREDENTIALS_STRING is accepted as an alias)
  3. none                            launch with GSC unauthenticated

The gsc subcommands talk to the Search Console API directly with the
same credentials, which is useful for verifying a deployment.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.Init(log.Options{Verbose: verbose, JSONFormat: jsonOut})
		return nil
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return exitCode
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "JSON output and logs")
}
