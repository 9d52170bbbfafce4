package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/config"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/health"
)

var (
	servePort        int
	serveManifestDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the keep-alive HTTP server",
	Long: `Serve GET /ping for hosting platforms that probe web processes.

The listen port comes from --port, then the manifest's port entry, then
the PORT environment variable, then 8080. The server shuts down
gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default: PORT env or 8080)")
	serveCmd.Flags().StringVar(&serveManifestDir, "manifest", ".", "directory containing connector.yaml")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveManifestDir)
	if err != nil {
		return err
	}

	port := config.ResolvePort(servePort, cfg, env.FromOS())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return health.NewServer(port).Run(ctx)
}
