package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/config"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/launch"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/log"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/resolver"
)

var (
	manifestDir string
	dryRun      bool
	runEnv      []string
)

var runCmd = &cobra.Command{
	Use:   "run [-- command]",
	Short: "Resolve credentials and launch the MCP server",
	Long: `Resolve Google Search Console credentials from the environment,
then launch the TypingMind MCP server with the prepared environment and
exit with its exit code.

The child command comes from, in order: the -- arguments, the manifest's
command entry, or the default (npx -y @typingmind/mcp@latest).

Examples:
  # Launch with the default runtime
  tmmcp run

  # See what would happen without launching
  tmmcp run --dry-run

  # Launch a custom server build
  tmmcp run -- node ./dist/server.js

  # Add environment variables for the child
  tmmcp run -e DEBUG=true`,
	Args: cobra.ArbitraryArgs,
	RunE: runConnector,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&manifestDir, "manifest", ".", "directory containing connector.yaml")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the credential resolution without launching")
	runCmd.Flags().StringArrayVarP(&runEnv, "env", "e", nil, "extra environment variables (KEY=VALUE)")
}

func runConnector(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(manifestDir)
	if err != nil {
		return err
	}

	snap := env.FromOS()
	cfg.ApplyEnv(snap)
	for _, kv := range runEnv {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid --env %q: expected KEY=VALUE", kv)
		}
		snap.Set(key, value)
	}

	var opts resolver.Options
	if cfg != nil && cfg.CredentialsFile != "" {
		opts.CredentialsPath = cfg.CredentialsFile
	}
	result := resolver.Resolve(snap, opts)
	log.Info("credentials resolved", "strategy", result.Strategy.Kind)

	command, err := childCommand(cfg, args, cmd.ArgsLenAtDash())
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Command: %s\n", strings.Join(command, " "))
		printResolution(result)
		return nil
	}

	code, err := launch.Run(launch.Command{
		Path: command[0],
		Args: command[1:],
		Env:  result.Env,
	})
	if err != nil {
		return err
	}
	exitCode = code
	return nil
}

// childCommand picks the child argv: -- arguments win, then the
// manifest's command, then the default MCP runtime.
func childCommand(cfg *config.Config, args []string, dashIdx int) ([]string, error) {
	if dashIdx >= 0 {
		command := args[dashIdx:]
		if len(command) == 0 {
			return nil, fmt.Errorf("no command given after --")
		}
		return command, nil
	}
	if len(args) > 0 {
		return nil, fmt.Errorf("unexpected argument %q (use -- to pass a command)", args[0])
	}
	if cfg != nil && len(cfg.Command) > 0 {
		return cfg.Command, nil
	}
	return launch.DefaultCommand, nil
}
