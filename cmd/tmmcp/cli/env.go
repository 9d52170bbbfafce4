package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/env"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/resolver"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/ui"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show how credentials resolve in this environment",
	Long: `Report the credential strategy the current environment produces and
which recognized variables are present. Values are never printed.

Resolution is performed for real, including writing the service account
key file, so the report matches exactly what a launch would do.`,
	Args: cobra.NoArgs,
	RunE: runEnvReport,
}

func init() {
	rootCmd.AddCommand(envCmd)
}

func runEnvReport(cmd *cobra.Command, args []string) error {
	result := resolver.Resolve(env.FromOS(), resolver.Options{})

	if jsonOut {
		return printJSON(buildEnvReport(result))
	}

	ui.Section("Credential resolution")
	printResolution(result)
	return nil
}

// envReport is the JSON shape of the resolution report.
type envReport struct {
	Strategy        string      `json:"strategy"`
	CredentialsFile string      `json:"credentials_file,omitempty"`
	Variables       []varStatus `json:"variables"`
}

type varStatus struct {
	Name  string `json:"name"`
	Set   bool   `json:"set"`
	Empty bool   `json:"empty,omitempty"`
	Bytes int    `json:"bytes,omitempty"`
}

func buildEnvReport(result resolver.Result) envReport {
	report := envReport{
		Strategy:        string(result.Strategy.Kind),
		CredentialsFile: result.Strategy.CredentialsFile,
	}
	for _, name := range resolver.Recognized() {
		value, ok := result.Env.Lookup(name)
		report.Variables = append(report.Variables, varStatus{
			Name:  name,
			Set:   ok,
			Empty: ok && value == "",
			Bytes: len(value),
		})
	}
	return report
}

// printResolution writes the human-readable resolution report to stdout.
func printResolution(result resolver.Result) {
	fmt.Printf("Strategy: %s\n\n", result.Strategy.Describe())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range resolver.Recognized() {
		value, ok := result.Env.Lookup(name)
		switch {
		case !ok:
			fmt.Fprintf(w, "  %s\t%s\t%s\n", ui.FailTag(), name, ui.Dim("not set"))
		case value == "":
			fmt.Fprintf(w, "  %s\t%s\tset but empty\n", ui.WarnTag(), name)
		default:
			fmt.Fprintf(w, "  %s\t%s\tset (%d bytes)\n", ui.OKTag(), name, len(value))
		}
	}
	w.Flush()
}
