// cmd/tmmcp/cli/gsc.go
package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/gsc"
	"github.com/azrlmaster/my-typingmind-mcp-connector/internal/ui"
	"github.com/spf13/cobra"
)

var gscCmd = &cobra.Command{
	Use:   "gsc",
	Short: "Query Google Search Console directly",
	Long: `Query Google Search Console with the same credentials a launch would
resolve: environment strategies first, then the keychain token stored by
'tmmcp auth login'.

Useful for verifying access before deploying, or for one-off lookups
without going through the MCP runtime.`,
}

var gscSitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Manage verified sites",
}

var gscSitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sites the credential can access",
	Args:  cobra.NoArgs,
	RunE:  runSitesList,
}

var gscSitesGetCmd = &cobra.Command{
	Use:   "get <site-url>",
	Short: "Show permission details for a site",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitesGet,
}

var gscSitesAddCmd = &cobra.Command{
	Use:   "add <site-url>",
	Short: "Add a site to the account",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitesAdd,
}

var gscSitesDeleteCmd = &cobra.Command{
	Use:   "delete <site-url>",
	Short: "Remove a site from the account",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitesDelete,
}

var gscSitemapsCmd = &cobra.Command{
	Use:   "sitemaps",
	Short: "Manage sitemaps for a site",
}

var gscSitemapsListCmd = &cobra.Command{
	Use:   "list <site-url>",
	Short: "List submitted sitemaps",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitemapsList,
}

var gscSitemapsGetCmd = &cobra.Command{
	Use:   "get <site-url> <feed-path>",
	Short: "Show status for one sitemap",
	Args:  cobra.ExactArgs(2),
	RunE:  runSitemapsGet,
}

var gscSitemapsSubmitCmd = &cobra.Command{
	Use:   "submit <site-url> <feed-path>",
	Short: "Submit a sitemap for crawling",
	Args:  cobra.ExactArgs(2),
	RunE:  runSitemapsSubmit,
}

var gscSitemapsDeleteCmd = &cobra.Command{
	Use:   "delete <site-url> <feed-path>",
	Short: "Delete a submitted sitemap",
	Args:  cobra.ExactArgs(2),
	RunE:  runSitemapsDelete,
}

var (
	queryStartDate  string
	queryEndDate    string
	queryDimensions []string
	querySearchType string
	queryDataState  string
	queryRowLimit   int64
	queryStartRow   int64
)

var gscQueryCmd = &cobra.Command{
	Use:   "query <site-url>",
	Short: "Run a search analytics query",
	Long: `Run a search analytics query against a site.

Examples:
  # Top queries for the last week
  tmmcp gsc query https://example.com/ --start 2026-08-18 --end 2026-08-25 --dimension query

  # Clicks per page and country, fresh data
  tmmcp gsc query sc-domain:example.com --start 2026-08-01 --end 2026-08-25 \
    --dimension page --dimension country --data-state all`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

var inspectLanguage string

var gscInspectCmd = &cobra.Command{
	Use:   "inspect <site-url> <page-url>",
	Short: "Inspect the index status of a URL",
	Args:  cobra.ExactArgs(2),
	RunE:  runInspect,
}

func init() {
	gscQueryCmd.Flags().StringVar(&queryStartDate, "start", "", "start date (YYYY-MM-DD, required)")
	gscQueryCmd.Flags().StringVar(&queryEndDate, "end", "", "end date (YYYY-MM-DD, required)")
	gscQueryCmd.Flags().StringArrayVar(&queryDimensions, "dimension", nil, "dimension to group by (repeatable: query, page, country, device, date)")
	gscQueryCmd.Flags().StringVar(&querySearchType, "type", "", "search type (web, image, video, news, discover, googleNews)")
	gscQueryCmd.Flags().StringVar(&queryDataState, "data-state", "", "data state (final, all)")
	gscQueryCmd.Flags().Int64Var(&queryRowLimit, "row-limit", 0, "maximum rows to return (default 1000)")
	gscQueryCmd.Flags().Int64Var(&queryStartRow, "start-row", 0, "zero-based row offset for paging")

	gscInspectCmd.Flags().StringVar(&inspectLanguage, "language", "", "BCP-47 language for result messages (default en-US)")

	gscSitesCmd.AddCommand(gscSitesListCmd)
	gscSitesCmd.AddCommand(gscSitesGetCmd)
	gscSitesCmd.AddCommand(gscSitesAddCmd)
	gscSitesCmd.AddCommand(gscSitesDeleteCmd)

	gscSitemapsCmd.AddCommand(gscSitemapsListCmd)
	gscSitemapsCmd.AddCommand(gscSitemapsGetCmd)
	gscSitemapsCmd.AddCommand(gscSitemapsSubmitCmd)
	gscSitemapsCmd.AddCommand(gscSitemapsDeleteCmd)

	gscCmd.AddCommand(gscSitesCmd)
	gscCmd.AddCommand(gscSitemapsCmd)
	gscCmd.AddCommand(gscQueryCmd)
	gscCmd.AddCommand(gscInspectCmd)
	rootCmd.AddCommand(gscCmd)
}

func runSitesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	sites, err := svc.ListSites(ctx)
	if err != nil {
		return gscError(err)
	}

	if jsonOut {
		return printJSON(sites)
	}
	if len(sites) == 0 {
		fmt.Println("No sites found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SITE URL\tPERMISSION")
	for _, s := range sites {
		fmt.Fprintf(w, "%s\t%s\n", s.SiteUrl, s.PermissionLevel)
	}
	return w.Flush()
}

func runSitesGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	site, err := svc.GetSite(ctx, args[0])
	if err != nil {
		return gscError(err)
	}

	if jsonOut {
		return printJSON(site)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SITE URL\tPERMISSION")
	fmt.Fprintf(w, "%s\t%s\n", site.SiteUrl, site.PermissionLevel)
	return w.Flush()
}

func runSitesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	if err := svc.AddSite(ctx, args[0]); err != nil {
		return gscError(err)
	}
	fmt.Printf("%s Added %s\n", ui.OKTag(), args[0])
	return nil
}

func runSitesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	if err := svc.DeleteSite(ctx, args[0]); err != nil {
		return gscError(err)
	}
	fmt.Printf("%s Removed %s\n", ui.OKTag(), args[0])
	return nil
}

func runSitemapsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	sitemaps, err := svc.ListSitemaps(ctx, args[0])
	if err != nil {
		return gscError(err)
	}

	if jsonOut {
		return printJSON(sitemaps)
	}
	if len(sitemaps) == 0 {
		fmt.Println("No sitemaps submitted")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tTYPE\tPENDING\tERRORS\tWARNINGS\tLAST SUBMITTED")
	for _, sm := range sitemaps {
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%d\t%s\n",
			sm.Path, sm.Type, sm.IsPending, sm.Errors, sm.Warnings, formatTimestamp(sm.LastSubmitted))
	}
	return w.Flush()
}

func runSitemapsGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	sm, err := svc.GetSitemap(ctx, args[0], args[1])
	if err != nil {
		return gscError(err)
	}

	if jsonOut {
		return printJSON(sm)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Path:\t%s\n", sm.Path)
	fmt.Fprintf(w, "Type:\t%s\n", sm.Type)
	fmt.Fprintf(w, "Pending:\t%v\n", sm.IsPending)
	fmt.Fprintf(w, "Index file:\t%v\n", sm.IsSitemapsIndex)
	fmt.Fprintf(w, "Errors:\t%d\n", sm.Errors)
	fmt.Fprintf(w, "Warnings:\t%d\n", sm.Warnings)
	fmt.Fprintf(w, "Last submitted:\t%s\n", formatTimestamp(sm.LastSubmitted))
	fmt.Fprintf(w, "Last downloaded:\t%s\n", formatTimestamp(sm.LastDownloaded))
	for _, c := range sm.Contents {
		fmt.Fprintf(w, "Contents (%s):\t%d submitted, %d indexed\n", c.Type, c.Submitted, c.Indexed)
	}
	return w.Flush()
}

func runSitemapsSubmit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	if err := svc.SubmitSitemap(ctx, args[0], args[1]); err != nil {
		return gscError(err)
	}
	fmt.Printf("%s Submitted %s\n", ui.OKTag(), args[1])
	return nil
}

func runSitemapsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	if err := svc.DeleteSitemap(ctx, args[0], args[1]); err != nil {
		return gscError(err)
	}
	fmt.Printf("%s Deleted %s\n", ui.OKTag(), args[1])
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryStartDate == "" || queryEndDate == "" {
		return fmt.Errorf("--start and --end are required")
	}

	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	resp, err := svc.QueryAnalytics(ctx, args[0], gsc.Query{
		StartDate:  queryStartDate,
		EndDate:    queryEndDate,
		Dimensions: queryDimensions,
		SearchType: querySearchType,
		DataState:  queryDataState,
		RowLimit:   queryRowLimit,
		StartRow:   queryStartRow,
	})
	if err != nil {
		return gscError(err)
	}

	if jsonOut {
		return printJSON(resp)
	}
	if len(resp.Rows) == 0 {
		fmt.Println("No rows returned")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEYS\tCLICKS\tIMPRESSIONS\tCTR\tPOSITION")
	for _, row := range resp.Rows {
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.2f%%\t%.1f\n",
			strings.Join(row.Keys, ", "), row.Clicks, row.Impressions, row.Ctr*100, row.Position)
	}
	return w.Flush()
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := newGSCService(ctx)
	if err != nil {
		return err
	}

	result, err := svc.InspectURL(ctx, args[0], args[1], inspectLanguage)
	if err != nil {
		return gscError(err)
	}

	if jsonOut {
		return printJSON(result)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if idx := result.IndexStatusResult; idx != nil {
		fmt.Fprintf(w, "Verdict:\t%s\n", inspectionVerdict(idx.Verdict))
		fmt.Fprintf(w, "Coverage:\t%s\n", idx.CoverageState)
		fmt.Fprintf(w, "Robots.txt:\t%s\n", idx.RobotsTxtState)
		fmt.Fprintf(w, "Indexing:\t%s\n", idx.IndexingState)
		fmt.Fprintf(w, "Page fetch:\t%s\n", idx.PageFetchState)
		fmt.Fprintf(w, "Last crawl:\t%s\n", formatTimestamp(idx.LastCrawlTime))
		if idx.GoogleCanonical != "" {
			fmt.Fprintf(w, "Google canonical:\t%s\n", idx.GoogleCanonical)
		}
		if idx.UserCanonical != "" {
			fmt.Fprintf(w, "User canonical:\t%s\n", idx.UserCanonical)
		}
	}
	if result.InspectionResultLink != "" {
		fmt.Fprintf(w, "Details:\t%s\n", result.InspectionResultLink)
	}
	return w.Flush()
}

// inspectionVerdict colors the verdict the way doctor-style checks do.
func inspectionVerdict(verdict string) string {
	switch verdict {
	case "PASS":
		return ui.Green(verdict)
	case "FAIL":
		return ui.Red(verdict)
	case "NEUTRAL":
		return ui.Yellow(verdict)
	default:
		return verdict
	}
}

// formatTimestamp renders an RFC 3339 API timestamp in compact local form.
// Unparseable or empty values pass through untouched.
func formatTimestamp(ts string) string {
	if ts == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04")
}
