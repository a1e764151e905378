package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mailfold/mailfold/internal/gmail"
	"github.com/mailfold/mailfold/internal/query"
	"github.com/mailfold/mailfold/internal/search"
	"github.com/mailfold/mailfold/internal/timezone"
)

func newSearchCmd() *cobra.Command {
	var (
		account      string
		timeFilter   string
		hours        float64
		category     string
		maxResults   int64
		pageToken    string
		autoFetchAll bool
		timezoneName string
		debugMode    bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search Gmail from the command line",
		Long: `Run a one-shot Gmail search and print the results as JSON.

Without a query, lists messages received today (honoring --timezone).
With a query, searches the whole mailbox using Gmail query syntax
unless a time filter restricts it.

Examples:
  mailfold search
  mailfold search "from:alice@example.com has:attachment"
  mailfold search --time-filter last24h --category updates
  mailfold search "invoice" --hours 72 --max-results 50`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("timezone") {
				timezoneName = resolveTimezone(timezoneName)
			}

			logger := newLogger(debugMode)
			clock := timezone.New(timezoneName, logger)

			req := search.Request{
				Query:        strings.Join(args, " "),
				Hours:        hours,
				MaxResults:   maxResults,
				PageToken:    pageToken,
				AutoFetchAll: autoFetchAll,
			}

			if timeFilter != "" {
				tf, err := query.ParseTimeFilter(timeFilter)
				if err != nil {
					return err
				}
				req.TimeFilter = tf
			}
			if category != "" {
				cat, err := query.ParseCategory(category)
				if err != nil {
					return err
				}
				req.Category = cat
			}

			ctx := context.Background()
			client, err := gmail.NewClientForAccount(ctx, account)
			if err != nil {
				return fmt.Errorf("failed to create Gmail client for account %s: %w", account, err)
			}

			orchestrator := search.New(clock, logger)

			var result *search.Result
			if req.Query == "" && timeFilter == "" && hours == 0 {
				result, err = orchestrator.GetRecent(ctx, client, req)
			} else {
				result, err = orchestrator.Search(ctx, client, req)
			}
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if len(result.Emails) == 0 && result.Message != "" {
				fmt.Println(result.Message)
				return nil
			}

			output, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render results: %w", err)
			}
			fmt.Println(string(output))

			if hint := result.ContinuationHint(); hint != "" {
				cmd.PrintErrln(hint)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().StringVar(&timeFilter, "time-filter", "", "Restrict results by time: today, yesterday, or last24h")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Restrict results to the last N hours (fractional values allowed)")
	cmd.Flags().StringVar(&category, "category", "", "Restrict results to a Gmail category: primary, social, promotions, updates, or forums")
	cmd.Flags().Int64Var(&maxResults, "max-results", 25, "Maximum results per page (up to 500)")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Continuation token from a previous search")
	cmd.Flags().BoolVar(&autoFetchAll, "auto-fetch-all", false, "Follow continuation tokens automatically (up to 100 messages)")
	cmd.Flags().StringVar(&timezoneName, "timezone", "", "Timezone offset for date boundaries (e.g. GMT+2). Can also use MAILFOLD_TIMEZONE env var.")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	return cmd
}
