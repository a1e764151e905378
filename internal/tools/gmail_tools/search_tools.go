package gmail_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/mailfold/internal/query"
	"github.com/mailfold/mailfold/internal/search"
	"github.com/mailfold/mailfold/internal/server"
	"github.com/mailfold/mailfold/internal/tools/common"
)

// RegisterSearchTools registers the two mailbox search tools with the MCP
// server. Both are read-only and always available.
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getRecentOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Get recent emails from the mailbox. Defaults to today's emails in the configured timezone when no time restriction is given."),
		accountOption(),
		mcp.WithString("query",
			mcp.Description("Gmail search query to further restrict the results (e.g. 'from:alice@example.com', 'is:unread')"),
		),
	}, searchOptions()...)
	getRecentTool := mcp.NewTool("gmail_get_recent_emails", getRecentOpts...)

	s.AddTool(getRecentTool, common.InstrumentedToolHandlerWithService(
		"gmail_get_recent_emails", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetRecentEmails(ctx, request, sc)
		}))

	searchOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Search emails in the mailbox using Gmail query syntax. No time restriction is applied unless one is given."),
		accountOption(),
		mcp.WithString("query",
			mcp.Description("Gmail search query (e.g. 'from:alice@example.com subject:invoice', 'is:unread after:2024/01/15')"),
		),
	}, searchOptions()...)
	searchTool := mcp.NewTool("gmail_search_emails", searchOpts...)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"gmail_search_emails", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchEmails(ctx, request, sc)
		}))

	return nil
}

// searchOptions returns the parameters shared by both search tools.
func searchOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("timeFilter",
			mcp.Description("Named time restriction: 'today', 'yesterday' (calendar days in the configured timezone) or 'last24h' (rolling window). Overrides date operators in the query."),
		),
		mcp.WithNumber("hours",
			mcp.Description("Restrict to emails newer than this many hours. Ignored when timeFilter is set."),
		),
		mcp.WithString("category",
			mcp.Description("Gmail inbox category: 'primary', 'social', 'promotions', 'updates' or 'forums'"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of emails to return (default: 25, max: 500)"),
		),
		mcp.WithString("pageToken",
			mcp.Description("Page token from a previous call to fetch the next page"),
		),
		mcp.WithBoolean("autoFetchAll",
			mcp.Description("Automatically fetch subsequent pages up to 100 emails total (default: false)"),
		),
	}
}

func handleGetRecentEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return handleSearch(ctx, request, sc, true)
}

func handleSearchEmails(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	return handleSearch(ctx, request, sc, false)
}

func handleSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext, recent bool) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req, err := parseSearchRequest(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	var (
		result    *search.Result
		operation string
	)
	if recent {
		operation = "get_recent"
		result, err = sc.Orchestrator().GetRecent(ctx, client, req)
	} else {
		operation = "search"
		result, err = sc.Orchestrator().Search(ctx, client, req)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search emails: %v", err)), nil
	}

	if metrics := sc.Metrics(); metrics != nil {
		metrics.RecordSearch(ctx, operation, len(result.Emails), result.Truncated)
	}

	text, err := renderSearchResult(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format results: %v", err)), nil
	}

	return mcp.NewToolResultText(text), nil
}

// parseSearchRequest validates the raw tool arguments into a search request.
func parseSearchRequest(args map[string]interface{}) (search.Request, error) {
	var req search.Request

	if queryVal, ok := args["query"].(string); ok {
		req.Query = queryVal
	}

	if timeFilterVal, ok := args["timeFilter"].(string); ok && timeFilterVal != "" {
		timeFilter, err := query.ParseTimeFilter(timeFilterVal)
		if err != nil {
			return search.Request{}, err
		}
		req.TimeFilter = timeFilter
	}

	if hoursVal, ok := args["hours"].(float64); ok {
		if hoursVal < 0 {
			return search.Request{}, fmt.Errorf("hours must be positive, got %g", hoursVal)
		}
		req.Hours = hoursVal
	}

	if categoryVal, ok := args["category"].(string); ok && categoryVal != "" {
		category, err := query.ParseCategory(categoryVal)
		if err != nil {
			return search.Request{}, err
		}
		req.Category = category
	}

	if maxResultsVal, ok := args["maxResults"].(float64); ok {
		req.MaxResults = int64(maxResultsVal)
	}

	if pageTokenVal, ok := args["pageToken"].(string); ok {
		req.PageToken = pageTokenVal
	}

	if autoFetchVal, ok := args["autoFetchAll"].(bool); ok {
		req.AutoFetchAll = autoFetchVal
	}

	return req, nil
}

// renderSearchResult serializes a search result for the agent. A zero-match
// result is returned as its bare message; everything else is the structured
// payload plus a continuation hint when more pages remain.
func renderSearchResult(result *search.Result) (string, error) {
	if len(result.Emails) == 0 && result.Message != "" {
		return result.Message, nil
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}

	text := string(jsonBytes)
	if hint := result.ContinuationHint(); hint != "" {
		text += "\n\n" + hint
	}
	return text, nil
}
