package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/mailfold/internal/server"
	"github.com/mailfold/mailfold/internal/tools/common"
)

// RegisterContactTools registers contact-related tools with the MCP server.
func RegisterContactTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchContactsTool := mcp.NewTool("gmail_search_contacts",
		mcp.WithDescription("Search for contacts across saved contacts, other contacts and the organization directory"),
		accountOption(),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query to find contacts (e.g. name, email, phone number)"),
		),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of results to return (default: 10)"),
		),
	)

	s.AddTool(searchContactsTool, common.InstrumentedToolHandlerWithService(
		"gmail_search_contacts", "people", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchContacts(ctx, request, sc)
		}))

	return nil
}

func handleSearchContacts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	q, ok := args["query"].(string)
	if !ok || q == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	maxResults := 10
	if maxResultsVal, ok := args["maxResults"].(float64); ok {
		maxResults = int(maxResultsVal)
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	contacts, err := client.SearchContacts(ctx, q, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search contacts: %v", err)), nil
	}

	if len(contacts) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No contacts found for query: %s", q)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d contact(s):\n\n", len(contacts))
	for i, contact := range contacts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, contact.DisplayName)
		if contact.EmailAddress != "" {
			fmt.Fprintf(&b, "   Email: %s\n", contact.EmailAddress)
		}
		if contact.PhoneNumber != "" {
			fmt.Fprintf(&b, "   Phone: %s\n", contact.PhoneNumber)
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
