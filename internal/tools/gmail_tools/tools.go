package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/mailfold/internal/gmail"
	"github.com/mailfold/mailfold/internal/google"
	"github.com/mailfold/mailfold/internal/server"
)

// RegisterGmailTools registers all Gmail-related tools with the MCP server.
// Write operations (send, reply, forward, label mutation, draft mutation)
// are only registered when readOnly is false.
func RegisterGmailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterSearchTools(s, sc); err != nil {
		return fmt.Errorf("failed to register search tools: %w", err)
	}

	if err := RegisterMessageTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}

	if err := RegisterLabelTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register label tools: %w", err)
	}

	if err := RegisterDraftTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register draft tools: %w", err)
	}

	if err := RegisterAttachmentTools(s, sc); err != nil {
		return fmt.Errorf("failed to register attachment tools: %w", err)
	}

	if err := RegisterContactTools(s, sc); err != nil {
		return fmt.Errorf("failed to register contact tools: %w", err)
	}

	return nil
}

// clientForAccount resolves the Gmail client for the account named in the
// request. A nil client comes back with a ready-to-return tool error so
// handlers can bail out in one line.
func clientForAccount(ctx context.Context, sc *server.ServerContext, account string) (*gmail.Client, *mcp.CallToolResult) {
	client := sc.GmailClientForAccount(account)
	if client != nil {
		return client, nil
	}

	if !gmail.HasTokenForAccount(account) {
		return nil, mcp.NewToolResultError(google.GetAuthenticationErrorMessage(account))
	}

	client, err := gmail.NewClientForAccount(ctx, account)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Failed to create Gmail client for account %s: %v", account, err))
	}
	sc.SetGmailClientForAccount(account, client)
	return client, nil
}

// accountOption is the account parameter shared by every Gmail tool.
func accountOption() mcp.ToolOption {
	return mcp.WithString("account",
		mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
	)
}

// splitEmailAddresses splits a comma-separated string of email addresses.
func splitEmailAddresses(addresses string) []string {
	if addresses == "" {
		return nil
	}

	parts := strings.Split(addresses, ",")
	result := make([]string, 0, len(parts))
	for _, addr := range parts {
		trimmed := strings.TrimSpace(addr)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
