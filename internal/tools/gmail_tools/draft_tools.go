package gmail_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/mailfold/internal/gmail"
	"github.com/mailfold/mailfold/internal/server"
	"github.com/mailfold/mailfold/internal/tools/common"
)

// RegisterDraftTools registers draft management tools with the MCP server.
// Creating and listing drafts is always available; deleting and sending a
// draft are write operations and skipped in read-only mode.
func RegisterDraftTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	createDraftTool := mcp.NewTool("gmail_create_draft",
		mcp.WithDescription("Create a draft email without sending it"),
		accountOption(),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Description("Email body content (may be empty for a stub draft)"),
		),
		mcp.WithString("cc",
			mcp.Description("CC email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithBoolean("isHTML",
			mcp.Description("Whether the body is HTML (default: false for plain text)"),
		),
	)

	s.AddTool(createDraftTool, common.InstrumentedToolHandlerWithService(
		"gmail_create_draft", "gmail", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDraft(ctx, request, sc)
		}))

	listDraftsTool := mcp.NewTool("gmail_list_drafts",
		mcp.WithDescription("List draft emails in the mailbox"),
		accountOption(),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of drafts to return (default: 10)"),
		),
	)

	s.AddTool(listDraftsTool, common.InstrumentedToolHandlerWithService(
		"gmail_list_drafts", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListDrafts(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	deleteDraftTool := mcp.NewTool("gmail_delete_draft",
		mcp.WithDescription("Permanently delete a draft email"),
		accountOption(),
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to delete"),
		),
	)

	s.AddTool(deleteDraftTool, common.InstrumentedToolHandlerWithService(
		"gmail_delete_draft", "gmail", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteDraft(ctx, request, sc)
		}))

	sendDraftTool := mcp.NewTool("gmail_send_draft",
		mcp.WithDescription("Send an existing draft email"),
		accountOption(),
		mcp.WithString("draftId",
			mcp.Required(),
			mcp.Description("The ID of the draft to send"),
		),
	)

	s.AddTool(sendDraftTool, common.InstrumentedToolHandlerWithService(
		"gmail_send_draft", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendDraft(ctx, request, sc)
		}))

	return nil
}

func handleCreateDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	toStr, ok := args["to"].(string)
	if !ok || toStr == "" {
		return mcp.NewToolResultError("'to' field is required"), nil
	}

	subject, ok := args["subject"].(string)
	if !ok || subject == "" {
		return mcp.NewToolResultError("'subject' field is required"), nil
	}

	msg := &gmail.EmailMessage{
		To:      splitEmailAddresses(toStr),
		Subject: subject,
	}
	if bodyVal, ok := args["body"].(string); ok {
		msg.Body = bodyVal
	}
	if ccVal, ok := args["cc"].(string); ok {
		msg.Cc = splitEmailAddresses(ccVal)
	}
	if bccVal, ok := args["bcc"].(string); ok {
		msg.Bcc = splitEmailAddresses(bccVal)
	}
	if isHTMLVal, ok := args["isHTML"].(bool); ok {
		msg.IsHTML = isHTMLVal
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	draftID, err := client.CreateDraft(ctx, msg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create draft: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Draft created successfully!\nDraft ID: %s\nSubject: %s", draftID, subject)), nil
}

func handleListDrafts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	maxResults := int64(10)
	if maxResultsVal, ok := args["maxResults"].(float64); ok {
		maxResults = int64(maxResultsVal)
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	drafts, err := client.ListDrafts(ctx, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list drafts: %v", err)), nil
	}

	if len(drafts) == 0 {
		return mcp.NewToolResultText("No drafts found"), nil
	}

	jsonBytes, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Found %d draft(s):\n%s", len(drafts), string(jsonBytes))), nil
}

func handleDeleteDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	draftID, ok := args["draftId"].(string)
	if !ok || draftID == "" {
		return mcp.NewToolResultError("draftId is required"), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	if err := client.DeleteDraft(ctx, draftID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete draft: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Draft %s deleted successfully", draftID)), nil
}

func handleSendDraft(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	draftID, ok := args["draftId"].(string)
	if !ok || draftID == "" {
		return mcp.NewToolResultError("draftId is required"), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	messageID, err := client.SendDraft(ctx, draftID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send draft: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Draft sent successfully!\nMessage ID: %s", messageID)), nil
}
