package gmail_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/mailfold/internal/server"
	"github.com/mailfold/mailfold/internal/tools/batch"
	"github.com/mailfold/mailfold/internal/tools/common"
)

// RegisterLabelTools registers label management tools with the MCP server.
// Label mutation and message label changes are write operations and skipped
// in read-only mode.
func RegisterLabelTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	listLabelsTool := mcp.NewTool("gmail_list_labels",
		mcp.WithDescription("List all labels in the mailbox with message and unread counts"),
		accountOption(),
	)

	s.AddTool(listLabelsTool, common.InstrumentedToolHandlerWithService(
		"gmail_list_labels", "gmail", "list", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListLabels(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createLabelTool := mcp.NewTool("gmail_create_label",
		mcp.WithDescription("Create a new user label"),
		accountOption(),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the label to create. Use '/' for nesting (e.g. 'Clients/Acme')."),
		),
	)

	s.AddTool(createLabelTool, common.InstrumentedToolHandlerWithService(
		"gmail_create_label", "gmail", "create", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateLabel(ctx, request, sc)
		}))

	updateLabelTool := mcp.NewTool("gmail_update_label",
		mcp.WithDescription("Rename a user label"),
		accountOption(),
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label to rename"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The new name for the label"),
		),
	)

	s.AddTool(updateLabelTool, common.InstrumentedToolHandlerWithService(
		"gmail_update_label", "gmail", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateLabel(ctx, request, sc)
		}))

	deleteLabelTool := mcp.NewTool("gmail_delete_label",
		mcp.WithDescription("Delete a user label. The label is removed from all messages."),
		accountOption(),
		mcp.WithString("labelId",
			mcp.Required(),
			mcp.Description("The ID of the label to delete"),
		),
	)

	s.AddTool(deleteLabelTool, common.InstrumentedToolHandlerWithService(
		"gmail_delete_label", "gmail", "delete", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteLabel(ctx, request, sc)
		}))

	modifyLabelsTool := mcp.NewTool("gmail_modify_labels",
		mcp.WithDescription("Add and/or remove labels on one or more messages"),
		accountOption(),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs"),
		),
		mcp.WithString("addLabelIds",
			mcp.Description("Label ID (string) or array of label IDs to add"),
		),
		mcp.WithString("removeLabelIds",
			mcp.Description("Label ID (string) or array of label IDs to remove"),
		),
	)

	s.AddTool(modifyLabelsTool, common.InstrumentedToolHandlerWithService(
		"gmail_modify_labels", "gmail", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleModifyLabels(ctx, request, sc)
		}))

	markReadTool := mcp.NewTool("gmail_mark_read",
		mcp.WithDescription("Mark one or more messages as read"),
		accountOption(),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs"),
		),
	)

	s.AddTool(markReadTool, common.InstrumentedToolHandlerWithService(
		"gmail_mark_read", "gmail", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMarkRead(ctx, request, sc)
		}))

	archiveTool := mcp.NewTool("gmail_archive_messages",
		mcp.WithDescription("Archive one or more messages by removing them from the inbox"),
		accountOption(),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs"),
		),
	)

	s.AddTool(archiveTool, common.InstrumentedToolHandlerWithService(
		"gmail_archive_messages", "gmail", "update", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleArchiveMessages(ctx, request, sc)
		}))

	return nil
}

func handleListLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	labels, err := client.ListLabels(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list labels: %v", err)), nil
	}

	type labelOutput struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Messages int64  `json:"messages"`
		Unread   int64  `json:"unread"`
	}

	outputs := make([]labelOutput, len(labels))
	for i, l := range labels {
		outputs[i] = labelOutput{
			ID:       l.ID,
			Name:     l.Name,
			Type:     l.Type,
			Messages: l.Messages,
			Unread:   l.Unread,
		}
	}

	jsonBytes, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Found %d label(s):\n%s", len(labels), string(jsonBytes))), nil
}

func handleCreateLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	label, err := client.CreateLabel(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create label: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Label created successfully!\nID: %s\nName: %s", label.ID, label.Name)), nil
}

func handleUpdateLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	labelID, ok := args["labelId"].(string)
	if !ok || labelID == "" {
		return mcp.NewToolResultError("labelId is required"), nil
	}

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	label, err := client.UpdateLabel(ctx, labelID, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update label: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Label updated successfully!\nID: %s\nName: %s", label.ID, label.Name)), nil
}

func handleDeleteLabel(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	labelID, ok := args["labelId"].(string)
	if !ok || labelID == "" {
		return mcp.NewToolResultError("labelId is required"), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	if err := client.DeleteLabel(ctx, labelID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete label: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Label %s deleted successfully", labelID)), nil
}

func handleModifyLabels(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var add, remove []string
	if args["addLabelIds"] != nil {
		add, err = batch.ParseStringOrArray(args["addLabelIds"], "addLabelIds")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if args["removeLabelIds"] != nil {
		remove, err = batch.ParseStringOrArray(args["removeLabelIds"], "removeLabelIds")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if len(add) == 0 && len(remove) == 0 {
		return mcp.NewToolResultError("at least one of addLabelIds or removeLabelIds is required"), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		if err := client.ModifyMessageLabels(ctx, messageID, add, remove); err != nil {
			return "", err
		}
		return fmt.Sprintf("Labels modified on message %s", messageID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleMarkRead(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		if err := client.MarkAsRead(ctx, messageID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Message %s marked as read", messageID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleArchiveMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		if err := client.ArchiveMessage(ctx, messageID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Message %s archived", messageID), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}
