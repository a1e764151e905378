package gmail_tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/mailfold/internal/server"
	"github.com/mailfold/mailfold/internal/tools/batch"
	"github.com/mailfold/mailfold/internal/tools/common"
)

// RegisterAttachmentTools registers attachment-related tools with the MCP
// server. All of them are read-only.
func RegisterAttachmentTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listAttachmentsTool := mcp.NewTool("gmail_list_attachments",
		mcp.WithDescription("List all attachments in a Gmail message"),
		accountOption(),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
	)

	s.AddTool(listAttachmentsTool, common.InstrumentedToolHandlerWithService(
		"gmail_list_attachments", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListAttachments(ctx, request, sc)
		}))

	getAttachmentTool := mcp.NewTool("gmail_get_attachment",
		mcp.WithDescription("Get the content of an attachment (up to 25 MB)"),
		accountOption(),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
		mcp.WithString("attachmentId",
			mcp.Required(),
			mcp.Description("The ID of the attachment"),
		),
		mcp.WithString("encoding",
			mcp.Description("Encoding format: 'base64' (default) or 'text'"),
		),
	)

	s.AddTool(getAttachmentTool, common.InstrumentedToolHandlerWithService(
		"gmail_get_attachment", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetAttachment(ctx, request, sc)
		}))

	getMessageBodiesTool := mcp.NewTool("gmail_get_message_bodies",
		mcp.WithDescription("Extract text or HTML body from one or more Gmail messages"),
		accountOption(),
		mcp.WithString("messageIds",
			mcp.Required(),
			mcp.Description("Message ID (string) or array of message IDs"),
		),
		mcp.WithString("format",
			mcp.Description("Body format: 'text' (default) or 'html'"),
		),
	)

	s.AddTool(getMessageBodiesTool, common.InstrumentedToolHandlerWithService(
		"gmail_get_message_bodies", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessageBodies(ctx, request, sc)
		}))

	return nil
}

func handleListAttachments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	attachments, err := client.ListAttachments(ctx, messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list attachments: %v", err)), nil
	}

	if len(attachments) == 0 {
		return mcp.NewToolResultText("No attachments found in message"), nil
	}

	type attachmentOutput struct {
		AttachmentID string `json:"attachmentId"`
		Filename     string `json:"filename"`
		MimeType     string `json:"mimeType"`
		Size         int64  `json:"size"`
		SizeHuman    string `json:"sizeHuman"`
	}

	outputs := make([]attachmentOutput, len(attachments))
	for i, att := range attachments {
		outputs[i] = attachmentOutput{
			AttachmentID: att.AttachmentID,
			Filename:     att.Filename,
			MimeType:     att.MimeType,
			Size:         att.Size,
			SizeHuman:    formatSize(att.Size),
		}
	}

	jsonBytes, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to format output: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Found %d attachment(s):\n%s", len(attachments), string(jsonBytes))), nil
}

func handleGetAttachment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	attachmentID, ok := args["attachmentId"].(string)
	if !ok || attachmentID == "" {
		return mcp.NewToolResultError("attachmentId is required"), nil
	}

	encoding := "base64"
	if encodingVal, ok := args["encoding"].(string); ok && encodingVal != "" {
		encoding = encodingVal
	}
	if encoding != "base64" && encoding != "text" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid encoding '%s', must be 'base64' or 'text'", encoding)), nil
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	if encoding == "text" {
		text, err := client.GetAttachmentAsString(ctx, messageID, attachmentID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to get attachment: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Attachment content (text, %d bytes):\n%s", len(text), text)), nil
	}

	data, err := client.GetAttachment(ctx, messageID, attachmentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get attachment: %v", err)), nil
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return mcp.NewToolResultText(fmt.Sprintf("Attachment content (base64, %d bytes):\n%s", len(data), encoded)), nil
}

func handleGetMessageBodies(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageIDs, err := batch.ParseStringOrArray(args["messageIds"], "messageIds")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	format := "text"
	if formatVal, ok := args["format"].(string); ok && formatVal != "" {
		format = formatVal
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	results := batch.ProcessBatch(messageIDs, func(messageID string) (string, error) {
		body, err := client.GetMessageBody(ctx, messageID, format)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Message body (%s, %d bytes):\n%s", format, len(body), body), nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

// formatSize formats a byte size into human-readable format.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
