package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/mailfold/internal/gmail"
	"github.com/mailfold/mailfold/internal/server"
	"github.com/mailfold/mailfold/internal/tools/common"
)

// RegisterMessageTools registers single-message tools with the MCP server.
// Sending, replying and forwarding are write operations and skipped in
// read-only mode.
func RegisterMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	readEmailTool := mcp.NewTool("gmail_read_email",
		mcp.WithDescription("Read a single email: headers plus the decoded message body"),
		accountOption(),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the Gmail message"),
		),
		mcp.WithString("format",
			mcp.Description("Body format: 'text' (default) or 'html'"),
		),
	)

	s.AddTool(readEmailTool, common.InstrumentedToolHandlerWithService(
		"gmail_read_email", "gmail", "get", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReadEmail(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	sendEmailTool := mcp.NewTool("gmail_send_email",
		mcp.WithDescription("Send an email through Gmail. The sender's Gmail signature is appended automatically."),
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
			mcp.Required(),
			mcp.Description("Email body content"),
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

	s.AddTool(sendEmailTool, common.InstrumentedToolHandlerWithService(
		"gmail_send_email", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendEmail(ctx, request, sc)
		}))

	replyEmailTool := mcp.NewTool("gmail_reply_email",
		mcp.WithDescription("Reply to an email, keeping it in the original thread"),
		accountOption(),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to reply to"),
		),
		mcp.WithString("threadId",
			mcp.Required(),
			mcp.Description("The ID of the thread the message belongs to"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Reply body content"),
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

	s.AddTool(replyEmailTool, common.InstrumentedToolHandlerWithService(
		"gmail_reply_email", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplyEmail(ctx, request, sc)
		}))

	forwardEmailTool := mcp.NewTool("gmail_forward_email",
		mcp.WithDescription("Forward an email to other recipients"),
		accountOption(),
		mcp.WithString("messageId",
			mcp.Required(),
			mcp.Description("The ID of the message to forward"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("cc",
			mcp.Description("CC email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("additionalBody",
			mcp.Description("Optional text to add above the forwarded message"),
		),
		mcp.WithBoolean("isHTML",
			mcp.Description("Whether the body is HTML (default: false for plain text)"),
		),
	)

	s.AddTool(forwardEmailTool, common.InstrumentedToolHandlerWithService(
		"gmail_forward_email", "gmail", "send", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleForwardEmail(ctx, request, sc)
		}))

	return nil
}

func handleReadEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
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

	summary, err := client.GetMessageSummary(ctx, messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get message: %v", err)), nil
	}

	body, err := client.GetMessageBody(ctx, messageID, format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get message body: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\n", summary.From)
	fmt.Fprintf(&b, "To: %s\n", summary.To)
	fmt.Fprintf(&b, "Subject: %s\n", summary.Subject)
	fmt.Fprintf(&b, "Date: %s\n", summary.Date)
	fmt.Fprintf(&b, "Thread ID: %s\n", summary.ThreadID)
	if summary.Unread {
		b.WriteString("Status: unread\n")
	}
	b.WriteString("\n")
	b.WriteString(body)

	return mcp.NewToolResultText(b.String()), nil
}

func handleSendEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	toStr, ok := args["to"].(string)
	if !ok || toStr == "" {
		return mcp.NewToolResultError("'to' field is required"), nil
	}

	subject, ok := args["subject"].(string)
	if !ok || subject == "" {
		return mcp.NewToolResultError("'subject' field is required"), nil
	}

	body, ok := args["body"].(string)
	if !ok || body == "" {
		return mcp.NewToolResultError("'body' field is required"), nil
	}

	msg := &gmail.EmailMessage{
		To:      splitEmailAddresses(toStr),
		Subject: subject,
		Body:    body,
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

	messageID, err := client.SendEmail(ctx, msg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send email: %v", err)), nil
	}

	result := fmt.Sprintf("Email sent successfully!\nMessage ID: %s\nTo: %s\nSubject: %s",
		messageID, strings.Join(msg.To, ", "), subject)
	if len(msg.Cc) > 0 {
		result += fmt.Sprintf("\nCC: %s", strings.Join(msg.Cc, ", "))
	}
	if len(msg.Bcc) > 0 {
		result += fmt.Sprintf("\nBCC: %s", strings.Join(msg.Bcc, ", "))
	}

	return mcp.NewToolResultText(result), nil
}

func handleReplyEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	threadID, ok := args["threadId"].(string)
	if !ok || threadID == "" {
		return mcp.NewToolResultError("threadId is required"), nil
	}

	body, ok := args["body"].(string)
	if !ok || body == "" {
		return mcp.NewToolResultError("'body' field is required"), nil
	}

	var cc, bcc []string
	if ccVal, ok := args["cc"].(string); ok {
		cc = splitEmailAddresses(ccVal)
	}
	if bccVal, ok := args["bcc"].(string); ok {
		bcc = splitEmailAddresses(bccVal)
	}

	isHTML := false
	if isHTMLVal, ok := args["isHTML"].(bool); ok {
		isHTML = isHTMLVal
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	sentID, err := client.ReplyToEmail(ctx, messageID, threadID, body, cc, bcc, isHTML)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send reply: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reply sent successfully!\nMessage ID: %s\nThread ID: %s", sentID, threadID)), nil
}

func handleForwardEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	messageID, ok := args["messageId"].(string)
	if !ok || messageID == "" {
		return mcp.NewToolResultError("messageId is required"), nil
	}

	toStr, ok := args["to"].(string)
	if !ok || toStr == "" {
		return mcp.NewToolResultError("'to' field is required"), nil
	}
	to := splitEmailAddresses(toStr)

	var cc, bcc []string
	if ccVal, ok := args["cc"].(string); ok {
		cc = splitEmailAddresses(ccVal)
	}
	if bccVal, ok := args["bcc"].(string); ok {
		bcc = splitEmailAddresses(bccVal)
	}

	additionalBody := ""
	if bodyVal, ok := args["additionalBody"].(string); ok {
		additionalBody = bodyVal
	}

	isHTML := false
	if isHTMLVal, ok := args["isHTML"].(bool); ok {
		isHTML = isHTMLVal
	}

	account := common.GetAccountFromArgs(ctx, args)
	client, errResult := clientForAccount(ctx, sc, account)
	if errResult != nil {
		return errResult, nil
	}

	sentID, err := client.ForwardEmail(ctx, messageID, to, cc, bcc, additionalBody, isHTML)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to forward email: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Email forwarded successfully!\nMessage ID: %s\nTo: %s", sentID, strings.Join(to, ", "))), nil
}
