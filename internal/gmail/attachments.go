package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// MaxAttachmentSize is the largest attachment this client will download,
// in bytes (25MB, Gmail's own sending limit).
const MaxAttachmentSize = 25 * 1024 * 1024

// AttachmentInfo describes one attachment of a message.
type AttachmentInfo struct {
	MessageID    string
	PartID       string
	AttachmentID string
	Filename     string
	MimeType     string
	Size         int64
}

// ListAttachments extracts attachment metadata from a message.
func (c *Client) ListAttachments(ctx context.Context, messageID string) ([]*AttachmentInfo, error) {
	msg, err := c.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}

	var attachments []*AttachmentInfo
	walkParts(msg.Payload, func(part *gmail.MessagePart) {
		if part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "" {
			attachments = append(attachments, &AttachmentInfo{
				MessageID:    messageID,
				PartID:       part.PartId,
				AttachmentID: part.Body.AttachmentId,
				Filename:     part.Filename,
				MimeType:     part.MimeType,
				Size:         part.Body.Size,
			})
		}
	})
	return attachments, nil
}

// GetAttachment downloads and decodes the content of an attachment.
func (c *Client) GetAttachment(ctx context.Context, messageID, attachmentID string) ([]byte, error) {
	if messageID == "" {
		return nil, fmt.Errorf("messageID is required")
	}
	if attachmentID == "" {
		return nil, fmt.Errorf("attachmentID is required")
	}

	attachment, err := c.svc.Messages.Attachments.Get("me", messageID, attachmentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment %s: %w", attachmentID, err)
	}

	if attachment.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment size %d exceeds maximum size %d", attachment.Size, MaxAttachmentSize)
	}

	return decodeBase64Url(attachment.Data)
}

// GetAttachmentAsString downloads an attachment as a string, for text payloads.
func (c *Client) GetAttachmentAsString(ctx context.Context, messageID, attachmentID string) (string, error) {
	data, err := c.GetAttachment(ctx, messageID, attachmentID)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetMessageBody extracts the text or HTML body of a message. Format is
// "text" or "html"; empty means "text".
func (c *Client) GetMessageBody(ctx context.Context, messageID string, format string) (string, error) {
	if format == "" {
		format = "text"
	}

	var targetMimeType string
	switch format {
	case "text":
		targetMimeType = "text/plain"
	case "html":
		targetMimeType = "text/html"
	default:
		return "", fmt.Errorf("invalid format %s, must be 'text' or 'html'", format)
	}

	msg, err := c.GetMessage(ctx, messageID)
	if err != nil {
		return "", err
	}

	var body string
	if msg.Payload != nil {
		if msg.Payload.MimeType == targetMimeType && msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
			body = msg.Payload.Body.Data
		} else {
			walkParts(msg.Payload, func(part *gmail.MessagePart) {
				if body == "" && part.MimeType == targetMimeType && part.Body != nil && part.Body.Data != "" {
					body = part.Body.Data
				}
			})
		}
	}

	if body == "" {
		return "", fmt.Errorf("no %s body found in message", format)
	}

	decoded, err := decodeBase64Url(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode message body: %w", err)
	}
	return string(decoded), nil
}

// decodeBase64Url decodes Gmail's base64url payloads, falling back to
// standard base64 since some gateways emit it.
func decodeBase64Url(data string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(data)
}

// walkParts visits part and all its descendants depth-first.
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}
	fn(part)
	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}

// SanitizeFilename strips path separators from a filename so attachment
// names cannot traverse directories when written to disk.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "/", "_")
	filename = strings.ReplaceAll(filename, "\\", "_")
	filename = strings.ReplaceAll(filename, "..", "_")
	return filename
}

// ValidateMimeType reports whether mimeType is in the allowed list. An
// empty list allows everything.
func ValidateMimeType(mimeType string, allowedTypes []string) bool {
	if len(allowedTypes) == 0 {
		return true
	}
	for _, allowed := range allowedTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}
