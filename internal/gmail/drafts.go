package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// DraftInfo is the envelope view of a draft.
type DraftInfo struct {
	ID      string
	To      string
	Subject string
	Snippet string
}

// CreateDraft composes a new draft and returns its ID.
func (c *Client) CreateDraft(ctx context.Context, msg *EmailMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}

	var b strings.Builder
	mimeHeaders(&b, msg.To, msg.Cc, msg.Bcc, msg.Subject, msg.IsHTML)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	draft, err := c.svc.Drafts.Create("me", &gmail.Draft{
		Message: &gmail.Message{
			Raw: base64.URLEncoding.EncodeToString([]byte(b.String())),
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create draft: %w", err)
	}
	return draft.Id, nil
}

// ListDrafts returns up to maxResults drafts with their envelopes.
func (c *Client) ListDrafts(ctx context.Context, maxResults int64) ([]*DraftInfo, error) {
	call := c.svc.Drafts.List("me").Context(ctx)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}
	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}

	drafts := make([]*DraftInfo, 0, len(res.Drafts))
	for _, d := range res.Drafts {
		info := &DraftInfo{ID: d.Id}
		// The list call returns bare stubs; fetch the envelope per draft.
		full, err := c.svc.Drafts.Get("me", d.Id).Format("metadata").Context(ctx).Do()
		if err == nil && full.Message != nil {
			info.To = HeaderValue(full.Message, "To")
			info.Subject = HeaderValue(full.Message, "Subject")
			info.Snippet = full.Message.Snippet
		}
		drafts = append(drafts, info)
	}
	return drafts, nil
}

// DeleteDraft permanently removes a draft.
func (c *Client) DeleteDraft(ctx context.Context, draftID string) error {
	if draftID == "" {
		return fmt.Errorf("draftID is required")
	}
	if err := c.svc.Drafts.Delete("me", draftID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", draftID, err)
	}
	return nil
}

// SendDraft sends an existing draft and returns the sent message ID.
func (c *Client) SendDraft(ctx context.Context, draftID string) (string, error) {
	if draftID == "" {
		return "", fmt.Errorf("draftID is required")
	}
	sent, err := c.svc.Drafts.Send("me", &gmail.Draft{Id: draftID}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send draft %s: %w", draftID, err)
	}
	return sent.Id, nil
}
