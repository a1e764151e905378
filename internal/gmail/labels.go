package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
)

// LabelInfo is the user-facing view of a Gmail label.
type LabelInfo struct {
	ID       string
	Name     string
	Type     string // "system" or "user"
	Messages int64
	Unread   int64
}

func labelInfoFrom(l *gmail.Label) *LabelInfo {
	return &LabelInfo{
		ID:       l.Id,
		Name:     l.Name,
		Type:     l.Type,
		Messages: l.MessagesTotal,
		Unread:   l.MessagesUnread,
	}
}

// ListLabels returns all labels of the mailbox, system and user alike.
func (c *Client) ListLabels(ctx context.Context) ([]*LabelInfo, error) {
	res, err := c.svc.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	labels := make([]*LabelInfo, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, labelInfoFrom(l))
	}
	return labels, nil
}

// GetLabel returns one label by ID, including its message counts.
func (c *Client) GetLabel(ctx context.Context, labelID string) (*LabelInfo, error) {
	l, err := c.svc.Labels.Get("me", labelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get label %s: %w", labelID, err)
	}
	return labelInfoFrom(l), nil
}

// CreateLabel creates a new user label with the given name.
func (c *Client) CreateLabel(ctx context.Context, name string) (*LabelInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("label name is required")
	}
	l, err := c.svc.Labels.Create("me", &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create label %s: %w", name, err)
	}
	return labelInfoFrom(l), nil
}

// UpdateLabel renames an existing user label.
func (c *Client) UpdateLabel(ctx context.Context, labelID, name string) (*LabelInfo, error) {
	if labelID == "" {
		return nil, fmt.Errorf("labelID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("label name is required")
	}
	l, err := c.svc.Labels.Patch("me", labelID, &gmail.Label{Name: name}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update label %s: %w", labelID, err)
	}
	return labelInfoFrom(l), nil
}

// DeleteLabel removes a user label. Messages keep their other labels.
func (c *Client) DeleteLabel(ctx context.Context, labelID string) error {
	if labelID == "" {
		return fmt.Errorf("labelID is required")
	}
	if err := c.svc.Labels.Delete("me", labelID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete label %s: %w", labelID, err)
	}
	return nil
}

// ModifyMessageLabels adds and removes labels on one message in a single call.
func (c *Client) ModifyMessageLabels(ctx context.Context, messageID string, add, remove []string) error {
	if messageID == "" {
		return fmt.Errorf("messageID is required")
	}
	if len(add) == 0 && len(remove) == 0 {
		return fmt.Errorf("at least one label to add or remove is required")
	}
	_, err := c.svc.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    add,
		RemoveLabelIds: remove,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to modify labels on message %s: %w", messageID, err)
	}
	return nil
}

// MarkAsRead clears the UNREAD label from a message.
func (c *Client) MarkAsRead(ctx context.Context, messageID string) error {
	return c.ModifyMessageLabels(ctx, messageID, nil, []string{"UNREAD"})
}

// ArchiveMessage removes a message from the inbox without deleting it.
func (c *Client) ArchiveMessage(ctx context.Context, messageID string) error {
	return c.ModifyMessageLabels(ctx, messageID, nil, []string{"INBOX"})
}
