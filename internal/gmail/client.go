package gmail

import (
	"context"
	"fmt"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"

	"github.com/mailfold/mailfold/internal/google"
	"github.com/mailfold/mailfold/internal/query"
)

// Client wraps the Gmail Users service and People service for one account.
type Client struct {
	svc       *gmail.UsersService
	peopleSvc *people.Service
	account   string
	signature string // cached after first fetch
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account.
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account.
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccount creates a Gmail client authenticated as the given
// account. The OAuth token must already exist; acquiring one is the job of
// the auth tools.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	httpClient, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	peopleSvc, err := people.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return &Client{
		svc:       svc.Users,
		peopleSvc: peopleSvc,
		account:   account,
	}, nil
}

// NewClient creates a Gmail client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// categoryLabels maps inbox categories to Gmail's system label IDs. The
// mapping is the only place a category becomes provider-visible; it travels
// as a label filter on the list call, never as query text.
var categoryLabels = map[query.Category]string{
	query.CategoryPrimary:    "CATEGORY_PERSONAL",
	query.CategorySocial:     "CATEGORY_SOCIAL",
	query.CategoryPromotions: "CATEGORY_PROMOTIONS",
	query.CategoryUpdates:    "CATEGORY_UPDATES",
	query.CategoryForums:     "CATEGORY_FORUMS",
}

// CategoryLabelID resolves an inbox category to its Gmail system label ID.
// The empty category resolves to "".
func CategoryLabelID(cat query.Category) string {
	return categoryLabels[cat]
}

// ListMessages fetches one page of message references matching req. It
// implements Lister.
func (c *Client) ListMessages(ctx context.Context, req ListRequest) (*Page, error) {
	call := c.svc.Messages.List("me").Context(ctx)
	if req.Query != "" {
		call = call.Q(req.Query)
	}
	if label := categoryLabels[req.Category]; label != "" {
		call = call.LabelIds(label)
	}
	if req.PageSize > 0 {
		call = call.MaxResults(req.PageSize)
	}
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	page := &Page{
		NextPageToken: res.NextPageToken,
		Estimate:      int64(res.ResultSizeEstimate),
	}
	for _, m := range res.Messages {
		page.Messages = append(page.Messages, MessageRef{ID: m.Id, ThreadID: m.ThreadId})
	}
	return page, nil
}

// GetMessage retrieves a full Gmail message.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*gmail.Message, error) {
	msg, err := c.svc.Messages.Get("me", messageID).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return msg, nil
}

// GetMessageSummary fetches just the envelope of a message: headers and
// snippet, no body payload.
func (c *Client) GetMessageSummary(ctx context.Context, messageID string) (*EmailSummary, error) {
	msg, err := c.svc.Messages.Get("me", messageID).
		Format("metadata").
		MetadataHeaders("From", "To", "Subject", "Date").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return summaryFromMessage(msg), nil
}
