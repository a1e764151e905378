package gmail

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mailfold/mailfold/internal/query"
	gmail "google.golang.org/api/gmail/v1"
)

func TestCategoryLabelID(t *testing.T) {
	tests := []struct {
		category query.Category
		want     string
	}{
		{query.CategoryPrimary, "CATEGORY_PERSONAL"},
		{query.CategorySocial, "CATEGORY_SOCIAL"},
		{query.CategoryPromotions, "CATEGORY_PROMOTIONS"},
		{query.CategoryUpdates, "CATEGORY_UPDATES"},
		{query.CategoryForums, "CATEGORY_FORUMS"},
		{query.CategoryNone, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryLabelID(tt.category), "category %q", tt.category)
	}
}

func TestHeaderValue(t *testing.T) {
	msg := &gmail.Message{
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "Alice <alice@example.com>"},
				{Name: "Subject", Value: "Hello"},
			},
		},
	}

	assert.Equal(t, "Alice <alice@example.com>", HeaderValue(msg, "From"))
	assert.Equal(t, "Hello", HeaderValue(msg, "Subject"))
	assert.Empty(t, HeaderValue(msg, "Cc"))
	assert.Empty(t, HeaderValue(nil, "From"))
	assert.Empty(t, HeaderValue(&gmail.Message{}, "From"))
}

func TestSummaryFromMessage(t *testing.T) {
	msg := &gmail.Message{
		Id:       "m1",
		ThreadId: "t1",
		Snippet:  "Quarterly figures attached",
		LabelIds: []string{"INBOX", "UNREAD", "CATEGORY_PERSONAL"},
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "bob@example.com"},
				{Name: "To", Value: "alice@example.com"},
				{Name: "Subject", Value: "Q3 numbers"},
				{Name: "Date", Value: "Mon, 17 Mar 2025 09:00:00 +0000"},
			},
		},
	}

	s := summaryFromMessage(msg)
	assert.Equal(t, "m1", s.ID)
	assert.Equal(t, "t1", s.ThreadID)
	assert.Equal(t, "bob@example.com", s.From)
	assert.Equal(t, "Q3 numbers", s.Subject)
	assert.Equal(t, "Quarterly figures attached", s.Snippet)
	assert.True(t, s.Unread)

	msg.LabelIds = []string{"INBOX"}
	assert.False(t, summaryFromMessage(msg).Unread)
}
