package gmail_tools

import (
	"context"
	"testing"
)

func TestHandleSendEmail_RejectsMissingFields(t *testing.T) {
	sc := newTestServerContext(t)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing to",
			args: map[string]interface{}{
				"subject": "hello",
				"body":    "hi there",
			},
		},
		{
			name: "missing subject",
			args: map[string]interface{}{
				"to":   "alice@example.com",
				"body": "hi there",
			},
		},
		{
			name: "missing body",
			args: map[string]interface{}{
				"to":      "alice@example.com",
				"subject": "hello",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleSendEmail(context.Background(), toolRequest("gmail_send_email", tt.args), sc)
			if err != nil {
				t.Fatalf("handler returned Go error: %v", err)
			}
			if result == nil || !result.IsError {
				t.Error("expected an error result")
			}
		})
	}
}

func TestHandleReplyEmail_RequiresThreadID(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleReplyEmail(context.Background(), toolRequest("gmail_reply_email", map[string]interface{}{
		"messageId": "msg123",
		"body":      "thanks!",
	}), sc)
	if err != nil {
		t.Fatalf("handler returned Go error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected an error result")
	}
}

func TestHandleReadEmail_RequiresMessageID(t *testing.T) {
	sc := newTestServerContext(t)

	result, err := handleReadEmail(context.Background(), toolRequest("gmail_read_email", map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("handler returned Go error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Error("expected an error result")
	}
}
