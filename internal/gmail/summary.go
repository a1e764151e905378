package gmail

import (
	gmail "google.golang.org/api/gmail/v1"
)

// EmailSummary is the envelope view of a message: enough to render a
// search-result line without fetching the body.
type EmailSummary struct {
	ID       string
	ThreadID string
	From     string
	To       string
	Subject  string
	Date     string
	Snippet  string
	LabelIDs []string
	Unread   bool
}

// HeaderValue returns the value of the named header, or "" if absent. The
// lookup is case-insensitive on the header name's canonical forms Gmail
// emits.
func HeaderValue(m *gmail.Message, header string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if h.Name == header {
			return h.Value
		}
	}
	return ""
}

func summaryFromMessage(msg *gmail.Message) *EmailSummary {
	s := &EmailSummary{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		From:     HeaderValue(msg, "From"),
		To:       HeaderValue(msg, "To"),
		Subject:  HeaderValue(msg, "Subject"),
		Date:     HeaderValue(msg, "Date"),
		Snippet:  msg.Snippet,
		LabelIDs: msg.LabelIds,
	}
	for _, l := range msg.LabelIds {
		if l == "UNREAD" {
			s.Unread = true
			break
		}
	}
	return s
}
