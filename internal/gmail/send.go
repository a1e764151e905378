package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	gmail "google.golang.org/api/gmail/v1"
)

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	Body    string
	IsHTML  bool
}

// encodeRFC2047 encodes a header value for non-ASCII characters per RFC 2047.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

// GetSignature fetches the signature of the primary send-as address and
// caches it. A fetch failure yields an empty signature, not an error, so
// sending still works without one.
func (c *Client) GetSignature(ctx context.Context) (string, error) {
	if c.signature != "" {
		return c.signature, nil
	}

	sendAs, err := c.svc.Settings.SendAs.Get("me", "me").Context(ctx).Do()
	if err != nil {
		return "", nil
	}

	if sendAs.Signature != "" {
		c.signature = sendAs.Signature
	}
	return c.signature, nil
}

func (c *Client) appendSignature(ctx context.Context, body string, isHTML bool) string {
	signature, err := c.GetSignature(ctx)
	if err != nil || signature == "" {
		return body
	}
	if isHTML {
		return body + "<br><br>-- <br>" + signature
	}
	return body + "\n\n-- \n" + signature
}

// mimeHeaders writes the common RFC 2822 header block for an outgoing
// message. Threading headers are the caller's business.
func mimeHeaders(b *strings.Builder, to, cc, bcc []string, subject string, isHTML bool) {
	if len(to) > 0 {
		b.WriteString("To: ")
		b.WriteString(strings.Join(to, ", "))
		b.WriteString("\r\n")
	}
	if len(cc) > 0 {
		b.WriteString("Cc: ")
		b.WriteString(strings.Join(cc, ", "))
		b.WriteString("\r\n")
	}
	if len(bcc) > 0 {
		b.WriteString("Bcc: ")
		b.WriteString(strings.Join(bcc, ", "))
		b.WriteString("\r\n")
	}
	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(subject))
	b.WriteString("\r\n")
	if isHTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("MIME-Version: 1.0\r\n")
}

// SendEmail sends an email through the Gmail API and returns the new
// message ID.
func (c *Client) SendEmail(ctx context.Context, msg *EmailMessage) (string, error) {
	if len(msg.To) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}
	if msg.Subject == "" {
		return "", fmt.Errorf("subject is required")
	}
	if msg.Body == "" {
		return "", fmt.Errorf("body is required")
	}

	var b strings.Builder
	mimeHeaders(&b, msg.To, msg.Cc, msg.Bcc, msg.Subject, msg.IsHTML)
	b.WriteString("\r\n")
	b.WriteString(c.appendSignature(ctx, msg.Body, msg.IsHTML))

	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(b.String())),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return sent.Id, nil
}

// ReplyToEmail sends a reply within an existing thread, preserving the
// In-Reply-To and References chain so mail clients keep the conversation
// together.
func (c *Client) ReplyToEmail(ctx context.Context, messageID, threadID, body string, cc, bcc []string, isHTML bool) (string, error) {
	if messageID == "" {
		return "", fmt.Errorf("messageID is required")
	}
	if threadID == "" {
		return "", fmt.Errorf("threadID is required")
	}
	if body == "" {
		return "", fmt.Errorf("body is required")
	}

	original, err := c.GetMessage(ctx, messageID)
	if err != nil {
		return "", fmt.Errorf("failed to get original message: %w", err)
	}

	originalFrom := HeaderValue(original, "From")
	originalSubject := HeaderValue(original, "Subject")
	originalMessageID := HeaderValue(original, "Message-ID")
	originalReferences := HeaderValue(original, "References")

	if originalFrom == "" {
		return "", fmt.Errorf("original message has no From header")
	}

	replySubject := originalSubject
	if !strings.HasPrefix(strings.ToLower(replySubject), "re:") {
		replySubject = "Re: " + replySubject
	}

	references := originalMessageID
	if originalReferences != "" {
		references = originalReferences + " " + originalMessageID
	}

	var b strings.Builder
	mimeHeaders(&b, []string{originalFrom}, cc, bcc, replySubject, isHTML)
	if originalMessageID != "" {
		b.WriteString("In-Reply-To: ")
		b.WriteString(originalMessageID)
		b.WriteString("\r\n")
	}
	if references != "" {
		b.WriteString("References: ")
		b.WriteString(references)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(c.appendSignature(ctx, body, isHTML))

	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw:      base64.URLEncoding.EncodeToString([]byte(b.String())),
		ThreadId: threadID,
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to send reply: %w", err)
	}
	return sent.Id, nil
}

// ForwardEmail forwards an existing message to new recipients, quoting the
// original headers and body below an optional introduction.
func (c *Client) ForwardEmail(ctx context.Context, messageID string, to, cc, bcc []string, additionalBody string, isHTML bool) (string, error) {
	if messageID == "" {
		return "", fmt.Errorf("messageID is required")
	}
	if len(to) == 0 {
		return "", fmt.Errorf("at least one recipient is required")
	}

	original, err := c.GetMessage(ctx, messageID)
	if err != nil {
		return "", fmt.Errorf("failed to get original message: %w", err)
	}

	originalFrom := HeaderValue(original, "From")
	originalTo := HeaderValue(original, "To")
	originalSubject := HeaderValue(original, "Subject")
	originalDate := HeaderValue(original, "Date")

	fwdSubject := originalSubject
	lower := strings.ToLower(fwdSubject)
	if !strings.HasPrefix(lower, "fwd:") && !strings.HasPrefix(lower, "fw:") {
		fwdSubject = "Fwd: " + fwdSubject
	}

	var originalBody string
	if isHTML {
		originalBody, _ = c.GetMessageBody(ctx, messageID, "html")
		if originalBody == "" {
			originalBody, _ = c.GetMessageBody(ctx, messageID, "text")
		}
	} else {
		originalBody, _ = c.GetMessageBody(ctx, messageID, "text")
	}

	intro := c.appendSignature(ctx, additionalBody, isHTML)

	var body strings.Builder
	if isHTML {
		body.WriteString(intro)
		body.WriteString("<br><br>---------- Forwarded message ---------<br>")
		fmt.Fprintf(&body, "From: %s<br>", originalFrom)
		fmt.Fprintf(&body, "Date: %s<br>", originalDate)
		fmt.Fprintf(&body, "Subject: %s<br>", originalSubject)
		fmt.Fprintf(&body, "To: %s<br><br>", originalTo)
		body.WriteString(originalBody)
	} else {
		body.WriteString(intro)
		body.WriteString("\n\n---------- Forwarded message ---------\n")
		fmt.Fprintf(&body, "From: %s\n", originalFrom)
		fmt.Fprintf(&body, "Date: %s\n", originalDate)
		fmt.Fprintf(&body, "Subject: %s\n", originalSubject)
		fmt.Fprintf(&body, "To: %s\n\n", originalTo)
		body.WriteString(originalBody)
	}

	var b strings.Builder
	mimeHeaders(&b, to, cc, bcc, fwdSubject, isHTML)
	b.WriteString("\r\n")
	b.WriteString(body.String())

	sent, err := c.svc.Messages.Send("me", &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(b.String())),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to forward email: %w", err)
	}
	return sent.Id, nil
}
