// Package notifx sends rendered campaign emails. The pipeline uses it for
// test sends: a marketer previews the generated email in a real inbox before
// the campaign ships.
package notifx

import (
	"context"
	"strings"

	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
)

// EmailSender sends a single email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error
}

// Client is the entry point for sending generated emails.
type Client struct {
	provider EmailSender
	from     string
}

// NewClient creates a client around a provider with a default from address.
func NewClient(provider EmailSender, from string) *Client {
	return &Client{provider: provider, from: from}
}

// SendEmail sends an email through the configured provider.
func (c *Client) SendEmail(ctx context.Context, msg EmailMessage, opts ...Option) error {
	if c.provider == nil {
		return notifxErrors.New(ErrNoProvider)
	}
	if len(msg.To) == 0 {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipients")
	}
	if msg.Subject == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty subject")
	}
	if msg.From == "" {
		msg.From = c.from
	}
	return c.provider.SendEmail(ctx, msg, opts...)
}

// SendPreview sends the rendered HTML as a test email. The subject is marked
// as a preview and the unsubscribe token is neutralized, test recipients are
// not on a real list.
func (c *Client) SendPreview(ctx context.Context, subject, html string, to []string, opts ...Option) error {
	html = strings.ReplaceAll(html, spec.UnsubscribeToken, "#")
	msg := EmailMessage{
		To:       to,
		Subject:  "[Preview] " + subject,
		HTMLBody: html,
	}
	return c.SendEmail(ctx, msg, opts...)
}
