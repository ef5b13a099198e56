package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"

	"feedback-desk/internal/logger"

	"github.com/resend/resend-go/v2"
)

// Email sends each message to a fixed staff address through Resend.
type Email struct {
	client *resend.Client
	from   string
	to     []string
}

func NewEmail(apiKey, from, to string) *Email {
	return &Email{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     []string{to},
	}
}

func (e *Email) Publish(ctx context.Context, message string) error {
	params := &resend.SendEmailRequest{
		From:    e.from,
		To:      e.to,
		Subject: subjectLine(message),
		Html:    renderHTML(message),
		Text:    message,
	}

	sent, err := e.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.Info().Str("email_id", sent.Id).Strs("to", e.to).Msg("notification email sent")
	return nil
}

func subjectLine(message string) string {
	first, _, _ := strings.Cut(message, "\n")
	if first == "" {
		return "Feedback notification"
	}
	return first
}

func renderHTML(message string) string {
	lines := strings.Split(html.EscapeString(message), "\n")
	return `<div style="font-family: sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">` +
		strings.Join(lines, "<br>") +
		`</div>`
}
