package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"astro-report-service/internal/config"
)

// EmailLookup resolves a user ID to an email address
type EmailLookup interface {
	UserEmail(ctx context.Context, userID string) (string, error)
}

// EmailNotifier delivers notifications by email via SendGrid
type EmailNotifier struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	lookup    EmailLookup
	log       *logrus.Logger
}

// NewEmailNotifier creates a SendGrid-backed notifier
func NewEmailNotifier(cfg config.EmailConfig, lookup EmailLookup, log *logrus.Logger) *EmailNotifier {
	return &EmailNotifier{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		lookup:    lookup,
		log:       log,
	}
}

// Send delivers the notification to the user's email address
func (n *EmailNotifier) Send(ctx context.Context, userID string, notification Notification) error {
	toEmail, err := n.lookup.UserEmail(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve email for user %s: %w", userID, err)
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail("", toEmail)
	htmlContent := n.buildNotificationHTML(notification)

	message := mail.NewSingleEmail(from, notification.Title, to, notification.Body, htmlContent)

	response, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}

	n.log.WithFields(logrus.Fields{
		"userId": userID,
		"title":  notification.Title,
	}).Info("notification email sent")
	return nil
}

func (n *EmailNotifier) buildNotificationHTML(notification Notification) string {
	var buf bytes.Buffer

	buf.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4a2c6f; color: white; padding: 16px; border-radius: 4px; }
        .body { padding: 16px 0; line-height: 1.5; }
        .footer { font-size: 12px; color: #999; border-top: 1px solid #eee; padding-top: 12px; }
    </style>
</head>
<body>
    <div class="container">
`)
	buf.WriteString(fmt.Sprintf("        <div class=\"header\"><h2>%s</h2></div>\n", html.EscapeString(notification.Title)))
	buf.WriteString(fmt.Sprintf("        <div class=\"body\"><p>%s</p></div>\n", html.EscapeString(notification.Body)))
	buf.WriteString(`        <div class="footer">You received this email because you requested a report.</div>
    </div>
</body>
</html>`)

	return buf.String()
}
