package services

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles transactional email via AWS SES (SESv2 API)
type EmailService struct {
	sesClient *sesv2.Client
	fromEmail string
	enabled   bool
}

// NewEmailService creates a new email service instance using AWS SDK (role-based)
func NewEmailService(cfg aws.Config) *EmailService {
	from := os.Getenv("SES_FROM_EMAIL")
	return &EmailService{
		sesClient: sesv2.NewFromConfig(cfg),
		fromEmail: from,
		enabled:   from != "",
	}
}

// IsEnabled checks if email sending is configured
func (e *EmailService) IsEnabled() bool {
	return e.enabled
}

// SendPasswordReset sends the password reset link to a user
func (e *EmailService) SendPasswordReset(ctx context.Context, toEmail, name, resetLink string) error {
	if !e.enabled {
		log.Printf("✉️ Email disabled, reset link for %s: %s", toEmail, resetLink)
		return nil
	}

	subject := "ScrapSeva - Reset your password"
	body := fmt.Sprintf(`
<html>
  <body style="font-family: sans-serif;">
    <h2>Password reset</h2>
    <p>Hi %s,</p>
    <p>We received a request to reset your ScrapSeva password. The link below
    is valid for 1 hour:</p>
    <p><a href="%s">Reset password</a></p>
    <p>If you did not request this, you can ignore this email.</p>
  </body>
</html>`, name, resetLink)

	return e.sendEmail(ctx, toEmail, subject, body)
}

// SendContactAck acknowledges a contact form submission
func (e *EmailService) SendContactAck(ctx context.Context, toEmail, name string) error {
	if !e.enabled {
		return nil
	}

	subject := "ScrapSeva - We received your message"
	body := fmt.Sprintf(`
<html>
  <body style="font-family: sans-serif;">
    <p>Hi %s,</p>
    <p>Thanks for reaching out. Our team will get back to you within two
    working days.</p>
  </body>
</html>`, name)

	return e.sendEmail(ctx, toEmail, subject, body)
}

// sendEmail sends an email via AWS SESv2 using the instance role
func (e *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(e.fromEmail),
		Destination:      &sestypes.Destination{ToAddresses: []string{toEmail}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body:    &sestypes.Body{Html: &sestypes.Content{Data: aws.String(htmlBody)}},
			},
		},
	}
	if _, err := e.sesClient.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
