// utils/email.go
package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"kesar-storefront/models"

	"github.com/keighl/postmark"
)

// ErrDeliveryFailed is the rejection produced by a failed simulated send.
var ErrDeliveryFailed = errors.New("message could not be delivered")

// Mailer delivers a contact form message.
type Mailer interface {
	SendContactEmail(ctx context.Context, msg models.ContactMessage) error
}

// PostmarkMailer sends contact emails through Postmark
type PostmarkMailer struct {
	client *postmark.Client
}

// NewPostmarkMailer initializes and returns a new PostmarkMailer instance
func NewPostmarkMailer() *PostmarkMailer {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		panic("POSTMARK_API_TOKEN is not set in environment variables")
	}
	client := postmark.NewClient(apiToken, "")
	return &PostmarkMailer{
		client: client,
	}
}

// SendContactEmail forwards a contact form message to the shop inbox.
func (m *PostmarkMailer) SendContactEmail(ctx context.Context, msg models.ContactMessage) error {
	subject := msg.Subject
	if subject == "" {
		subject = "New contact form message"
	}
	htmlContent := fmt.Sprintf(
		"<strong>From:</strong> %s (%s)<br><br>%s",
		msg.Name, msg.Email, msg.Message,
	)
	_, err := m.client.SendEmail(postmark.Email{
		From:     os.Getenv("EMAIL_SENDER"),
		To:       os.Getenv("CONTACT_RECIPIENT"),
		ReplyTo:  msg.Email,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: fmt.Sprintf("From: %s (%s)\n\n%s", msg.Name, msg.Email, msg.Message),
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SimulatedMailer stands in for a real provider in development: it waits for
// a configured latency and fails a configured fraction of sends.
type SimulatedMailer struct {
	Latency     time.Duration
	FailureRate float64
}

func (m *SimulatedMailer) SendContactEmail(ctx context.Context, msg models.ContactMessage) error {
	select {
	case <-time.After(m.Latency):
	case <-ctx.Done():
		return ctx.Err()
	}
	if rand.Float64() < m.FailureRate {
		return ErrDeliveryFailed
	}
	log.Printf("mail: contact message from %s <%s>", msg.Name, msg.Email)
	return nil
}
