package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

const (
	_sendAttempts = 3
	_retryBackoff = time.Second
)

var _ NotificationClient = (*MailerSendClient)(nil)

// MailerSendClient sends plain text email through the MailerSend API.
type MailerSendClient struct {
	client    *mailersend.Mailersend
	fromEmail string
	fromName  string
	backoff   time.Duration
}

type MailerSendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

func NewMailerSendClient(config MailerSendConfig) *MailerSendClient {
	return &MailerSendClient{
		client:    mailersend.NewMailersend(config.APIKey),
		fromEmail: config.FromEmail,
		fromName:  config.FromName,
		backoff:   _retryBackoff,
	}
}

func (c *MailerSendClient) SendEmail(ctx context.Context, request EmailRequest) error {
	if err := request.validate(); err != nil {
		return err
	}

	message := c.client.Email.NewMessage()
	message.SetFrom(mailersend.From{
		Email: c.fromEmail,
		Name:  c.fromName,
	})
	message.SetRecipients([]mailersend.Recipient{{Email: request.To}})
	message.SetSubject(request.Subject)
	message.SetText(request.Body)

	return c.sendWithRetry(ctx, message)
}

// sendWithRetry backs off linearly between attempts and gives up early
// when ctx is done.
func (c *MailerSendClient) sendWithRetry(ctx context.Context, message *mailersend.Message) error {
	var lastErr error
	for attempt := 1; attempt <= _sendAttempts; attempt++ {
		_, err := c.client.Email.Send(ctx, message)
		if err == nil {
			return nil
		}

		lastErr = &NotificationError{
			Message: fmt.Sprintf("MailerSend API error (attempt %d/%d)", attempt, _sendAttempts),
			Err:     err,
		}
		if attempt == _sendAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return &NotificationError{Message: "sending cancelled", Err: ctx.Err()}
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}
	return lastErr
}
