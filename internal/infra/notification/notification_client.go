package notification

import (
	"context"
	"errors"
	"strings"
)

//go:generate mockgen -source=notification_client.go -destination=../../../test/unit/doubles/infra/notification/notification_client_mock.go -package=notification -mock_names=NotificationClient=MockNotificationClient

var ErrMissingRecipient = errors.New("email has no recipient")

// NotificationClient delivers messages to people outside the service.
type NotificationClient interface {
	SendEmail(ctx context.Context, request EmailRequest) error
}

// EmailRequest is a plain text email to a single address.
type EmailRequest struct {
	To      string
	Subject string
	Body    string
}

func (r EmailRequest) validate() error {
	if strings.TrimSpace(r.To) == "" {
		return ErrMissingRecipient
	}
	return nil
}

// NotificationError wraps a delivery failure reported by the provider.
type NotificationError struct {
	Message string
	Err     error
}

func (e *NotificationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error { return e.Err }
