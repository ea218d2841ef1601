package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// EmailConfig is the SMTP channel configuration. All fields are required;
// construct the channel only when Configured() on the source config is true.
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

// Email sends plain-text notifications over SMTP with STARTTLS.
type Email struct {
	cfg    EmailConfig
	logger *slog.Logger
}

// NewEmail creates the email channel.
func NewEmail(cfg EmailConfig, logger *slog.Logger) *Email {
	return &Email{cfg: cfg, logger: logger.With("channel", "email")}
}

// Name returns the channel identifier.
func (e *Email) Name() string { return "email" }

// Send delivers one message to the configured recipient.
func (e *Email) Send(ctx context.Context, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(e.cfg.User); err != nil {
		return fmt.Errorf("email from address: %w", err)
	}
	if err := msg.To(e.cfg.To); err != nil {
		return fmt.Errorf("email to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(e.cfg.Host,
		mail.WithPort(e.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(e.cfg.User),
		mail.WithPassword(e.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(sendTimeout),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		var sendErr *mail.SendError
		if errors.As(err, &sendErr) {
			// Most common operator mistake is a regular password where an
			// app password is required.
			e.logger.Error("smtp delivery failed; check that the password is an app password", "error", err)
		}
		return fmt.Errorf("send email: %w", err)
	}

	e.logger.Info("email sent", "to", e.cfg.To)
	return nil
}
