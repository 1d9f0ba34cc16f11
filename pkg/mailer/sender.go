package mailer

import (
	"context"
	"log/slog"
)

// Sender delivers a fully prepared Email.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) error

// Send calls f(ctx, email).
func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}

// LogSender logs emails instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender returns a Sender that writes every message to logger.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

// Send implements Sender.
func (s *LogSender) Send(ctx context.Context, email *Email) error {
	s.logger.InfoContext(ctx, "email not delivered, no provider configured",
		slog.Any("to", email.To),
		slog.String("subject", email.Subject),
		slog.String("reply_to", email.ReplyTo),
		slog.Int("html_bytes", len(email.HTML)),
		slog.String("text", email.Text),
	)
	return nil
}
