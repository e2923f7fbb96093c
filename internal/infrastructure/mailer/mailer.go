package mailer

import (
	"context"
	"fmt"
	"strings"

	"greenleaf/internal/config"
	"greenleaf/internal/logger"

	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the mailer selected by cfg.Driver.
func New(ctx context.Context, cfg config.MailConfig, log *zap.Logger) (Mailer, error) {
	log = logger.Named(log, "mailer")
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "log":
		return LogMailer{Logger: log}, nil
	case "gmail":
		return NewGmail(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}

// LogMailer writes outgoing mail to the log instead of sending it.
type LogMailer struct {
	Logger *zap.Logger
}

func (m LogMailer) Send(_ context.Context, msg Message) error {
	logger.OrNop(m.Logger).Info("mail not sent, log driver active",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
