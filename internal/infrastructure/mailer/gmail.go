package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"os"
	"strings"

	"greenleaf/internal/config"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

type gmailSender interface {
	Send(ctx context.Context, raw string) error
}

type gmailAPI struct {
	service *gmail.Service
}

func (g gmailAPI) Send(ctx context.Context, raw string) error {
	_, err := g.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	return err
}

// Gmail sends mail through the Gmail API as the account that owns the stored token.
type Gmail struct {
	sender gmailSender
	from   string
	logger *zap.Logger
}

func NewGmail(ctx context.Context, cfg config.MailConfig, log *zap.Logger) (*Gmail, error) {
	if strings.TrimSpace(cfg.CredentialsFile) == "" || strings.TrimSpace(cfg.TokenFile) == "" {
		return nil, errors.New("gmail driver requires MAIL_CREDENTIALS_FILE and MAIL_TOKEN_FILE")
	}

	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read gmail credentials: %w", err)
	}
	oc, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse gmail credentials: %w", err)
	}
	tok, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("read gmail token: %w", err)
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(oc.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("create gmail client: %w", err)
	}

	return &Gmail{sender: gmailAPI{service: srv}, from: cfg.From, logger: log}, nil
}

func (g *Gmail) Send(ctx context.Context, msg Message) error {
	raw, err := buildRaw(g.from, msg)
	if err != nil {
		return err
	}
	if err := g.sender.Send(ctx, raw); err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	if g.logger != nil {
		g.logger.Info("mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	}
	return nil
}

// buildRaw renders msg as a base64url-encoded RFC 5322 message, as the Gmail API expects.
func buildRaw(from string, msg Message) (string, error) {
	fromAddr, err := mail.ParseAddress(from)
	if err != nil {
		return "", fmt.Errorf("invalid sender %q: %w", from, err)
	}
	toAddr, err := mail.ParseAddress(msg.To)
	if err != nil {
		return "", fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}

	var b strings.Builder
	b.WriteString("From: " + fromAddr.String() + "\r\n")
	b.WriteString("To: " + toAddr.String() + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}
