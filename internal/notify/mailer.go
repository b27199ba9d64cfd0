package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"regexp"
	"strings"

	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers mail over a plain STARTTLS SMTP submission port.
type SMTPSender struct {
	config *SMTPConfig
	logger *logger.Logger
}

func NewSMTPSender(config *SMTPConfig, logger *logger.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		logger: logger.Component("notify/smtp"),
	}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	body := buildMIME(s.config.From, msg)
	if err := smtp.SendMail(addr, auth, s.config.From, []string{msg.To}, body); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	s.logger.Debug("email delivered", "to", msg.To, "subject", msg.Subject)
	return nil
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: FeedbackHub <" + from + ">\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

// StripHTML produces the plain-text fallback used in logs.
func StripHTML(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}

// NopSender is used when outgoing email is disabled; messages are logged
// and discarded.
type NopSender struct {
	logger *logger.Logger
}

func NewNopSender(logger *logger.Logger) *NopSender {
	return &NopSender{logger: logger.Component("notify/nop")}
}

func (s *NopSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("email sending disabled, dropping message",
		"to", msg.To,
		"subject", msg.Subject,
		"body", StripHTML(msg.HTML),
	)
	return nil
}
