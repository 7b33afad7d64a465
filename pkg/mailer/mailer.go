package mailer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers rendered HTML messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// dialer is satisfied by *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpMailer struct {
	dialer dialer
	from   string
	name   string
	log    *zap.Logger
}

func NewSMTPMailer(cfg Config, log *zap.Logger) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		name:   cfg.FromName,
		log:    log.With(zap.String("component", "mailer")),
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, m.name)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(m.from)))
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		m.log.Error("Failed to send mail", zap.Error(err), zap.String("to", msg.To))
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	m.log.Info("Mail sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

type logMailer struct {
	log *zap.Logger
}

// NewLogMailer only logs messages. Used when SMTP is not configured.
func NewLogMailer(log *zap.Logger) Mailer {
	return &logMailer{log: log.With(zap.String("component", "mailer"))}
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("Mail not sent, SMTP disabled",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}

func domainOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == '@' {
			return addr[i+1:]
		}
	}
	return "localhost"
}
