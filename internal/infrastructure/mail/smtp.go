package mail

import (
	"context"
	"fmt"

	"health-management/config"

	"github.com/go-gomail/gomail"
	"github.com/sirupsen/logrus"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail through a single SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns an SMTP mailer, or a LogMailer when no SMTP host is
// configured.
func NewMailer(cfg config.SMTPConfig, log *logrus.Logger) Mailer {
	if cfg.Host == "" {
		log.Warn("SMTP_HOST not set, outgoing mail will only be logged")
		return &LogMailer{log: log}
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	log *logrus.Logger
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("Email not sent, SMTP is not configured")
	return nil
}
