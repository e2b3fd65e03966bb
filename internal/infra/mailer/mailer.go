// Package mailer sends storefront notifications over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"watch-storefront/config"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp credentials are not configured")

type Message struct {
	Subject string
	HTML    string
	ReplyTo string
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// New builds a mailer. Port 465 uses implicit TLS. Without MAIL_TO the
// messages go to the SMTP account itself.
func New(cfg config.SMTPConfig) *Mailer {
	to := cfg.MailTo
	if to == "" {
		to = cfg.User
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.User,
		to:     to,
	}
}

func (m *Mailer) Configured() bool {
	return m != nil && m.dialer.Username != "" && m.dialer.Password != ""
}

func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(m.build(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (m *Mailer) build(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", m.to)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return gm
}
