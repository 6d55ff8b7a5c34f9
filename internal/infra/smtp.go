package infra

import (
	"fmt"
	"net/smtp"

	"inventorybi/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending plain-text notifications.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
	to       []string
}

// NewMailer returns nil when SMTP_HOST or ALERT_EMAIL_TO is unset; callers
// treat a nil mailer as "mail disabled".
func NewMailer(cfg *config.Config) *Mailer {
	to := cfg.AlertRecipients()
	if cfg.SMTPHost == "" || len(to) == 0 {
		return nil
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		to:       to,
	}
}

// Send mails subject/body to every configured recipient.
func (m *Mailer) Send(subject, body string) error {
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	if err := m.compose(subject, body).Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

func (m *Mailer) compose(subject, body string) *email.Email {
	e := email.NewEmail()
	e.From = m.user
	if e.From == "" {
		e.From = "noreply@" + m.host
	}
	e.To = m.to
	e.Subject = subject
	e.Text = []byte(body)
	return e
}
