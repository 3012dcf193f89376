package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends best-effort transactional mail. Callers log and swallow
// failures; delivery is never load-bearing.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer implements Mailer over a gomail dialer.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given SMTP server.
func NewSMTPMailer(host string, port int, from, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, from, password),
		from:   from,
	}
}

// Send delivers a plain-text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
