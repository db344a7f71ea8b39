package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer is the best-effort email sender consumed by the notification
// dispatcher. Failures are the caller's to log and swallow.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPMailer(host, port, from, password string) Mailer {
	return &smtpMailer{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	if m.from == "" || m.password == "" {
		return fmt.Errorf("mailer is not configured")
	}

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, message)
}
