package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends notification email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// SMTPMailer delivers mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTP(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send builds an RFC 5322 message and hands it to the relay. Bodies that
// look like markup are sent as HTML, everything else as plain text.
func (m *SMTPMailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}

	contentType := "text/plain; charset=\"UTF-8\""
	if strings.Contains(body, "<html") || strings.Contains(body, "<p>") || strings.Contains(body, "<br") {
		contentType = "text/html; charset=\"UTF-8\""
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: %s\r\n", contentType)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.from, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", strings.Join(to, ","), err)
	}
	return nil
}
