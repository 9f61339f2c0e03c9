package mailer

import (
	"context"
	"net"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Sender delivers a plain-text message through the mail relay.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

// SMTPSender sends from and to the configured account, the way the contact
// form forwards messages to the shop owner.
type SMTPSender struct {
	Addr     string
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(ctx context.Context, subject, body string) error {
	e := email.NewEmail()
	e.From = s.From
	e.To = []string{s.From}
	e.Subject = subject
	e.Text = []byte(body)

	host, _, err := net.SplitHostPort(s.Addr)
	if err != nil {
		host = s.Addr
	}
	return e.Send(s.Addr, smtp.PlainAuth("", s.Username, s.Password, host))
}
