package mail

import (
	"dampit-rental/pkg/utils"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single email. The SMTP transport sits behind this
// interface so the notification dispatcher can be tested without a
// mail server.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a Sender on top of gomail.
func NewSMTPSender(config utils.EmailConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
	}
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	return s.dialer.DialAndSend(m)
}
