package mail

import (
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// Sender delivers one message with one PDF attachment over SMTP with
// STARTTLS. Single attempt, no retry; transport failures propagate.
type Sender struct {
	Host        string
	Port        int
	SecretsPath string
}

func NewSender(host string, port int, secretsPath string) *Sender {
	return &Sender{Host: host, Port: port, SecretsPath: secretsPath}
}

func (s *Sender) Send(to, subject, body string, pdf []byte, attachmentName string) error {
	creds, err := ResolveCredentials(s.SecretsPath)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", creds.User)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))

	d := gomail.NewDialer(s.Host, s.Port, creds.User, creds.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
