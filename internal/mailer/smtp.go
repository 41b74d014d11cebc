package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"time"

	gomail "gopkg.in/mail.v2"
)

var ErrNoRecipients = errors.New("mailer: no recipients")

// Sender abstracts the SMTP transport.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	sender    Sender
	fromEmail string
	retryWait time.Duration
}

func NewSMTP(host string, port int, username, password, fromEmail string) *SMTPMailer {
	d := gomail.NewDialer(host, port, username, password)
	d.Timeout = 10 * time.Second
	return NewWithSender(d, fromEmail)
}

func NewWithSender(s Sender, fromEmail string) *SMTPMailer {
	return &SMTPMailer{sender: s, fromEmail: fromEmail, retryWait: time.Second}
}

// Send renders templateFile's subject, plainBody and htmlBody blocks and
// delivers the message, retrying with linear backoff.
func (m *SMTPMailer) Send(templateFile string, recipients []string, data any, attachments ...Attachment) error {
	if len(recipients) == 0 {
		return ErrNoRecipients
	}

	subject, plain, html, err := render(templateFile, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, FromName)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plain)
	msg.AddAlternative("text/html", html)
	for _, a := range attachments {
		payload := a.Data
		msg.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(payload)
			return err
		}))
	}

	for i := 1; i <= maxRetries; i++ {
		err = m.sender.DialAndSend(msg)
		if err == nil {
			return nil
		}
		if i < maxRetries {
			time.Sleep(m.retryWait * time.Duration(i))
		}
	}
	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, err)
}

func render(templateFile string, data any) (subject, plain, html string, err error) {
	tmpl, err := template.New("email").ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", "", fmt.Errorf("parse template %s: %w", templateFile, err)
	}

	var buf bytes.Buffer
	for _, part := range []struct {
		name string
		out  *string
	}{{"subject", &subject}, {"plainBody", &plain}, {"htmlBody", &html}} {
		buf.Reset()
		if err := tmpl.ExecuteTemplate(&buf, part.name, data); err != nil {
			return "", "", "", fmt.Errorf("render %s: %w", part.name, err)
		}
		*part.out = buf.String()
	}
	return subject, plain, html, nil
}
