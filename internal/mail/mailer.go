package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

// Mailer is the send(to, subject, html) sink the auth flows depend on.
type Mailer interface {
	Send(to, subject, html string) error
	SendVerification(to, link string) error
	SendPasswordReset(to, link string) error
}

// SMTPMailer delivers mail over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given SMTP server.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send delivers a single HTML message.
func (m *SMTPMailer) Send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// SendVerification sends the email-verification message.
func (m *SMTPMailer) SendVerification(to, link string) error {
	html, err := render(verificationTemplate, linkData{Link: link})
	if err != nil {
		return err
	}
	return m.Send(to, "Verify your email address", html)
}

// SendPasswordReset sends the password-reset message.
func (m *SMTPMailer) SendPasswordReset(to, link string) error {
	html, err := render(resetTemplate, linkData{Link: link})
	if err != nil {
		return err
	}
	return m.Send(to, "Reset your password", html)
}

type linkData struct {
	Link string
}

func render(t *template.Template, data linkData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render mail template: %w", err)
	}
	return buf.String(), nil
}

var verificationTemplate = template.Must(template.New("verification").Parse(`
<div style="font-family: Arial, sans-serif; background: #f9f9f9; padding: 40px;">
  <div style="max-width: 500px; margin: auto; background: #fff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #2d3748; text-align: center;">Verify Your Email Address</h2>
    <p style="color: #4a5568; font-size: 16px;">
      Thank you for registering! Please confirm your email address by clicking the button below:
    </p>
    <div style="text-align: center; margin: 32px 0;">
      <a href="{{.Link}}" style="background: #3182ce; color: #fff; padding: 14px 32px; border-radius: 6px; text-decoration: none; font-weight: bold;">
        Verify Email
      </a>
    </div>
    <p style="color: #718096; font-size: 14px;">
      If you did not create an account, you can safely ignore this email.
      This link will expire soon for your security.
    </p>
  </div>
</div>
`))

var resetTemplate = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; background: #f9f9f9; padding: 40px;">
  <div style="max-width: 500px; margin: auto; background: #fff; border-radius: 8px; padding: 32px;">
    <h2 style="color: #2d3748; text-align: center;">Reset Your Password</h2>
    <p style="color: #4a5568; font-size: 16px;">
      We received a request to reset your password. Click the button below to set a new one:
    </p>
    <div style="text-align: center; margin: 32px 0;">
      <a href="{{.Link}}" style="background: #e53e3e; color: #fff; padding: 14px 32px; border-radius: 6px; text-decoration: none; font-weight: bold;">
        Reset Password
      </a>
    </div>
    <p style="color: #718096; font-size: 14px;">
      If you did not request this change, you can safely ignore this email.
      This link will expire soon for your security.
    </p>
  </div>
</div>
`))
