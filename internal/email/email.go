package email

import (
	"fmt"
	"log"

	"github.com/resendlabs/resend-go"
)

// Sender delivers transactional mail. The resend-backed implementation is
// used when an API key is configured; otherwise mail is logged and
// dropped, which keeps local development working.
type Sender interface {
	SendActivation(to, name, activationURL string) error
	SendPasswordReset(to, name, resetURL string) error
}

type resendSender struct {
	client *resend.Client
	from   string
}

func NewSender(apiKey, from string) Sender {
	if apiKey == "" {
		return &logSender{logger: log.New(log.Writer(), "[email] ", log.LstdFlags)}
	}
	return &resendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *resendSender) SendActivation(to, name, activationURL string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Welcome to AI Stylist. Confirm your email address to activate your account:</p>
<p><a href="%s">Activate account</a></p>
<p>The link expires in 24 hours. If you didn't sign up, ignore this email.</p>`,
		name, activationURL)

	return s.send(to, "Activate your AI Stylist account", html)
}

func (s *resendSender) SendPasswordReset(to, name, resetURL string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset your password:</p>
<p><a href="%s">Reset password</a></p>
<p>The link expires in 1 hour. If you didn't request this, your account is still safe.</p>`,
		name, resetURL)

	return s.send(to, "Reset your AI Stylist password", html)
}

func (s *resendSender) send(to, subject, html string) error {
	_, err := s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

type logSender struct {
	logger *log.Logger
}

func (s *logSender) SendActivation(to, _, activationURL string) error {
	s.logger.Printf("no API key set; activation link for %s: %s", to, activationURL)
	return nil
}

func (s *logSender) SendPasswordReset(to, _, resetURL string) error {
	s.logger.Printf("no API key set; password reset link for %s: %s", to, resetURL)
	return nil
}
