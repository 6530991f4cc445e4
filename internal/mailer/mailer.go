// Package mailer delivers the registration and inactivity-warning emails.
// The core only learns about deliveries through the emailSent / warningSent
// field flips its callers perform afterwards.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrNotConfigured reports a send attempted without SMTP settings. Callers
// must not flip delivery flags when they get it.
var ErrNotConfigured = errors.New("smtp transport not configured")

// Sender delivers notification emails to players.
type Sender interface {
	// SendRegistration sends the welcome email after a player registers.
	SendRegistration(toEmail, name string) error
	// SendWarning sends the pre-deletion inactivity warning.
	SendWarning(toEmail, name string) error
}

const registrationSubject = "Bienvenue dans Une Goutte pour l'Au-Delà"

const registrationBody = `<html><body>
<h1>Bienvenue {{name}} !</h1>
<p>Ton compte est créé. Fixe tes objectifs et valide-les jour après jour.</p>
</body></html>`

const warningSubject = "Alerte : Action requise avant suppression de compte"

const warningBody = `<html><body>
<h1>{{name}}, ton compte est inactif</h1>
<p>Valide un objectif prochainement, sans quoi ton compte sera supprimé.</p>
</body></html>`

// SMTPSender sends mail through a plain SMTP relay with AUTH PLAIN.
type SMTPSender struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// NewSMTPSender constructs an SMTPSender from transport settings.
func NewSMTPSender(host, port, user, password, from string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Password: password, From: from}
}

// SendRegistration sends the welcome email.
func (s *SMTPSender) SendRegistration(toEmail, name string) error {
	return s.send(toEmail, registrationSubject, renderTemplate(registrationBody, name))
}

// SendWarning sends the inactivity warning email.
func (s *SMTPSender) SendWarning(toEmail, name string) error {
	return s.send(toEmail, warningSubject, renderTemplate(warningBody, name))
}

func (s *SMTPSender) send(to, subject, body string) error {
	if s.Host == "" {
		return ErrNotConfigured
	}

	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=utf-8",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.User, s.Password, s.Host)
	addr := s.Host + ":" + s.Port
	if err := smtp.SendMail(addr, auth, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// renderTemplate substitutes every {{name}} marker in the body.
func renderTemplate(body, name string) string {
	return strings.ReplaceAll(body, "{{name}}", name)
}
