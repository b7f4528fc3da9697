package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

func NewMailer(host string, port int, user, pass string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass}
}

// SendResetCodeEmail delivers a password reset code to the given address.
func (m *Mailer) SendResetCodeEmail(email, code string) error {
	if m.host == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Password Reset Code")

	msg.SetBody("text/plain", "Your password reset code is: "+code)

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Password Reset Code</title>
	</head>
	<body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 20px auto; padding: 20px;">
			<h1>Password Reset Code</h1>
			<p>Your password reset code is:</p>
			<p style="font-weight: bold; color: #007bff;">` + code + `</p>
			<p>If you did not request a password reset, please ignore this email.</p>
		</div>
	</body>
	</html>
	`
	msg.AddAlternative("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset code email: %w", err)
	}
	return nil
}
