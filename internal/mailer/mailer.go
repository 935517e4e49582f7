package mailer

import (
	"fmt"

	"github.com/delishapp/delish-backend/config"
	"github.com/delishapp/delish-backend/pkg/logger"
	"gopkg.in/gomail.v2"
)

// Mailer delivers account-related mail. Implementations report delivery
// failure through the returned error; they never retry.
type Mailer interface {
	SendPasswordReset(toEmail, resetURL string) error
}

// SMTPMailer sends mail through an SMTP relay via gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendPasswordReset(toEmail, resetURL string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Password Reset")

	body := fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px;">
		<h1 style="color: #333; margin-bottom: 20px;">Reset your password</h1>
		<p style="color: #666; line-height: 1.6; margin-bottom: 30px;">
			We received a request to reset the password for your account.<br>
			Click the link below to choose a new password.
		</p>
		<p style="text-align: center; margin-bottom: 30px;">
			<a href="%s" style="background-color: #ffc600; color: #333; padding: 14px 30px; text-decoration: none; border-radius: 6px; font-weight: bold;">Reset Password</a>
		</p>
		<p style="color: #999; font-size: 14px; margin-bottom: 10px;">
			* This link is valid for 1 hour.
		</p>
		<p style="color: #999; font-size: 14px;">
			* If you did not request this change, you can ignore this email.
		</p>
	</div>
</body>
</html>
`, resetURL)

	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"to": toEmail,
		})
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	logger.Info("Password reset email sent", map[string]interface{}{
		"to": toEmail,
	})
	return nil
}

// LogMailer logs mail instead of sending it. Used in development when SMTP
// is not configured.
type LogMailer struct{}

func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

func (m *LogMailer) SendPasswordReset(toEmail, resetURL string) error {
	logger.Info("[DEV MODE] Password reset link (email sending disabled)", map[string]interface{}{
		"to":        toEmail,
		"reset_url": resetURL,
	})
	return nil
}
