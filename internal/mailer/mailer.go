package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/taskhive/taskhive/config"
	"go.uber.org/zap"
)

// Sender handles transactional account lifecycle emails via SMTP. Delivery is
// fire-and-forget from the caller's perspective: failures are logged and never
// roll back the account action they accompany.
type Sender struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *zap.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendWelcome sends the registration welcome email
func (s *Sender) SendWelcome(to, name string) error {
	if !s.cfg.SMTP.Enabled {
		s.logger.Debug("SMTP disabled, skipping welcome email",
			zap.String("to", to))
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SMTP.Sender
	e.To = []string{to}
	e.Subject = "Welcome to the app"

	body := fmt.Sprintf(
		"Welcome to the app, %s.\n\n"+
			"Let us know how you get along with it.\n\n"+
			"Best regards,\nTaskHive",
		name,
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendCancellation sends the account deletion email
func (s *Sender) SendCancellation(to, name string) error {
	if !s.cfg.SMTP.Enabled {
		s.logger.Debug("SMTP disabled, skipping cancellation email",
			zap.String("to", to))
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SMTP.Sender
	e.To = []string{to}
	e.Subject = "Sorry to see you go"

	body := fmt.Sprintf(
		"Goodbye, %s.\n\n"+
			"Your account and all of your tasks have been deleted. "+
			"We would love to hear what we could have done to keep you on board.\n\n"+
			"Best regards,\nTaskHive",
		name,
	)
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTP.Username, s.cfg.SMTP.Password, s.cfg.SMTP.Host)
	if err := e.Send(s.cfg.SMTPAddress(), auth); err != nil {
		s.logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", e.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", e.Subject),
	)
	return nil
}
