package integrations

import (
	"encoding/json"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/jafarshop/orderflow/internal/config"
	"github.com/jafarshop/orderflow/internal/domain"
)

// Mailer sends plain-text notification emails over SMTP. The transport must
// be fully configured (server, port, user, password) or every send is
// simulated.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger

	// dial is swapped in tests to avoid a real SMTP connection.
	dial func(msg *gomail.Message) error
}

// NewMailer creates a new SMTP mailer
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.Server, cfg.Port, cfg.User, cfg.Password)
	return &Mailer{
		cfg:    cfg,
		logger: logger,
		dial:   func(msg *gomail.Message) error { return dialer.DialAndSend(msg) },
	}
}

// Send delivers one message and reports the outcome as a tri-state result.
func (m *Mailer) Send(to, subject, body string) domain.AdapterResult {
	if !m.cfg.Configured() {
		return domain.Simulated("SMTP not configured. Email not sent.")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.User)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dial(msg); err != nil {
		m.logger.Warn("Email send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return domain.Failed(err)
	}

	response, _ := json.Marshal(map[string]string{"message": "Email sent via SMTP"})
	return domain.Succeeded(response)
}
