package integrations

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/jafarshop/orderflow/internal/config"
	"github.com/jafarshop/orderflow/internal/domain"
)

func fullSMTP() config.SMTPConfig {
	return config.SMTPConfig{Server: "smtp.example.com", Port: 587, User: "shop@example.com", Password: "secret"}
}

func TestMailer_NotConfigured(t *testing.T) {
	partial := fullSMTP()
	partial.Password = ""

	m := NewMailer(partial, zap.NewNop())
	dialed := false
	m.dial = func(msg *gomail.Message) error {
		dialed = true
		return nil
	}

	result := m.Send("a@x.com", "subject", "body")

	if result.Status != domain.AdapterStatusSimulated {
		t.Fatalf("expected simulated with partial SMTP config, got %s", result.Status)
	}
	if dialed {
		t.Error("simulated send must not dial the transport")
	}
}

func TestMailer_Send(t *testing.T) {
	m := NewMailer(fullSMTP(), zap.NewNop())
	var sent *gomail.Message
	m.dial = func(msg *gomail.Message) error {
		sent = msg
		return nil
	}

	result := m.Send("a@x.com", "Your Shopify order - thank you", "Hi Ana")

	if result.Status != domain.AdapterStatusSuccess {
		t.Fatalf("expected success, got %s (%s)", result.Status, result.Error)
	}
	if sent == nil {
		t.Fatal("expected a message to be dialed")
	}
	if to := sent.GetHeader("To"); len(to) != 1 || to[0] != "a@x.com" {
		t.Errorf("unexpected To header %v", to)
	}
	if from := sent.GetHeader("From"); len(from) != 1 || from[0] != "shop@example.com" {
		t.Errorf("unexpected From header %v", from)
	}
	if subject := sent.GetHeader("Subject"); len(subject) != 1 || subject[0] != "Your Shopify order - thank you" {
		t.Errorf("unexpected Subject header %v", subject)
	}
}

func TestMailer_DialFailure(t *testing.T) {
	m := NewMailer(fullSMTP(), zap.NewNop())
	m.dial = func(msg *gomail.Message) error {
		return errors.New("connection refused")
	}

	result := m.Send("a@x.com", "subject", "body")

	if result.Status != domain.AdapterStatusFailure {
		t.Fatalf("expected failure, got %s", result.Status)
	}
	if result.Error != "connection refused" {
		t.Errorf("unexpected error %q", result.Error)
	}
}
