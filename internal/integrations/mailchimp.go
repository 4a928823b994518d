package integrations

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/jafarshop/orderflow/internal/config"
	"github.com/jafarshop/orderflow/internal/domain"
)

// Mailchimp tags list members through the Mailchimp marketing API.
type Mailchimp struct {
	cfg    config.MailchimpConfig
	http   *resty.Client
	logger *zap.Logger
}

// NewMailchimp creates a new Mailchimp tagging client
func NewMailchimp(cfg config.MailchimpConfig, logger *zap.Logger) *Mailchimp {
	return &Mailchimp{
		cfg:    cfg,
		http:   newClient(cfg.BaseURL, 10*time.Second),
		logger: logger,
	}
}

// AddTag activates one tag on the member identified by the customer email.
// Tagging is simulated when either Mailchimp is unconfigured or the order
// carries no email to address the member by.
func (m *Mailchimp) AddTag(ctx context.Context, fields domain.NormalizedFields, tag string) domain.AdapterResult {
	if !m.cfg.Configured() {
		return domain.Simulated("Mailchimp not configured. Tag not added.")
	}
	if fields.CustomerEmail == "" {
		return domain.Simulated("No email provided.")
	}

	// Mailchimp addresses members by the MD5 of the lowercased email.
	sum := md5.Sum([]byte(strings.ToLower(fields.CustomerEmail)))
	memberHash := hex.EncodeToString(sum[:])

	payload := map[string]interface{}{
		"tags": []map[string]string{
			{"name": tag, "status": "active"},
		},
	}

	resp, err := m.http.R().
		SetContext(ctx).
		SetBasicAuth("anystring", m.cfg.APIKey).
		SetBody(payload).
		Post(fmt.Sprintf("/3.0/lists/%s/members/%s/tags", m.cfg.ListID, memberHash))
	if err != nil {
		m.logger.Warn("Mailchimp tag request failed",
			zap.String("order_number", fields.OrderNumber),
			zap.String("tag", tag),
			zap.Error(err),
		)
		return domain.Failed(err)
	}
	if resp.IsError() {
		return domain.Failed(fmt.Errorf("mailchimp API error: status %d, body: %s", resp.StatusCode(), resp.String()))
	}

	return domain.Succeeded(succeed(resp.Body()))
}
