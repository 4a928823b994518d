package integrations

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/jafarshop/orderflow/internal/config"
	"github.com/jafarshop/orderflow/internal/domain"
)

// Zoho upserts CRM contacts through the Zoho CRM v2 API.
type Zoho struct {
	cfg    config.ZohoConfig
	http   *resty.Client
	logger *zap.Logger
}

// NewZoho creates a new Zoho CRM client
func NewZoho(cfg config.ZohoConfig, logger *zap.Logger) *Zoho {
	return &Zoho{
		cfg:    cfg,
		http:   newClient(cfg.BaseURL, 15*time.Second),
		logger: logger,
	}
}

// UpsertContact creates or updates the customer's CRM contact, deduplicated
// by email. Zoho requires a last name, so it defaults to "Unknown".
func (z *Zoho) UpsertContact(ctx context.Context, fields domain.NormalizedFields) domain.AdapterResult {
	if !z.cfg.Configured() {
		return domain.Simulated("Zoho not configured. Contact not upserted.")
	}

	lastName := fields.CustomerLastName
	if lastName == "" {
		lastName = "Unknown"
	}

	contact := map[string]interface{}{
		"Last_Name":       lastName,
		"First_Name":      fields.CustomerFirstName,
		"Email":           fields.CustomerEmail,
		"Phone":           fields.CustomerPhone,
		"Mailing_City":    fields.CustomerCity,
		"Mailing_Street":  fields.CustomerStreet,
		"Mailing_Zip":     fields.CustomerZipcode,
		"Mailing_Country": fields.CustomerCountry,
	}
	payload := map[string]interface{}{
		"data":                   []map[string]interface{}{contact},
		"duplicate_check_fields": []string{"Email"},
	}

	resp, err := z.http.R().
		SetContext(ctx).
		SetHeader("Authorization", fmt.Sprintf("Zoho-oauthtoken %s", z.cfg.AccessToken)).
		SetBody(payload).
		Post("/crm/v2/Contacts/upsert")
	if err != nil {
		z.logger.Warn("Zoho upsert request failed",
			zap.String("order_number", fields.OrderNumber),
			zap.Error(err),
		)
		return domain.Failed(err)
	}
	if resp.IsError() {
		return domain.Failed(fmt.Errorf("zoho API error: status %d, body: %s", resp.StatusCode(), resp.String()))
	}

	return domain.Succeeded(succeed(resp.Body()))
}
