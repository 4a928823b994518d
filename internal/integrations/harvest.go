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

// Harvest creates invoices through the Harvest v2 API.
type Harvest struct {
	cfg    config.HarvestConfig
	http   *resty.Client
	logger *zap.Logger
}

// NewHarvest creates a new Harvest invoicing client
func NewHarvest(cfg config.HarvestConfig, logger *zap.Logger) *Harvest {
	return &Harvest{
		cfg:    cfg,
		http:   newClient(cfg.BaseURL, 20*time.Second),
		logger: logger,
	}
}

// CreateInvoice creates one invoice for the order. Unconfigured deployments
// get a simulated result and no outbound call is made.
func (h *Harvest) CreateInvoice(ctx context.Context, fields domain.NormalizedFields) domain.AdapterResult {
	if !h.cfg.Configured() {
		return domain.Simulated("Harvest not configured. Invoice not created.")
	}

	payload := map[string]interface{}{
		"client_id":      h.cfg.AccountID,
		"currency":       fields.Currency,
		"issue_date":     fields.ProcessedAt,
		"purchase_order": fields.OrderNumber,
		"line_items": []map[string]interface{}{
			{
				"kind":        "Service",
				"description": fmt.Sprintf("Shopify Order %s", fields.OrderNumber),
				"quantity":    1,
				"unit_price":  fields.OrderValue,
			},
		},
	}

	resp, err := h.http.R().
		SetContext(ctx).
		SetAuthToken(h.cfg.Token).
		SetBody(payload).
		Post("/v2/invoices")
	if err != nil {
		h.logger.Warn("Harvest invoice request failed",
			zap.String("order_number", fields.OrderNumber),
			zap.Error(err),
		)
		return domain.Failed(err)
	}
	if resp.IsError() {
		return domain.Failed(fmt.Errorf("harvest API error: status %d, body: %s", resp.StatusCode(), resp.String()))
	}

	return domain.Succeeded(succeed(resp.Body()))
}
