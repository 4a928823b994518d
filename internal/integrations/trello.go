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

// Trello creates one card per order on a configured board list.
type Trello struct {
	cfg    config.TrelloConfig
	http   *resty.Client
	logger *zap.Logger
}

// NewTrello creates a new Trello card client
func NewTrello(cfg config.TrelloConfig, logger *zap.Logger) *Trello {
	return &Trello{
		cfg:    cfg,
		http:   newClient(cfg.BaseURL, 10*time.Second),
		logger: logger,
	}
}

// CreateCard creates a card named after the order. The Trello API takes the
// credentials as query parameters, not headers.
func (t *Trello) CreateCard(ctx context.Context, fields domain.NormalizedFields) domain.AdapterResult {
	if !t.cfg.Configured() {
		return domain.Simulated("Trello not configured. Card not created.")
	}

	statusURL := fields.OrderStatusURL
	if statusURL == "" {
		statusURL = "N/A"
	}

	resp, err := t.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":    t.cfg.Key,
			"token":  t.cfg.Token,
			"idList": t.cfg.ListID,
			"name":   fmt.Sprintf("Shopify order %s", fields.OrderNumber),
			"desc":   fmt.Sprintf("Order URL: %s", statusURL),
		}).
		Post("/1/cards")
	if err != nil {
		t.logger.Warn("Trello card request failed",
			zap.String("order_number", fields.OrderNumber),
			zap.Error(err),
		)
		return domain.Failed(err)
	}
	if resp.IsError() {
		return domain.Failed(fmt.Errorf("trello API error: status %d, body: %s", resp.StatusCode(), resp.String()))
	}

	return domain.Succeeded(succeed(resp.Body()))
}
