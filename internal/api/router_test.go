package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/orderflow/internal/config"
	"github.com/jafarshop/orderflow/internal/domain"
	"github.com/jafarshop/orderflow/internal/integrations"
	"github.com/jafarshop/orderflow/internal/service"
)

// newTestRouter builds the real router over entirely unconfigured
// integrations, so every adapter takes the simulated path with no network.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		Coupon:      config.CouponConfig{Threshold: 50, Code: "COUPON15", HighOrderTag: "high-order"},
	}
	logger := zap.NewNop()
	processor := service.NewProcessor(
		integrations.NewHarvest(config.HarvestConfig{}, logger),
		integrations.NewTrello(config.TrelloConfig{}, logger),
		integrations.NewZoho(config.ZohoConfig{}, logger),
		integrations.NewMailchimp(config.MailchimpConfig{}, logger),
		integrations.NewMailer(config.SMTPConfig{}, logger),
		cfg.Coupon,
		logger,
	)
	return NewRouter(cfg, processor, nil, logger)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestWebhookOrderCreated(t *testing.T) {
	router := newTestRouter()

	body := `{
		"current_total_price": "75.00",
		"order_number": 1001,
		"customer": {"first_name": "Ana", "email": "a@x.com"},
		"shipping_address": {"zip": "1000"}
	}`
	req := httptest.NewRequest("POST", "/webhook/order-created", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id to be set")
	}

	var result domain.ProcessingResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not a processing result: %v", err)
	}
	if result.RunID == "" {
		t.Error("expected a run ID")
	}
	if result.Fields.OrderValue != 75 {
		t.Errorf("expected order value 75, got %v", result.Fields.OrderValue)
	}
	if result.Harvest.Status != domain.AdapterStatusSimulated ||
		result.Trello.Status != domain.AdapterStatusSimulated ||
		result.Zoho.Status != domain.AdapterStatusSimulated {
		t.Errorf("expected simulated integrations, got %+v", result)
	}
	// 75 > 50: high-value branch with a tagging attempt.
	if result.CouponEmail == nil || result.Mailchimp == nil {
		t.Error("expected coupon email and mailchimp attempts on the high-value branch")
	}
	if result.ThankYouEmail != nil {
		t.Error("thank-you email must be absent on the high-value branch")
	}
}

func TestWebhookThresholdBoundary(t *testing.T) {
	router := newTestRouter()

	body := `{"current_total_price": "50.00", "customer": {"first_name": "Ana", "email": "a@x.com"}}`
	req := httptest.NewRequest("POST", "/webhook/order-created", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if _, ok := raw["thankyou_email"]; !ok {
		t.Error("expected thankyou_email in the result at the threshold boundary")
	}
	if _, ok := raw["mailchimp"]; ok {
		t.Error("mailchimp attempt must be absent from the result on the low branch")
	}
	if _, ok := raw["coupon_email"]; ok {
		t.Error("coupon_email must be absent from the result on the low branch")
	}
}

func TestWebhookInvalidJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("POST", "/webhook/order-created", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid json") {
		t.Errorf("expected invalid json error, got %s", w.Body.String())
	}
}
