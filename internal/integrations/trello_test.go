package integrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"

	"github.com/jafarshop/orderflow/internal/config"
	"github.com/jafarshop/orderflow/internal/domain"
)

func TestTrello_NotConfigured(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	// One credential missing is enough to simulate.
	cfg := config.TrelloConfig{Key: "k", Token: "t", BaseURL: srv.URL}
	result := NewTrello(cfg, zap.NewNop()).CreateCard(context.Background(), sampleFields())

	if result.Status != domain.AdapterStatusSimulated {
		t.Fatalf("expected simulated, got %s", result.Status)
	}
	if calls != 0 {
		t.Errorf("expected no outbound call, got %d", calls)
	}
}

func TestTrello_CreateCard(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/1/cards" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"card1"}`))
	}))
	defer srv.Close()

	cfg := config.TrelloConfig{Key: "k", Token: "t", ListID: "list1", BaseURL: srv.URL}
	fields := sampleFields()
	fields.OrderStatusURL = "https://shop.example/orders/abc"
	result := NewTrello(cfg, zap.NewNop()).CreateCard(context.Background(), fields)

	if result.Status != domain.AdapterStatusSuccess {
		t.Fatalf("expected success, got %s (%s)", result.Status, result.Error)
	}
	if gotQuery.Get("key") != "k" || gotQuery.Get("token") != "t" || gotQuery.Get("idList") != "list1" {
		t.Errorf("credentials missing from query: %v", gotQuery)
	}
	if gotQuery.Get("name") != "Shopify order 1001" {
		t.Errorf("unexpected card name %q", gotQuery.Get("name"))
	}
	if gotQuery.Get("desc") != "Order URL: https://shop.example/orders/abc" {
		t.Errorf("unexpected card description %q", gotQuery.Get("desc"))
	}
}

func TestTrello_MissingStatusURL(t *testing.T) {
	var desc string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		desc = r.URL.Query().Get("desc")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cfg := config.TrelloConfig{Key: "k", Token: "t", ListID: "list1", BaseURL: srv.URL}
	NewTrello(cfg, zap.NewNop()).CreateCard(context.Background(), sampleFields())

	if desc != "Order URL: N/A" {
		t.Errorf("expected N/A placeholder, got %q", desc)
	}
}

func TestTrello_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := config.TrelloConfig{Key: "k", Token: "t", ListID: "list1", BaseURL: srv.URL}
	result := NewTrello(cfg, zap.NewNop()).CreateCard(context.Background(), sampleFields())

	if result.Status != domain.AdapterStatusFailure {
		t.Fatalf("expected failure, got %s", result.Status)
	}
}
