package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Order represents the subset of a Shopify "order created" webhook payload
// that this service reads. Every field is optional: Shopify payloads vary by
// shop configuration, and extraction must tolerate any missing nesting.
type Order struct {
	ID                int64     `json:"id"`
	OrderNumber       int64     `json:"order_number"`
	Currency          string    `json:"currency"`
	CurrentTotalPrice Price     `json:"current_total_price"`
	OrderStatusURL    string    `json:"order_status_url"`
	ProcessedAt       string    `json:"processed_at"`
	Customer          *Customer `json:"customer"`
	ShippingAddress   *Address  `json:"shipping_address"`
}

// Customer is the nested customer record of an Order.
type Customer struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	DefaultAddress *Address `json:"default_address"`
}

// Address covers both the shipping address and the customer's default
// address; Shopify uses the same shape for both.
type Address struct {
	Phone    string `json:"phone"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
	Address1 string `json:"address1"`
	City     string `json:"city"`
	Province string `json:"province"`
}

// Price holds a monetary amount as Shopify encodes it. Shopify sends prices
// as JSON strings ("75.00"), but some producers send bare numbers; both
// decode to the same value. Parsing to a float happens at extraction time so
// an unparsable amount degrades to zero instead of failing the decode.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	// Bare number token: keep the literal text.
	*p = Price(data)
	return nil
}

// NormalizedFields is the flat, extraction-derived view of an Order consumed
// by every integration. Missing source fields default to "" or 0.
type NormalizedFields struct {
	CustomerPhone     string  `json:"customer_phone"`
	CustomerZipcode   string  `json:"customer_zipcode"`
	OrderValue        float64 `json:"order_value"`
	CustomerFirstName string  `json:"customer_firstname"`
	CustomerLastName  string  `json:"customer_lastname"`
	CustomerEmail     string  `json:"customer_email"`
	CustomerCountry   string  `json:"customer_country"`
	CustomerStreet    string  `json:"customer_street"`
	CustomerCity      string  `json:"customer_city"`
	CustomerProvince  string  `json:"customer_province"`
	OrderNumber       string  `json:"order_number"`
	OrderStatusURL    string  `json:"order_status_url"`
	Currency          string  `json:"currency"`
	ProcessedAt       string  `json:"processed_at"`
}

// AdapterResult is the uniform tri-state outcome of one integration attempt.
// Exactly one of Message, Response, or Error is populated, matching Status.
type AdapterResult struct {
	Status   AdapterStatus   `json:"status"`
	Message  string          `json:"message,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Simulated builds the designed no-op result for an unconfigured integration.
func Simulated(reason string) AdapterResult {
	return AdapterResult{Status: AdapterStatusSimulated, Message: reason}
}

// Succeeded wraps a raw remote response payload.
func Succeeded(response []byte) AdapterResult {
	return AdapterResult{Status: AdapterStatusSuccess, Response: json.RawMessage(response)}
}

// Failed wraps a transport or remote error description.
func Failed(err error) AdapterResult {
	return AdapterResult{Status: AdapterStatusFailure, Error: err.Error()}
}

// ProcessingResult aggregates one order's run: the extracted fields and one
// AdapterResult per integration attempted. The notification fields are
// mutually exclusive: a high-value order carries CouponEmail and Mailchimp,
// a low-value order carries ThankYouEmail only. Immutable once built, never
// persisted by the processor itself.
type ProcessingResult struct {
	RunID         string           `json:"run_id"`
	StartedAt     time.Time        `json:"started_at"`
	Fields        NormalizedFields `json:"fields"`
	Harvest       AdapterResult    `json:"harvest"`
	Trello        AdapterResult    `json:"trello"`
	Zoho          AdapterResult    `json:"zoho"`
	CouponEmail   *AdapterResult   `json:"coupon_email,omitempty"`
	Mailchimp     *AdapterResult   `json:"mailchimp,omitempty"`
	ThankYouEmail *AdapterResult   `json:"thankyou_email,omitempty"`
	FinishedAt    time.Time        `json:"finished_at"`
}
