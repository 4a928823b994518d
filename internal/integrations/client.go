package integrations

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "orderflow/1.0"

// newClient builds the resty client shared by every integration: one bounded
// timeout, no retries (each call is attempted exactly once).
func newClient(baseURL string, timeout time.Duration) *resty.Client {
	// Normalize base URL - remove trailing slashes
	baseURL = strings.TrimSuffix(baseURL, "/")

	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0)
}

// succeed wraps a 2xx response body as a success result. Non-JSON bodies are
// re-encoded as a JSON string so the aggregate result always marshals.
func succeed(body []byte) json.RawMessage {
	if json.Valid(body) && len(body) > 0 {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return json.RawMessage(quoted)
}
