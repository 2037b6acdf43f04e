package wise

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orryin/orryin-backend/config"
)

// Client wraps the Wise sandbox API: rate lookup and non-binding quotes.
type Client struct {
	apiKey    string
	baseURL   string
	profileID string
	http      *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.WiseAPIKey == "" {
		return nil, errors.New("wise api key is not configured")
	}
	return &Client{
		apiKey:    cfg.WiseAPIKey,
		baseURL:   strings.TrimRight(cfg.WiseBaseURL, "/"),
		profileID: cfg.WiseProfileID,
		http:      &http.Client{Timeout: cfg.ProviderTimeout},
	}, nil
}

// APIError carries the HTTP status and raw body of a >=400 provider response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wise error %d: %s", e.StatusCode, e.Body)
}

// ratePayload is the canonical shape a rate response is normalized to.
// decimal keeps the provider's precision; never parse rates as float64.
type ratePayload struct {
	Rate decimal.Decimal `json:"rate"`
}

// GetRate fetches the mid-market rate for a currency pair. Codes are
// normalized to upper case. The endpoint returns either a list (take the
// first element) or a single object; both shapes are accepted and resolved
// here, at the deserialization boundary.
func (c *Client) GetRate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("source", strings.ToUpper(source))
	q.Set("target", strings.ToUpper(target))

	body, err := c.get(ctx, "/v1/rates?"+q.Encode())
	if err != nil {
		return decimal.Decimal{}, err
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []ratePayload
		if err := json.Unmarshal(body, &list); err != nil {
			return decimal.Decimal{}, err
		}
		if len(list) == 0 {
			return decimal.Decimal{}, errors.New("wise: empty rate list")
		}
		return list[0].Rate, nil
	}

	var single ratePayload
	if err := json.Unmarshal(body, &single); err != nil {
		return decimal.Decimal{}, err
	}
	return single.Rate, nil
}

// CreateSandboxQuote requests a non-binding estimate for a hypothetical
// transfer. The raw quote document is returned for snapshotting; callers
// treat failures here as non-fatal.
func (c *Client) CreateSandboxQuote(ctx context.Context, source, target string, amount decimal.Decimal) (map[string]any, error) {
	payload := map[string]any{
		"sourceCurrency": strings.ToUpper(source),
		"targetCurrency": strings.ToUpper(target),
		"sourceAmount":   amount,
		"payOut":         "BALANCE",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	path := "/v3/profiles/" + c.profileID + "/quotes"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var quote map[string]any
	if err := json.Unmarshal(respBody, &quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
}
