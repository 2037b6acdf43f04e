package sumsub

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/orryin/orryin-backend/config"
)

// Client is a thin wrapper around the Sumsub REST API.
// Supports: Create Applicant.
type Client struct {
	appToken  string
	secretKey []byte
	baseURL   string
	levelName string
	http      *http.Client

	// now is overridable in tests to pin the signature timestamp.
	now func() time.Time
}

// NewClient fails when credentials are missing so the caller can surface a
// configuration error instead of signing requests with an empty key.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.SumsubAppToken == "" || cfg.SumsubSecretKey == "" {
		return nil, errors.New("sumsub credentials are not configured")
	}
	return &Client{
		appToken:  cfg.SumsubAppToken,
		secretKey: []byte(cfg.SumsubSecretKey),
		baseURL:   strings.TrimRight(cfg.SumsubBaseURL, "/"),
		levelName: cfg.SumsubLevelName,
		http:      &http.Client{Timeout: cfg.ProviderTimeout},
		now:       time.Now,
	}, nil
}

// ApplicantInfo is the nested personal-info block Sumsub expects.
type ApplicantInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Country   string `json:"country"`
}

// ApplicantRequest is the create-applicant payload. Field order matters for
// nothing but readability; the signed bytes are exactly the marshaled bytes.
type ApplicantRequest struct {
	ExternalUserID string        `json:"externalUserId"`
	Email          string        `json:"email"`
	Info           ApplicantInfo `json:"info"`
}

// Applicant is the slice of the provider response this service consumes.
type Applicant struct {
	ID string `json:"id"`
}

// sign computes the Sumsub request signature:
// hex(HMAC-SHA256(secret, ts + METHOD + path + body)).
func (c *Client) sign(ts, method, path string, body []byte) string {
	mac := hmac.New(sha256.New, c.secretKey)
	mac.Write([]byte(ts + strings.ToUpper(method) + path))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// CreateApplicant registers the user at the configured verification level:
// POST /resources/applicants?levelName=<level>.
// The payload is marshaled once and sent verbatim so the signature matches
// the transmitted bytes exactly.
func (c *Client) CreateApplicant(ctx context.Context, externalUserID string, payload ApplicantRequest) (*Applicant, error) {
	payload.ExternalUserID = externalUserID

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	path := "/resources/applicants?levelName=" + c.levelName
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	ts := strconv.FormatInt(c.now().Unix(), 10)
	req.Header.Set("X-App-Token", c.appToken)
	req.Header.Set("X-App-Access-Ts", ts)
	req.Header.Set("X-App-Access-Sig", c.sign(ts, http.MethodPost, path, body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

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

	var applicant Applicant
	if err := json.Unmarshal(respBody, &applicant); err != nil {
		return nil, err
	}
	return &applicant, nil
}
