// Package api is the HTTP gateway to the FocusFlow backend. Each method
// performs exactly one request and returns the parsed body or the transport
// failure unchanged: no retries, no caching, no local state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every request unless the caller's context is
// stricter.
const DefaultTimeout = 15 * time.Second

// AuthProvider supplies the Authorization header for outgoing requests.
// The session manager implements it; requests go out unauthenticated when
// no session is active.
type AuthProvider interface {
	AuthHeader() (string, bool)
}

// APIError is a non-2xx response decoded from the backend's JSON error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client holds the shared transport. Domain services hang off it.
type Client struct {
	baseURL string
	http    *http.Client
	auth    AuthProvider

	Auth      *AuthService
	Expenses  *ExpensesService
	Income    *IncomeService
	Savings   *SavingsService
	Loans     *LoansService
	Journal   *JournalService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithAuthProvider injects the per-request authorization source.
func WithAuthProvider(p AuthProvider) Option {
	return func(c *Client) { c.auth = p }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Auth = &AuthService{c: c}
	c.Expenses = &ExpensesService{c: c}
	c.Income = &IncomeService{c: c}
	c.Savings = &SavingsService{c: c}
	c.Loans = &LoansService{c: c}
	c.Journal = &JournalService{c: c}
	return c
}

// do performs one JSON request. A nil body sends no payload; a nil out
// discards the response body. Non-2xx statuses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.auth != nil {
		if header, ok := c.auth.AuthHeader(); ok {
			req.Header.Set("Authorization", header)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		switch {
		case body.Message != "":
			apiErr.Message = body.Message
		case body.Error != "":
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

// centsFromFloat converts a wire amount (currency units) to cents with
// half-up rounding. Rounding at the third decimal first keeps float
// artifacts like 2.675 arriving as 2.67499999... on the half-up side.
func centsFromFloat(amount float64) int64 {
	if amount < 0 {
		return -centsFromFloat(-amount)
	}
	return int64(math.Round(math.Round(amount*1000) / 10))
}

func floatFromCents(cents int64) float64 {
	return float64(cents) / 100.0
}
