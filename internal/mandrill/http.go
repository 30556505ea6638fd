package mandrill

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultBaseURL is the production Mandrill API root.
const DefaultBaseURL = "https://mandrillapp.com/api/1.0"

// maxResponseBytes caps how much of a response body is read. Send results are
// one small object per recipient.
const maxResponseBytes = 1 << 20

// httpClient is the concrete Client backed by the Mandrill REST API.
type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client returned by New.
type Option func(*httpClient)

// WithBaseURL points the client at a different API root (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *httpClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.httpClient = hc }
}

// WithTimeout sets the timeout of the underlying *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New returns a Client that talks to Mandrill over HTTPS. The API key is not
// bound to the client; it travels in every request body.
func New(opts ...Option) Client {
	c := &httpClient{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ─── CLIENT IMPLEMENTATION ────────────────────────────────────────────────────

// SendTemplate calls POST /messages/send-template.json.
func (c *httpClient) SendTemplate(ctx context.Context, req SendTemplateRequest) ([]SendResult, error) {
	if req.TemplateContent == nil {
		req.TemplateContent = []TemplateContent{}
	}

	var results []SendResult
	if err := c.call(ctx, "/messages/send-template.json", req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Ping calls POST /users/ping2.json.
func (c *httpClient) Ping(ctx context.Context, key string) error {
	var pong struct {
		Ping string `json:"PING"`
	}
	if err := c.call(ctx, "/users/ping2.json", map[string]string{"key": key}, &pong); err != nil {
		return err
	}
	if pong.Ping != "PONG!" {
		return fmt.Errorf("mandrill: unexpected ping reply %q", pong.Ping)
	}
	return nil
}

// ─── HTTP CALL ────────────────────────────────────────────────────────────────

func (c *httpClient) call(ctx context.Context, path string, body, out any) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("mandrill: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("mandrill: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mandrill: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("mandrill: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, respBytes)
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("mandrill: unmarshal response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}

// decodeAPIError turns a non-2xx response into an *APIError. Bodies that are
// not Mandrill error documents (proxies, gateways) keep a truncated excerpt.
func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Status != "error" {
		return &APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("%.200s", strings.TrimSpace(string(body))),
		}
	}
	return apiErr
}
