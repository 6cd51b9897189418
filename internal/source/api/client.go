package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/nhle/ticketboard/internal/source"
)

// maxErrorBody caps how much of a failed response body is quoted in errors.
const maxErrorBody = 512

// maxRetryWait caps a single wait between 429 retries.
const maxRetryWait = 30 * time.Second

// Client is a thin HTTP client for the read-only snapshot endpoint.
// It handles optional Bearer token authentication and a bounded retry
// with backoff on HTTP 429. Decoding is left to source.DecodePayload.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
	maxRetries int

	// wait is swapped out in tests to avoid real sleeps.
	wait func(ctx context.Context, d time.Duration) error
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithToken sets the Bearer token sent with every request.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithMaxRetries sets how many times a 429 response is retried.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the endpoint at url. By default a request
// is fired once and never retried.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url: strings.TrimSpace(url),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		wait: sleepCtx,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint the client fetches.
func (c *Client) URL() string { return c.url }

// Get performs an HTTP GET on the endpoint and returns the raw body.
// The request id sent in X-Request-ID is returned for log correlation.
func (c *Client) Get(ctx context.Context) (body []byte, requestID string, err error) {
	requestID = uuid.NewString()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, requestID, fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, requestID, fmt.Errorf("executing request GET %s: %w", c.url, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, requestID, fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429) on GET %s", c.url)
			if attempt == c.maxRetries {
				break
			}
			if err := c.wait(ctx, retryAfterDuration(resp, attempt)); err != nil {
				return nil, requestID, err
			}
			continue
		}

		if resp.StatusCode == http.StatusUnauthorized ||
			resp.StatusCode == http.StatusForbidden {
			return nil, requestID, &source.AuthError{
				SourceType: source.SourceTypeAPI,
				Message: fmt.Sprintf(
					"%d from %s: check the configured token", resp.StatusCode, c.url,
				),
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, requestID, fmt.Errorf(
				"unexpected status %d on GET %s: %s",
				resp.StatusCode, c.url, excerpt(respBody),
			)
		}

		return respBody, requestID, nil
	}

	return nil, requestID, fmt.Errorf(
		"max retries (%d) exceeded: %w", c.maxRetries, lastErr,
	)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
// Either way the wait is capped at maxRetryWait.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
			return min(time.Duration(seconds)*time.Second, maxRetryWait)
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	if attempt >= 5 {
		return maxRetryWait
	}
	return min(time.Duration(1<<uint(attempt))*time.Second, maxRetryWait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func excerpt(body []byte) string {
	return runewidth.Truncate(strings.TrimSpace(string(body)), maxErrorBody, "…")
}
