package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/token-resolver/internal/logger"
)

// StatusError carries a non-2xx upstream status so provider clients can
// distinguish not-found responses from genuine failures.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.Code, e.Body)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetBytes performs a GET request with optional query params and
	// headers and returns the raw response body
	GetBytes(ctx context.Context, rawURL string, params url.Values, headers map[string]string) ([]byte, error)
}

// RetryConfig bounds the backoff policy applied to retryable responses.
type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig retries rate-limited and transient failures up to
// three times with exponential backoff between 2s and 30s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 2 * time.Second,
		MaxInterval:     30 * time.Second,
	}
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client *http.Client
	retry  RetryConfig
}

// NewHTTPClient creates a new real HTTP client with a bounded
// per-request timeout
func NewHTTPClient(timeout time.Duration, retry RetryConfig) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{Timeout: timeout},
		retry:  retry,
	}
}

// GetBytes performs a GET request and returns the response body.
// 429 responses and network errors are retried with exponential
// backoff; any other non-OK status is a permanent error carried as a
// StatusError so callers can map 404 to their own not-found semantics.
func (c *RealHTTPClient) GetBytes(ctx context.Context, rawURL string, params url.Values, headers map[string]string) ([]byte, error) {
	if len(params) > 0 {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse url: %w", err)
		}
		query := parsed.Query()
		for key, values := range params {
			for _, v := range values {
				query.Add(key, v)
			}
		}
		parsed.RawQuery = query.Encode()
		rawURL = parsed.String()
	}

	var respBody []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors and timeouts are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", rawURL))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("rate limited, retrying with backoff", zap.String("url", rawURL))
			// Not permanent: the backoff policy keeps retrying, and on
			// budget exhaustion the caller sees the 429 status error
			body, _ := io.ReadAll(resp.Body)
			return &StatusError{Code: resp.StatusCode, Body: string(body)}
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(&StatusError{Code: resp.StatusCode, Body: string(body)})
		}

		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.InitialInterval
	b.MaxInterval = c.retry.MaxInterval
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	policy := backoff.WithMaxRetries(backoff.WithContext(b, ctx), c.retry.MaxRetries)
	if err := backoff.Retry(operation, policy); err != nil {
		// Surface StatusError unwrapped so callers can inspect the code
		var se *StatusError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}

	return respBody, nil
}
