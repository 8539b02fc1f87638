package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// APIError represents an error response from the trading API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alpaca api error %d: %s", e.StatusCode, e.Message)
}

// ErrRateLimitExhausted is returned when every attempt against an
// endpoint was answered with HTTP 429.
var ErrRateLimitExhausted = errors.New("rate limit retries exhausted")

// Response is one raw API response. Bodies are decoded by callers since
// shapes differ per endpoint.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// doRequest performs a single GET against path with the given query.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) (*Response, error) {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range c.creds.Headers() {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// getRaw performs a GET with bounded retry on rate limiting. Only HTTP
// 429 is retried; the wait grows by one backoff unit per attempt. Any
// other non-success status fails immediately with an *APIError.
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) (*Response, error) {
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		resp, err := c.doRequest(ctx, path, query)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := time.Duration(1+attempt) * c.retryBackoff
			c.logger.Debug("rate limited, backing off",
				"path", path,
				"attempt", attempt+1,
				"wait", wait,
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		if resp.StatusCode >= 400 {
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    http.StatusText(resp.StatusCode),
				Body:       resp.Body,
			}
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%w: %s after %d attempts", ErrRateLimitExhausted, path, c.maxAttempts)
}

// getJSON performs a GET with retries and decodes the body into result.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, result any) error {
	resp, err := c.getRaw(ctx, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
