// Package upstream consumes the listings endpoint: one POST carrying a zip
// code, answered with a raw-listing envelope. Transport failures and
// application-level failures (success=false) surface as distinct errors.
package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"home-tracker/models"
	"home-tracker/utils"
)

// APIError is an application-level failure: the endpoint answered, but
// reported success=false. Callers surface the server-supplied message
// instead of a generic network error.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "upstream: " + e.Message
}

// Client fetches raw listings for a zip code from the listings endpoint.
type Client struct {
	url    string
	http   *http.Client
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// New creates a Client for the given endpoint URL.
func New(url string, timeout time.Duration, retry *utils.RetryConfig, logger *utils.Logger) *Client {
	return &Client{
		url:    url,
		http:   &http.Client{Timeout: timeout},
		retry:  retry,
		logger: logger,
	}
}

// FetchListings POSTs {zipCode} and returns the decoded response envelope.
// Transport and malformed-JSON failures are retried with backoff; a
// success=false envelope is returned as *APIError without retrying.
func (c *Client) FetchListings(zipCode string) (*models.ListingsResponse, error) {
	var envelope models.ListingsResponse

	fetch := func() error {
		body, err := json.Marshal(map[string]string{"zipCode": zipCode})
		if err != nil {
			return fmt.Errorf("upstream: encode request: %w", err)
		}

		req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("upstream: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("upstream: request failed: %w", err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("upstream: read body: %w", err)
		}

		envelope = models.ListingsResponse{}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			snippet := string(raw)
			if len(snippet) > 256 {
				snippet = snippet[:256]
			}
			return fmt.Errorf("upstream: invalid JSON (status=%d snippet=%q): %w",
				resp.StatusCode, snippet, err)
		}
		return nil
	}

	if err := c.retry.Do("fetch listings", fetch); err != nil {
		return nil, err
	}

	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = "failed to fetch listings"
		}
		c.logger.Warn("[upstream] Endpoint rejected zip %s: %s", zipCode, msg)
		return nil, &APIError{Message: msg}
	}

	c.logger.Info("[upstream] Fetched %d raw listings for %s (server total: %d)",
		len(envelope.Listings), zipCode, envelope.TotalListings)
	return &envelope, nil
}
