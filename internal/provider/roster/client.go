// Package roster fetches raw player records from the third-party baseball
// roster feed.
//
// The feed is a single unauthenticated GET returning a JSON array. Requests
// go through a token bucket so retry loops cannot hammer the source.
package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/EnduringBeta/fraction.work/internal/provider"
)

// DefaultURL is the feed the service was built against.
const DefaultURL = "https://api.hirefraction.com/api/test/baseball"

// maxBody bounds how much of a response is read.
const maxBody = 32 << 20

// FetchError means the roster could not be obtained: the source was
// unreachable, answered with a non-200 status, or sent an undecodable body.
// Seeding treats it as retryable.
type FetchError struct {
	URL    string
	Status int // 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch roster %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch roster %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client is the HTTP client for the roster feed.
type Client struct {
	httpClient *http.Client
	url        string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a roster client limited to requestsPerMinute.
func NewClient(url string, requestsPerMinute int, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if url == "" {
		url = DefaultURL
	}
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// envelope tolerates feeds that wrap the array as {"data": [...]}.
type envelope struct {
	Data []provider.RawPlayer `json:"data"`
}

// FetchRoster downloads the full roster. Any failure is a *FetchError.
func (c *Client) FetchRoster(ctx context.Context) ([]provider.RawPlayer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{URL: c.url, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &FetchError{URL: c.url, Status: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: c.url, Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", truncate(body, 200))}
	}

	players, err := decode(body)
	if err != nil {
		return nil, &FetchError{URL: c.url, Status: resp.StatusCode, Err: err}
	}

	c.logger.Info("Roster fetched",
		"url", c.url,
		"records", len(players),
		"duration", time.Since(start).Round(time.Millisecond))
	return players, nil
}

func decode(body []byte) ([]provider.RawPlayer, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if env.Data == nil {
			return nil, fmt.Errorf("decode response: object without data array")
		}
		return env.Data, nil
	}

	var players []provider.RawPlayer
	if err := json.Unmarshal(trimmed, &players); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return players, nil
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
