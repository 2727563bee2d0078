package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nba-stats-mcp/internal/domain"
	"nba-stats-mcp/internal/providers"
)

// Config controls how the client reaches the stats API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client issues stats.nba.com requests and decodes the shared
// resultSets wire shape into raw tables.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs a stats API client with the provided
// configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// Fetch executes one query descriptor against the stats API.
func (c *Client) Fetch(ctx context.Context, q domain.QueryDescriptor) (domain.RawResponse, error) {
	url := c.baseURL + "/" + q.Endpoint
	if encoded := q.Encode(); encoded != "" {
		url += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("nbastats: build request: %w", err)
	}
	req.Header.Set("User-Agent", headerUserAgent)
	req.Header.Set("Referer", headerReferer)
	req.Header.Set("Origin", headerOrigin)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("nbastats: %s: %w", q.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return domain.RawResponse{}, &providers.RateLimitError{
			Endpoint:   q.Endpoint,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter(resp),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.RawResponse{}, fmt.Errorf("nbastats: %s: unexpected status %d: %s",
			q.Endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.RawResponse{}, domain.WrapError(domain.ErrUpstreamSchema,
			fmt.Sprintf("endpoint %q returned undecodable body", q.Endpoint), err)
	}

	tables := make([]domain.Table, 0, len(payload.ResultSets)+1)
	for _, rs := range payload.ResultSets {
		tables = append(tables, domain.Table{Name: rs.Name, Headers: rs.Headers, Rows: rs.RowSet})
	}
	if payload.ResultSet != nil {
		tables = append(tables, domain.Table{
			Name:    payload.ResultSet.Name,
			Headers: payload.ResultSet.Headers,
			Rows:    payload.ResultSet.RowSet,
		})
	}
	if len(tables) == 0 {
		return domain.RawResponse{}, domain.Errorf(domain.ErrUpstreamSchema, "endpoint %q returned no result sets", q.Endpoint)
	}
	return domain.RawResponse{Tables: tables}, nil
}

func retryAfter(resp *http.Response) time.Duration {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
