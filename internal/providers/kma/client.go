package kma

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"dive-marine/internal/types"
)

// API Docs: https://apihub.kma.go.kr
// The marine buoy endpoint answers text/plain, one comma-delimited row per
// station, '#' comment lines around the data block.
const defaultBaseURL = "https://apihub.kma.go.kr/api/typ01/url/sea_obs.php"

// Client fetches the latest sea-surface weather row for one buoy station.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authKey    string
	logger     *slog.Logger
}

func NewClient(baseURL, authKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		authKey:    authKey,
		logger:     logger.With("component", "kma-client"),
	}
}

// FetchLatest returns the normalized buoy reading for the station, or
// (nil, nil) when the table carries no row for it.
func (c *Client) FetchLatest(ctx context.Context, st types.Station) (*types.WaveReading, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("stn", st.ExternalID)
	q.Set("authKey", c.authKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	reading, ok := parseBuoyTable(string(body), st.ExternalID)
	if !ok {
		c.logger.Debug("no buoy row for station", "station", st.ExternalID)
		return nil, nil
	}
	return reading, nil
}
