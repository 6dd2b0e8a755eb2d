package khoa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dive-marine/internal/types"
)

// API Docs: http://www.khoa.go.kr/oceangrid/khoa/intro.do
// Sample request: .../api/oceangrid/tideObsRecent/search.do?ObsCode=DT_0001&ResultType=json
const defaultBaseURL = "http://www.khoa.go.kr/api/oceangrid/tideObsRecent/search.do"

const obsTimeLayout = "2006-01-02 15:04:05"

// Client fetches recent tide-level observations for one tide survey station.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
	logger     *slog.Logger
}

func NewClient(baseURL, serviceKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		serviceKey: serviceKey,
		logger:     logger.With("component", "khoa-client"),
	}
}

// FetchLatest returns the most recent tide reading for the station, or
// (nil, nil) when the feed has no rows for it.
func (c *Client) FetchLatest(ctx context.Context, st types.Station) (*types.TideReading, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("ObsCode", st.ExternalID)
	q.Set("ServiceKey", c.serviceKey)
	q.Set("ResultType", "json")
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

	var records []tideRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(records) == 0 {
		c.logger.Debug("no tide records for station", "station", st.ExternalID)
		return nil, nil
	}

	// Rows arrive oldest first; the last one is the current observation.
	latest := records[len(records)-1]

	reading := &types.TideReading{}
	if level, err := strconv.ParseFloat(latest.TideLevel, 64); err == nil {
		reading.TideLevelCm = &level
	}
	if ts, err := time.Parse(obsTimeLayout, latest.ObsTime); err == nil {
		reading.ObservedAt = &ts
	}

	return reading, nil
}
