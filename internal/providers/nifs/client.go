package nifs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dive-marine/internal/types"
)

// API Docs: https://www.nifs.go.kr/OpenAPI_json
// Sample request: .../OpenAPI_json?id=risaList&key=...&sta_cde=W031
const defaultBaseURL = "https://www.nifs.go.kr/OpenAPI_json"

// Client fetches the latest water-column observation for one station.
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
		logger:     logger.With("component", "nifs-client"),
	}
}

// FetchLatest returns the normalized water reading for the station, or
// (nil, nil) when the feed has no layer items for it. Temperatures are kept
// per layer; salinity and oxygen come from the preferred layer
// (mid, then surface, then bottom, else whichever arrived first).
func (c *Client) FetchLatest(ctx context.Context, st types.Station) (*types.WaterReading, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("id", "risaList")
	q.Set("key", c.serviceKey)
	q.Set("sta_cde", st.ExternalID)
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

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	items := env.Body.Item
	if len(items) == 0 {
		c.logger.Debug("no water-column items for station", "station", st.ExternalID)
		return nil, nil
	}

	reading := &types.WaterReading{}
	for _, item := range items {
		switch item.Layer {
		case layerMid:
			if v := parseValue(item.WaterTemp); v != nil {
				reading.MidLayerTempC = v
			}
		case layerSurface:
			if v := parseValue(item.WaterTemp); v != nil {
				reading.SurfaceTempC = v
			}
		}
	}

	preferred := preferredLayer(items)
	reading.Salinity = parseValue(preferred.Salinity)
	reading.DissolvedOxygen = parseValue(preferred.DissolvedOxygen)

	return reading, nil
}

// preferredLayer picks the layer that supplies chemistry values: mid first,
// then surface, then bottom, else the first item the feed returned.
func preferredLayer(items []layerItem) layerItem {
	for _, want := range []string{layerMid, layerSurface, layerBottom} {
		for _, item := range items {
			if item.Layer == want {
				return item
			}
		}
	}
	return items[0]
}

func parseValue(field string) *float64 {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return nil
	}
	return &v
}
