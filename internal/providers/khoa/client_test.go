package khoa

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dive-marine/internal/types"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, "test-key", 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tideStation(externalID string) types.Station {
	return types.Station{
		Source:      types.SourceTideSurvey,
		ExternalID:  externalID,
		Name:        "test tide station",
		Coordinates: types.NewCoords(36.05, 129.38),
		Active:      true,
	}
}

func TestClient_FetchLatest_TakesNewestRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DT_0001", r.URL.Query().Get("ObsCode"))
		assert.Equal(t, "test-key", r.URL.Query().Get("ServiceKey"))

		records := []tideRecord{
			{ObsTime: "2026-08-31 11:50:00", TideLevel: "118"},
			{ObsTime: "2026-08-31 12:00:00", TideLevel: "123"},
		}
		require.NoError(t, json.NewEncoder(w).Encode(records))
	}))
	defer srv.Close()

	reading, err := testClient(srv.URL).FetchLatest(context.Background(), tideStation("DT_0001"))

	require.NoError(t, err)
	require.NotNil(t, reading)
	require.NotNil(t, reading.TideLevelCm)
	assert.Equal(t, 123.0, *reading.TideLevelCm)
	require.NotNil(t, reading.ObservedAt)
	assert.Equal(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC), *reading.ObservedAt)
}

func TestClient_FetchLatest_EmptyArrayMeansNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	reading, err := testClient(srv.URL).FetchLatest(context.Background(), tideStation("DT_0001"))

	require.NoError(t, err)
	assert.Nil(t, reading)
}

func TestClient_FetchLatest_BlankLevelBecomesNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"obs_time":"2026-08-31 12:00:00","tide_level":""}]`))
	}))
	defer srv.Close()

	reading, err := testClient(srv.URL).FetchLatest(context.Background(), tideStation("DT_0001"))

	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Nil(t, reading.TideLevelCm)
	assert.NotNil(t, reading.ObservedAt)
}

func TestClient_FetchLatest_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchLatest(context.Background(), tideStation("DT_0001"))
	require.Error(t, err)
}
