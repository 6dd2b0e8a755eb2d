package summary

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dive-marine/internal/divepoint"
	"dive-marine/internal/observability"
	"dive-marine/internal/types"
)

// Collaborator stubs.

type stubRegistry struct {
	stations map[types.SourceKind][]types.Station
}

func (s *stubRegistry) ListActiveStations(_ context.Context, kind types.SourceKind) ([]types.Station, error) {
	return s.stations[kind], nil
}

type stubLookup struct {
	points map[int64]*divepoint.Point
	calls  int
}

func (s *stubLookup) FindByID(_ context.Context, id int64) (*divepoint.Point, error) {
	s.calls++
	if p, ok := s.points[id]; ok {
		return p, nil
	}
	return nil, divepoint.ErrNotFound
}

type stubTideProvider struct {
	calls []string
	fn    func(st types.Station) (*types.TideReading, error)
}

func (p *stubTideProvider) FetchLatest(_ context.Context, st types.Station) (*types.TideReading, error) {
	p.calls = append(p.calls, st.ExternalID)
	if p.fn == nil {
		return nil, nil
	}
	return p.fn(st)
}

type stubWaveProvider struct {
	calls []string
	fn    func(st types.Station) (*types.WaveReading, error)
}

func (p *stubWaveProvider) FetchLatest(_ context.Context, st types.Station) (*types.WaveReading, error) {
	p.calls = append(p.calls, st.ExternalID)
	if p.fn == nil {
		return nil, nil
	}
	return p.fn(st)
}

type stubWaterProvider struct {
	calls []string
	fn    func(st types.Station) (*types.WaterReading, error)
}

func (p *stubWaterProvider) FetchLatest(_ context.Context, st types.Station) (*types.WaterReading, error) {
	p.calls = append(p.calls, st.ExternalID)
	if p.fn == nil {
		return nil, nil
	}
	return p.fn(st)
}

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

type fixture struct {
	registry *stubRegistry
	lookup   *stubLookup
	tide     *stubTideProvider
	wave     *stubWaveProvider
	water    *stubWaterProvider
	service  Service
}

func newFixture(stations map[types.SourceKind][]types.Station) *fixture {
	f := &fixture{
		registry: &stubRegistry{stations: stations},
		lookup:   &stubLookup{points: map[int64]*divepoint.Point{}},
		tide:     &stubTideProvider{},
		wave:     &stubWaveProvider{},
		water:    &stubWaterProvider{},
	}
	f.service = NewService(
		f.registry, f.lookup, f.tide, f.wave, f.water,
		DefaultFallbackBounds(),
		observability.NewMetricsForTesting(),
		clockwork.NewFakeClockAt(testNow),
		discardLogger(),
	)
	return f
}

func coordReq(lat, lon float64) Request {
	return Request{Latitude: &lat, Longitude: &lon}
}

func waterStationAt(id int64, externalID string, lat, lon float64) types.Station {
	return types.Station{
		ID: id, Source: types.SourceWaterColumn, ExternalID: externalID,
		Name: "water " + externalID, Coordinates: types.NewCoords(lat, lon), Active: true,
	}
}

func tideStationAt(id int64, externalID string, lat, lon float64) types.Station {
	return types.Station{
		ID: id, Source: types.SourceTideSurvey, ExternalID: externalID,
		Name: "tide " + externalID, Coordinates: types.NewCoords(lat, lon), Active: true,
	}
}

func TestGetSummary_WaterFallbackToSecondStation(t *testing.T) {
	// Nearest water station (~10 km) errors; the next one (~50 km) answers.
	f := newFixture(map[types.SourceKind][]types.Station{
		types.SourceWaterColumn: {
			waterStationAt(1, "W-near", 36.09, 129.4),
			waterStationAt(2, "W-far", 36.45, 129.4),
		},
	})
	f.water.fn = func(st types.Station) (*types.WaterReading, error) {
		if st.ExternalID == "W-near" {
			return nil, assert.AnError
		}
		return &types.WaterReading{MidLayerTempC: types.Float(18.3)}, nil
	}

	got, err := f.service.GetSummary(context.Background(), coordReq(36.0, 129.4))

	require.NoError(t, err)
	require.NotNil(t, got.Water.MidLayerTempC)
	assert.Equal(t, 18.3, *got.Water.MidLayerTempC)
	assert.Equal(t, []string{"W-near", "W-far"}, f.water.calls)

	// Nearest-station metadata reports the primary nearest station even
	// though the data came from the next one.
	require.NotNil(t, got.Location.NearestStations.Water)
	assert.Equal(t, "W-near", got.Location.NearestStations.Water.ID)
	assert.InDelta(t, 10.0, got.Location.NearestStations.Water.DistanceKm, 0.2)
}

func TestGetSummary_UnknownPointIDIsInvalidRequest(t *testing.T) {
	f := newFixture(map[types.SourceKind][]types.Station{
		types.SourceWaterColumn: {waterStationAt(1, "W1", 36.1, 129.4)},
	})

	pointID := int64(42)
	_, err := f.service.GetSummary(context.Background(), Request{PointID: &pointID})

	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, f.water.calls, "no adapter calls for an unresolvable request")
	assert.Empty(t, f.wave.calls)
	assert.Empty(t, f.tide.calls)
}

func TestGetSummary_PointIDResolvesCoordinate(t *testing.T) {
	f := newFixture(map[types.SourceKind][]types.Station{
		types.SourceTideSurvey: {tideStationAt(1, "DT_0001", 36.05, 129.38)},
	})
	f.lookup.points[7] = &divepoint.Point{
		ID: 7, Name: "Homigot East Wall", Coordinates: types.NewCoords(36.07, 129.57),
	}
	f.tide.fn = func(st types.Station) (*types.TideReading, error) {
		return &types.TideReading{TideLevelCm: types.Float(123)}, nil
	}

	pointID := int64(7)
	got, err := f.service.GetSummary(context.Background(), Request{PointID: &pointID})

	require.NoError(t, err)
	assert.Equal(t, 36.07, got.Location.Latitude)
	assert.Equal(t, 129.57, got.Location.Longitude)
	require.NotNil(t, got.Tide.TideLevelCm)
	assert.Equal(t, 123.0, *got.Tide.TideLevelCm)
}

func TestGetSummary_MissingCoordinateAndPointID(t *testing.T) {
	f := newFixture(nil)

	_, err := f.service.GetSummary(context.Background(), Request{})

	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGetSummary_NoTideStationsIsDegradedSuccess(t *testing.T) {
	f := newFixture(map[types.SourceKind][]types.Station{})

	got, err := f.service.GetSummary(context.Background(), coordReq(36.0, 129.4))

	require.NoError(t, err)
	assert.Nil(t, got.Tide.TideLevelCm)
	assert.Nil(t, got.Tide.ObservedAt)
	assert.Nil(t, got.Location.NearestStations.Tide)
	assert.Empty(t, f.tide.calls)
}

func TestGetSummary_AllProvidersFailingStillSucceeds(t *testing.T) {
	f := newFixture(map[types.SourceKind][]types.Station{
		types.SourceTideSurvey:  {tideStationAt(1, "DT_0001", 36.05, 129.38)},
		types.SourceSeaWeather:  {{ID: 2, Source: types.SourceSeaWeather, ExternalID: "22101", Name: "buoy", Coordinates: types.NewCoords(36.35, 129.78), Active: true}},
		types.SourceWaterColumn: {waterStationAt(3, "W1", 36.1, 129.4)},
	})
	f.tide.fn = func(types.Station) (*types.TideReading, error) { return nil, assert.AnError }
	f.wave.fn = func(types.Station) (*types.WaveReading, error) { return nil, assert.AnError }
	f.water.fn = func(types.Station) (*types.WaterReading, error) { return nil, assert.AnError }

	got, err := f.service.GetSummary(context.Background(), coordReq(36.0, 129.4))

	require.NoError(t, err)
	assert.Equal(t, types.WaterReading{}, got.Water)
	assert.Equal(t, types.WaveReading{}, got.Wave)
	assert.Equal(t, types.TideReading{}, got.Tide)

	// Station metadata still tells the caller which stations were consulted.
	require.NotNil(t, got.Location.NearestStations.Tide)
	assert.Equal(t, "DT_0001", got.Location.NearestStations.Tide.ID)
}

func TestGetSummary_BorrowedDistanceForUncoordinatedWaterStations(t *testing.T) {
	f := newFixture(map[types.SourceKind][]types.Station{
		types.SourceTideSurvey: {
			tideStationAt(1, "DT_0002", 37.0, 130.0),
			tideStationAt(2, "DT_0001", 36.05, 129.45),
		},
		types.SourceWaterColumn: {
			{ID: 3, Source: types.SourceWaterColumn, ExternalID: "W031", Name: "Guryongpo", Active: true},
		},
	})

	got, err := f.service.GetSummary(context.Background(), coordReq(36.0, 129.4))

	require.NoError(t, err)

	// Identity comes from the water source itself; only the distance figure
	// is borrowed from the nearest tide station.
	require.NotNil(t, got.Location.NearestStations.Water)
	assert.Equal(t, "W031", got.Location.NearestStations.Water.ID)
	require.NotNil(t, got.Location.NearestStations.Tide)
	assert.Equal(t, got.Location.NearestStations.Tide.DistanceKm, got.Location.NearestStations.Water.DistanceKm)

	// Uncoordinated stations are never fetched from: the ranked pool is empty.
	assert.Empty(t, f.water.calls)
	assert.Equal(t, types.WaterReading{}, got.Water)
}

func TestGetSummary_MetaAndTimestamp(t *testing.T) {
	f := newFixture(nil)

	got, err := f.service.GetSummary(context.Background(), coordReq(36.0, 129.4))

	require.NoError(t, err)
	assert.Equal(t, testNow, got.Timestamp)
	assert.Equal(t, []string{
		string(types.SourceTideSurvey),
		string(types.SourceSeaWeather),
		string(types.SourceWaterColumn),
	}, got.Meta.RawSources)
	assert.NotEmpty(t, got.Meta.Note)
}

func TestGetSummary_CancelledContextFailsRequest(t *testing.T) {
	f := newFixture(map[types.SourceKind][]types.Station{
		types.SourceTideSurvey: {tideStationAt(1, "DT_0001", 36.05, 129.38)},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.GetSummary(ctx, coordReq(36.0, 129.4))

	require.ErrorIs(t, err, context.Canceled)
}
