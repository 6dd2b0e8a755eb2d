package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"dive-marine/internal/divepoint"
	"dive-marine/internal/observability"
	"dive-marine/internal/station"
	"dive-marine/internal/types"
)

// ErrInvalidRequest is returned when neither a coordinate nor a resolvable
// dive point id was supplied. It is the only request-fatal error besides
// caller cancellation; every upstream failure degrades into null fields.
var ErrInvalidRequest = errors.New("request must carry a coordinate or a known dive point id")

const disclaimer = "Values are unvalidated real-time observations and may be missing or revised. Do not use for navigation or safety decisions."

// TideProvider fetches the latest tide-level observation for a station.
// A nil reading without an error means the feed had nothing for the station.
type TideProvider interface {
	FetchLatest(ctx context.Context, st types.Station) (*types.TideReading, error)
}

// WaveProvider fetches the latest sea-surface weather observation.
type WaveProvider interface {
	FetchLatest(ctx context.Context, st types.Station) (*types.WaveReading, error)
}

// WaterProvider fetches the latest water-column observation.
type WaterProvider interface {
	FetchLatest(ctx context.Context, st types.Station) (*types.WaterReading, error)
}

// FallbackBounds caps how many alternate stations each family may consult
// beyond the nearest one. The buoy and water-column feeds have known coverage
// gaps; the tide network is dense enough that one miss means "no data".
type FallbackBounds struct {
	WaveExtraAttempts  int
	WaterExtraAttempts int
}

func DefaultFallbackBounds() FallbackBounds {
	return FallbackBounds{
		WaveExtraAttempts:  9,
		WaterExtraAttempts: 1,
	}
}

type Service interface {
	GetSummary(ctx context.Context, req Request) (*Summary, error)
}

type summaryService struct {
	registry station.Registry
	points   divepoint.Lookup
	tide     TideProvider
	wave     WaveProvider
	water    WaterProvider
	bounds   FallbackBounds
	metrics  *observability.Metrics
	clock    clockwork.Clock
	logger   *slog.Logger
}

func NewService(
	registry station.Registry,
	points divepoint.Lookup,
	tide TideProvider,
	wave WaveProvider,
	water WaterProvider,
	bounds FallbackBounds,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	logger *slog.Logger,
) Service {
	return &summaryService{
		registry: registry,
		points:   points,
		tide:     tide,
		wave:     wave,
		water:    water,
		bounds:   bounds,
		metrics:  metrics,
		clock:    clock,
		logger:   logger.With("component", "summary-service"),
	}
}

// GetSummary resolves the request to a coordinate, picks the nearest station
// per source, and runs the three metric families through their fallback
// cascades concurrently. Missing data never fails the request.
func (s *summaryService) GetSummary(ctx context.Context, req Request) (*Summary, error) {
	coords, err := s.resolveCoordinate(ctx, req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			s.metrics.SummaryRequests.WithLabelValues("invalid").Inc()
		} else {
			s.metrics.SummaryRequests.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	tidePool := s.listStations(ctx, types.SourceTideSurvey)
	wavePool := s.listStations(ctx, types.SourceSeaWeather)
	waterPool := s.listStations(ctx, types.SourceWaterColumn)

	tideRanked := station.RankByDistance(tidePool, coords.Latitude, coords.Longitude)
	waveRanked := station.RankByDistance(wavePool, coords.Latitude, coords.Longitude)
	waterRanked := station.RankByDistance(waterPool, coords.Latitude, coords.Longitude)

	// The three families are independent; fetch them concurrently and join.
	var (
		wg    sync.WaitGroup
		water types.WaterReading
		wave  types.WaveReading
		tide  types.TideReading
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		water = s.fetchWater(ctx, waterRanked)
	}()
	go func() {
		defer wg.Done()
		wave = s.fetchWave(ctx, waveRanked)
	}()
	go func() {
		defer wg.Done()
		tide = s.fetchTide(ctx, tideRanked)
	}()
	wg.Wait()

	// A cancelled or timed-out request is all-or-nothing: no partial summary.
	if err := ctx.Err(); err != nil {
		s.metrics.SummaryRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	s.metrics.SummaryRequests.WithLabelValues("ok").Inc()

	return &Summary{
		Location: Location{
			Latitude:        coords.Latitude,
			Longitude:       coords.Longitude,
			NearestStations: s.nearestStations(tideRanked, waveRanked, waterRanked, waterPool),
		},
		Timestamp: s.clock.Now().UTC(),
		Water:     water,
		Wave:      wave,
		Tide:      tide,
		Meta: Meta{
			RawSources: rawSources(),
			Note:       disclaimer,
		},
	}, nil
}

func (s *summaryService) resolveCoordinate(ctx context.Context, req Request) (types.Coords, error) {
	if req.PointID != nil {
		p, err := s.points.FindByID(ctx, *req.PointID)
		if errors.Is(err, divepoint.ErrNotFound) {
			return types.Coords{}, fmt.Errorf("%w: dive point %d", ErrInvalidRequest, *req.PointID)
		}
		if err != nil {
			return types.Coords{}, fmt.Errorf("resolve dive point %d: %w", *req.PointID, err)
		}
		return p.Coordinates, nil
	}

	if req.Latitude != nil && req.Longitude != nil {
		return types.NewCoords(*req.Latitude, *req.Longitude), nil
	}

	return types.Coords{}, ErrInvalidRequest
}

// listStations treats a registry failure as an empty pool: a broken station
// store degrades the answer the same way absent stations do.
func (s *summaryService) listStations(ctx context.Context, kind types.SourceKind) []types.Station {
	stations, err := s.registry.ListActiveStations(ctx, kind)
	if err != nil {
		s.logger.Warn("station registry lookup failed", "source", kind, "error", err)
		return nil
	}
	return stations
}

func (s *summaryService) fetchWater(ctx context.Context, ranked []station.Ranked) types.WaterReading {
	r := runCascade(ctx, types.SourceWaterColumn, ranked, s.bounds.WaterExtraAttempts,
		s.water.FetchLatest,
		func(r *types.WaterReading) bool { return r.HasPrimary() },
		mergeWater, s.metrics, s.logger)
	if r == nil {
		return types.WaterReading{}
	}
	return *r
}

func (s *summaryService) fetchWave(ctx context.Context, ranked []station.Ranked) types.WaveReading {
	r := runCascade(ctx, types.SourceSeaWeather, ranked, s.bounds.WaveExtraAttempts,
		s.wave.FetchLatest,
		func(r *types.WaveReading) bool { return r.HasPrimary() },
		mergeWave, s.metrics, s.logger)
	if r == nil {
		return types.WaveReading{}
	}
	return *r
}

func (s *summaryService) fetchTide(ctx context.Context, ranked []station.Ranked) types.TideReading {
	// Tide stations are dense and reliable; one miss means "no data now",
	// not "wrong station", so the cascade gets no extra attempts.
	r := runCascade(ctx, types.SourceTideSurvey, ranked, 0,
		s.tide.FetchLatest,
		func(r *types.TideReading) bool { return r.HasPrimary() },
		mergeTide, s.metrics, s.logger)
	if r == nil {
		return types.TideReading{}
	}
	return *r
}

// nearestStations builds the per-source metadata from the primary ranking.
// The water-column feed reports no station coordinates, so when its ranked
// pool is empty the distance figure is borrowed from the nearest tide-survey
// station; the station identity stays the water source's own.
func (s *summaryService) nearestStations(tideRanked, waveRanked, waterRanked []station.Ranked, waterPool []types.Station) NearestStations {
	var ns NearestStations
	if len(tideRanked) > 0 {
		ns.Tide = toNearest(tideRanked[0])
	}
	if len(waveRanked) > 0 {
		ns.Wave = toNearest(waveRanked[0])
	}
	if len(waterRanked) > 0 {
		ns.Water = toNearest(waterRanked[0])
	} else if len(waterPool) > 0 {
		if d, ok := station.BorrowDistance(tideRanked); ok {
			ns.Water = &NearestStation{
				ID:         waterPool[0].ExternalID,
				Name:       waterPool[0].Name,
				DistanceKm: d,
			}
		}
	}
	return ns
}

func toNearest(r station.Ranked) *NearestStation {
	return &NearestStation{
		ID:         r.Station.ExternalID,
		Name:       r.Station.Name,
		DistanceKm: r.DistanceKm,
	}
}

func rawSources() []string {
	kinds := types.AllSourceKinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}
