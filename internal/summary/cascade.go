package summary

import (
	"context"
	"log/slog"

	"dive-marine/internal/observability"
	"dive-marine/internal/station"
	"dive-marine/internal/types"
)

// fetchFunc is the uniform shape of one adapter call. A nil reading without
// an error means the provider answered but had nothing for the station.
type fetchFunc[R any] func(context.Context, types.Station) (*R, error)

// runCascade walks distance-ranked candidates for one metric family until a
// usable reading turns up or the attempt bound is reached. extraAttempts
// bounds the walk beyond the first candidate; each attempt targets a
// different station, so no backoff is needed. Adapter errors and empty
// answers are recovered here and never escape. A useless reading (primary
// fields all nil) is kept and merged so its secondary values survive the
// walk.
func runCascade[R any](
	ctx context.Context,
	source types.SourceKind,
	candidates []station.Ranked,
	extraAttempts int,
	fetch fetchFunc[R],
	usable func(*R) bool,
	merge func(acc, next *R) *R,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *R {
	var acc *R
	maxAttempts := extraAttempts + 1

	attempts := 0
	for _, candidate := range candidates {
		if attempts >= maxAttempts || ctx.Err() != nil {
			break
		}
		attempts++

		reading, err := fetch(ctx, candidate.Station)
		switch {
		case err != nil:
			metrics.ProviderFetches.WithLabelValues(string(source), observability.OutcomeError).Inc()
			logger.Warn("provider fetch failed, trying next station",
				"source", source,
				"station", candidate.Station.ExternalID,
				"distance_km", candidate.DistanceKm,
				"error", err,
			)
		case reading == nil:
			metrics.ProviderFetches.WithLabelValues(string(source), observability.OutcomeNoData).Inc()
			logger.Debug("provider had no data for station",
				"source", source,
				"station", candidate.Station.ExternalID,
			)
		case usable(reading):
			metrics.ProviderFetches.WithLabelValues(string(source), observability.OutcomeSuccess).Inc()
			metrics.FallbackDepth.WithLabelValues(string(source)).Observe(float64(attempts))
			return merge(acc, reading)
		default:
			metrics.ProviderFetches.WithLabelValues(string(source), observability.OutcomeNoData).Inc()
			logger.Debug("reading missing primary fields, trying next station",
				"source", source,
				"station", candidate.Station.ExternalID,
			)
			acc = merge(acc, reading)
		}
	}

	if attempts > 0 {
		metrics.FallbackDepth.WithLabelValues(string(source)).Observe(float64(attempts))
	}
	return acc
}

// The merge helpers fill nil fields of the newer reading from the older
// accumulated one, so a station that had wave height but no wind still
// contributes its wave height after a later station supplies the wind.

func mergeWater(acc, next *types.WaterReading) *types.WaterReading {
	if acc == nil {
		return next
	}
	if next == nil {
		return acc
	}
	merged := *next
	if merged.MidLayerTempC == nil {
		merged.MidLayerTempC = acc.MidLayerTempC
	}
	if merged.SurfaceTempC == nil {
		merged.SurfaceTempC = acc.SurfaceTempC
	}
	if merged.Salinity == nil {
		merged.Salinity = acc.Salinity
	}
	if merged.DissolvedOxygen == nil {
		merged.DissolvedOxygen = acc.DissolvedOxygen
	}
	return &merged
}

func mergeWave(acc, next *types.WaveReading) *types.WaveReading {
	if acc == nil {
		return next
	}
	if next == nil {
		return acc
	}
	merged := *next
	if merged.SignificantWaveHeightM == nil {
		merged.SignificantWaveHeightM = acc.SignificantWaveHeightM
	}
	if merged.WindDirectionDeg == nil {
		merged.WindDirectionDeg = acc.WindDirectionDeg
	}
	if merged.WindSpeedMs == nil {
		merged.WindSpeedMs = acc.WindSpeedMs
	}
	return &merged
}

func mergeTide(acc, next *types.TideReading) *types.TideReading {
	if acc == nil {
		return next
	}
	if next == nil {
		return acc
	}
	merged := *next
	if merged.TideLevelCm == nil {
		merged.TideLevelCm = acc.TideLevelCm
	}
	if merged.ObservedAt == nil {
		merged.ObservedAt = acc.ObservedAt
	}
	return &merged
}
