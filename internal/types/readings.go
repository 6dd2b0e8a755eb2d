package types

import "time"

// Readings are normalized, possibly-partial observations for one metric
// family. Every field is a pointer: nil means the provider did not measure
// the value, which is an expected outcome and distinct from a fetch error.

// WaterReading holds water-column temperature and chemistry values.
type WaterReading struct {
	MidLayerTempC   *float64 `json:"midLayerTempC"`
	SurfaceTempC    *float64 `json:"surfaceTempC"`
	Salinity        *float64 `json:"salinity"`
	DissolvedOxygen *float64 `json:"dissolvedOxygen"`
}

// HasPrimary reports whether the reading carries at least one of the fields
// that define the water family. A reading without them is useless for
// fallback purposes even if salinity or oxygen are present.
func (r WaterReading) HasPrimary() bool {
	return r.MidLayerTempC != nil || r.SurfaceTempC != nil
}

// WaveReading holds sea-surface weather values from a buoy.
type WaveReading struct {
	SignificantWaveHeightM *float64 `json:"significantWaveHeightM"`
	WindDirectionDeg       *float64 `json:"windDirectionDeg"`
	WindSpeedMs            *float64 `json:"windSpeedMs"`
}

// HasPrimary reports whether the reading carries wind data. Wave height alone
// does not make a buoy reading usable, but it is preserved during fallback.
func (r WaveReading) HasPrimary() bool {
	return r.WindDirectionDeg != nil || r.WindSpeedMs != nil
}

// TideReading holds the latest tide level observation.
type TideReading struct {
	TideLevelCm *float64   `json:"tideLevelCm"`
	ObservedAt  *time.Time `json:"observedAt"`
}

// HasPrimary reports whether the reading carries a tide level.
func (r TideReading) HasPrimary() bool {
	return r.TideLevelCm != nil
}

// Float returns a pointer to v. Convenience for building readings.
func Float(v float64) *float64 {
	return &v
}
