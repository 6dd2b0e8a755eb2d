package summary

import (
	"time"

	"dive-marine/internal/types"
)

// Request identifies the point to summarize. Exactly one of coordinate or
// dive point id must be resolvable.
type Request struct {
	Latitude  *float64
	Longitude *float64
	PointID   *int64
}

// NearestStation is the user-facing metadata for the closest station of one
// source, independent of which station eventually supplied the data.
type NearestStation struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distanceKm"`
}

// NearestStations groups the per-source nearest station metadata. A nil entry
// means the source has no active stations at all.
type NearestStations struct {
	Tide  *NearestStation `json:"tide,omitempty"`
	Wave  *NearestStation `json:"wave,omitempty"`
	Water *NearestStation `json:"water,omitempty"`
}

type Location struct {
	Latitude        float64         `json:"lat"`
	Longitude       float64         `json:"lon"`
	NearestStations NearestStations `json:"nearestStations"`
}

type Meta struct {
	RawSources []string `json:"rawSources"`
	Note       string   `json:"note"`
}

// Summary is the combined best-effort answer for one request. Metric groups
// may be entirely null; that is a degraded success, not an error.
type Summary struct {
	Location  Location           `json:"location"`
	Timestamp time.Time          `json:"timestamp"`
	Water     types.WaterReading `json:"water"`
	Wave      types.WaveReading  `json:"wave"`
	Tide      types.TideReading  `json:"tide"`
	Meta      Meta               `json:"meta"`
}
