package station

import (
	"sort"

	"dive-marine/internal/geo"
	"dive-marine/internal/types"
)

// Ranked pairs a station with its great-circle distance from the requested
// coordinate.
type Ranked struct {
	Station    types.Station
	DistanceKm float64
}

// RankByDistance filters out stations without a usable coordinate and sorts
// the rest ascending by distance from (lat, lon). Stations carrying the (0,0)
// sentinel are never returned; callers that need a distance figure for an
// uncoordinated source use BorrowDistance instead.
func RankByDistance(candidates []types.Station, lat, lon float64) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for _, st := range candidates {
		if !st.HasCoordinates() {
			continue
		}
		ranked = append(ranked, Ranked{
			Station:    st,
			DistanceKm: geo.DistanceKm(lat, lon, st.Coordinates.Latitude, st.Coordinates.Longitude),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked
}

// BorrowDistance returns the distance figure to report for a source whose
// stations carry no coordinates, standing in the nearest station of another
// source. Only the distance is borrowed; the station identity never is.
func BorrowDistance(from []Ranked) (float64, bool) {
	if len(from) == 0 {
		return 0, false
	}
	return from[0].DistanceKm, true
}
