package types

type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// IsZero reports whether the coordinate is the (0,0) sentinel used for
// stations whose feed never reports a location.
func (c Coords) IsZero() bool {
	return c.Latitude == 0 && c.Longitude == 0
}
