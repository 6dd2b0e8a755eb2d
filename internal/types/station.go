package types

// Station is a fixed observation point operated by one of the upstream feeds.
// Rows are created by the bootstrap loader and are read-only afterwards.
type Station struct {
	ID          int64      `json:"id"`
	Source      SourceKind `json:"source"`
	ExternalID  string     `json:"externalId"`
	Name        string     `json:"name"`
	Coordinates Coords     `json:"coordinates"`
	Active      bool       `json:"active"`
}

// HasCoordinates reports whether the station carries a real location.
// Feeds that never report coordinates store the (0,0) sentinel, which must
// not be treated as a point in the Gulf of Guinea.
func (s Station) HasCoordinates() bool {
	return !s.Coordinates.IsZero()
}
