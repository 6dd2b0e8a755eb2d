package types

// SourceKind identifies one of the upstream marine observation feeds.
type SourceKind string

const (
	// SourceTideSurvey is the tide-level observation network (KHOA).
	SourceTideSurvey SourceKind = "khoa-tide-survey"
	// SourceSeaWeather is the sea-surface weather buoy network (KMA).
	SourceSeaWeather SourceKind = "kma-sea-weather"
	// SourceWaterColumn is the water temperature/salinity network (NIFS).
	// Its upstream feed reports no station coordinates.
	SourceWaterColumn SourceKind = "nifs-water-column"
)

// AllSourceKinds returns the three feeds in the order they appear in
// summary metadata.
func AllSourceKinds() []SourceKind {
	return []SourceKind{SourceTideSurvey, SourceSeaWeather, SourceWaterColumn}
}
