package khoa

// tideRecord is one row of the tide-level feed. The API answers with a plain
// JSON array of these, oldest first. All values arrive as strings.
type tideRecord struct {
	ObsTime   string `json:"obs_time"`
	TideLevel string `json:"tide_level"`
}
