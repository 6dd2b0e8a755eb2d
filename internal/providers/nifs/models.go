package nifs

// The water-column feed wraps its rows in the standard open-API envelope.
// One item per depth layer; values arrive as strings.
type envelope struct {
	Header struct {
		ResultCode string `json:"resultCode"`
		ResultMsg  string `json:"resultMsg"`
	} `json:"header"`
	Body struct {
		Item []layerItem `json:"item"`
	} `json:"body"`
}

type layerItem struct {
	Layer           string `json:"obs_lay"`
	WaterTemp       string `json:"wtr_tmp"`
	Salinity        string `json:"sal"`
	DissolvedOxygen string `json:"dox"`
}

// Depth layer codes used by the feed.
const (
	layerSurface = "1"
	layerMid     = "2"
	layerBottom  = "3"
)
