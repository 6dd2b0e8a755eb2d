package station

import (
	"context"

	"dive-marine/internal/types"
)

// Registry provides read access to the known observation stations. The
// aggregation engine never writes through this interface; rows come from the
// bootstrap loader.
type Registry interface {
	ListActiveStations(ctx context.Context, kind types.SourceKind) ([]types.Station, error)
}
