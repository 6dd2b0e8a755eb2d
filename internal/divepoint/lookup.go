package divepoint

import (
	"context"
	"errors"

	"dive-marine/internal/types"
)

// ErrNotFound is returned when the requested dive point id does not exist.
var ErrNotFound = errors.New("dive point not found")

// Point is a named dive site with a fixed coordinate.
type Point struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Coordinates types.Coords `json:"coordinates"`
}

// Lookup resolves dive point ids to coordinates.
type Lookup interface {
	FindByID(ctx context.Context, id int64) (*Point, error)
}
