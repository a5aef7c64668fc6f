package world

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrResourceLoad is returned (wrapped) when a chunk's construction
	// dependency could not be satisfied.
	ErrResourceLoad = errors.New("chunk resource unavailable")

	// ErrInvalidShift is returned when a window shift delta is not -1 or +1.
	ErrInvalidShift = errors.New("window shift must be -1 or +1")
)

// BackfillError reports the coordinate whose construction aborted a boundary cross.
type BackfillError struct {
	Dir   Direction
	Coord ChunkCoord
	Err   error
}

func (e *BackfillError) Error() string {
	return fmt.Sprintf("backfill %s at %s: %v", e.Dir, e.Coord, e.Err)
}

func (e *BackfillError) Unwrap() error {
	return e.Err
}
