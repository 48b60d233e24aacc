package imaging

import (
	"errors"
	"fmt"
)

// ErrNoRows indicates the image is too short to hold a single row of stitches
// at the requested gauge.
var ErrNoRows = errors.New("image too short for a single row of stitches")

// ErrRowsTooThin indicates a gauge whose rows would be less than one source
// pixel tall.
var ErrRowsTooThin = errors.New("gauge gives rows thinner than one pixel")

// InputNotFoundError reports an input image that could not be opened.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *InputNotFoundError) Unwrap() error {
	return e.Err
}

// EmptyRegionError reports a sampling region that maps to zero source pixels.
type EmptyRegionError struct {
	Region Region
}

func (e *EmptyRegionError) Error() string {
	return fmt.Sprintf("sampling region (%d,%d)-(%d,%d) contains no pixels",
		e.Region.X1, e.Region.Y1, e.Region.X2, e.Region.Y2)
}
