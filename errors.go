package ici

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF is returned when a byte stream ends before the
	// structure it declares is complete.
	ErrUnexpectedEOF = errors.New("ici: unexpected end of data")
	// ErrInvalidTag is returned for an unrecognized palette tag byte.
	ErrInvalidTag = errors.New("ici: invalid palette tag")
	// ErrInvalidUTF8 is returned when a palette name is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("ici: palette name is not valid UTF-8")
	// ErrDimensionMismatch is returned when the pixel data of a static
	// image does not match its declared width and height.
	ErrDimensionMismatch = errors.New("ici: pixel data does not match dimensions")
	// ErrFrameSizeMismatch is returned when the frame data of an animated
	// image does not match its declared frame count and dimensions.
	ErrFrameSizeMismatch = errors.New("ici: frame data does not match frame count")
	// ErrIndexOutOfRange is returned when a frame, pixel or palette index
	// is beyond the relevant bound.
	ErrIndexOutOfRange = errors.New("ici: index out of range")
	// ErrInvalidDuration is returned for a zero or negative frame duration.
	ErrInvalidDuration = errors.New("ici: frame duration must be positive")
)

// CountError reports a count or length outside its allowed bounds, such as
// an empty palette name or a zero image dimension.
type CountError struct {
	What     string
	Min, Max int
	Actual   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("ici: %s must be %d-%d, got %d", e.What, e.Min, e.Max, e.Actual)
}

func checkCount(what string, n int) error {
	if n < 1 || n > 255 {
		return &CountError{What: what, Min: 1, Max: 255, Actual: n}
	}
	return nil
}
