package imgprev

import "errors"

var (
	// ErrFileNotFound is returned when the input path cannot be opened
	ErrFileNotFound = errors.New("file not found")

	// ErrNotAnImage is returned when the input does not carry a PNG signature.
	// Callers may convert the input to PNG and try again.
	ErrNotAnImage = errors.New("not a png image")

	// ErrUnsupportedFormat is returned for PNGs that are not 8-bit RGB or RGBA
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidGeometry is returned when the terminal or image has no area
	ErrInvalidGeometry = errors.New("invalid geometry")
)
