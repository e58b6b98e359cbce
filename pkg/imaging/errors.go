package imaging

import "errors"

var (
	// ErrDecode indicates the payload is not an image in a registered format.
	ErrDecode = errors.New("imaging: not a decodable image")

	// ErrInvalidDimensions indicates a non-positive target width or height.
	ErrInvalidDimensions = errors.New("imaging: width and height must be positive")

	// ErrTooLarge indicates the source or target exceeds the pixel budget.
	ErrTooLarge = errors.New("imaging: image exceeds pixel budget")

	// ErrUnsupportedFormat indicates a format name with no codec.
	ErrUnsupportedFormat = errors.New("imaging: unsupported format")
)
