package imaging

import (
	"fmt"
	"strings"
)

// Format names an image codec as reported by image.DecodeConfig.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	WebP Format = "webp"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".webp": WebP,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
}

// ParseFormat accepts a format name or common alias such as "jpg".
func ParseFormat(s string) (Format, error) {
	f, ok := extensions["."+strings.ToLower(strings.TrimPrefix(s, "."))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// FormatFromExtension maps a file extension (with or without the dot) to a Format.
func FormatFromExtension(ext string) (Format, bool) {
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Extension returns the canonical file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tiff"
	case PNG, GIF, WebP, BMP:
		return "." + string(f)
	default:
		return ""
	}
}

// MimeType returns the media type for the format.
func (f Format) MimeType() (string, error) {
	switch f {
	case PNG, JPEG, GIF, WebP, BMP, TIFF:
		return "image/" + string(f), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// CanEncode reports whether the format has an encoder.
func (f Format) CanEncode() bool {
	switch f {
	case PNG, JPEG, GIF, BMP, TIFF:
		return true
	default:
		return false
	}
}
