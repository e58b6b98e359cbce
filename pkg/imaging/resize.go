// Package imaging decodes, cover-resizes, and re-encodes raster images.
//
// Source format is sniffed from content through the image registry; PNG,
// JPEG, GIF, WebP, BMP, and TIFF decoders are registered. Resizing scales the
// source by max(W/w, H/h) and centre-crops to exactly W×H using Catmull-Rom
// resampling, so upscaling is permitted and aspect ratio is never distorted.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Defaults applied by New for zero-valued options.
const (
	DefaultJPEGQuality = 90
	DefaultMaxPixels   = 50_000_000
)

// Options tunes encoding and allocation limits.
type Options struct {
	// JPEGQuality is the encoder quality, 1 to 100.
	JPEGQuality int

	// MaxPixels bounds both the decoded source and the target canvas.
	MaxPixels int
}

// Result is an encoded, resized image.
type Result struct {
	Data   []byte
	Format Format
	Source Format
	Width  int
	Height int
}

// Resizer performs cover resizes. It holds no mutable state and is safe for concurrent use.
type Resizer struct {
	opts Options
}

// New creates a Resizer, defaulting unset options.
func New(opts Options) *Resizer {
	if opts.JPEGQuality < 1 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = DefaultJPEGQuality
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = DefaultMaxPixels
	}
	return &Resizer{opts: opts}
}

// Sniff reports the format and pixel size of data without decoding pixels.
func Sniff(data []byte) (Format, image.Config, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", image.Config{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return Format(name), cfg, nil
}

// Resize decodes data and produces a width×height image encoded as format.
// An empty format or one without an encoder falls back to the source format,
// and to PNG when the source cannot be encoded either.
func (r *Resizer) Resize(data []byte, width, height int, format Format) (Result, error) {
	if width <= 0 || height <= 0 {
		return Result{}, ErrInvalidDimensions
	}
	if int64(width)*int64(height) > int64(r.opts.MaxPixels) {
		return Result{}, fmt.Errorf("%w: target %dx%d", ErrTooLarge, width, height)
	}

	source, cfg, err := Sniff(data)
	if err != nil {
		return Result{}, err
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(r.opts.MaxPixels) {
		return Result{}, fmt.Errorf("%w: source %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, CoverRect(src.Bounds(), width, height), draw.Src, nil)

	out := format
	if !out.CanEncode() {
		out = source
		if !out.CanEncode() {
			out = PNG
		}
	}

	encoded, err := r.encode(dst, out)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Data:   encoded,
		Format: out,
		Source: source,
		Width:  width,
		Height: height,
	}, nil
}

// CoverRect returns the largest centred sub-rectangle of bounds whose aspect
// ratio matches width:height.
func CoverRect(bounds image.Rectangle, width, height int) image.Rectangle {
	sw, sh := bounds.Dx(), bounds.Dy()

	cropW, cropH := sw, sh
	if int64(sw)*int64(height) > int64(sh)*int64(width) {
		cropW = max(int((int64(sh)*int64(width)+int64(height)/2)/int64(height)), 1)
	} else {
		cropH = max(int((int64(sw)*int64(height)+int64(width)/2)/int64(width)), 1)
	}

	x0 := bounds.Min.X + (sw-cropW)/2
	y0 := bounds.Min.Y + (sh-cropH)/2
	return image.Rect(x0, y0, x0+cropW, y0+cropH)
}

func (r *Resizer) encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case JPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.opts.JPEGQuality})
	case GIF:
		err = gif.Encode(&buf, img, nil)
	case BMP:
		err = bmp.Encode(&buf, img)
	case TIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(&buf, img)
	}

	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
