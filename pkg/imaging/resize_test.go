package imaging_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/JaimeStill/image-lab/pkg/imaging"
)

func onePixelPNG(t *testing.T) []byte {
	return encodePNG(t, image.NewRGBA(image.Rect(0, 0, 1, 1)))
}

// splitImage is left half red, right half blue.
func splitImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.RGBA{R: 255, A: 255}
			if x >= w/2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() failed: %v", err)
	}
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("jpeg.Encode() failed: %v", err)
	}
	return buf.Bytes()
}

func encodeGIF(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("gif.Encode() failed: %v", err)
	}
	return buf.Bytes()
}

func TestResize_ExactDimensions(t *testing.T) {
	r := imaging.New(imaging.Options{})

	tests := []struct {
		name   string
		data   func(*testing.T) []byte
		width  int
		height int
		format imaging.Format
		want   imaging.Format
	}{
		{"upscale 1x1 png", onePixelPNG, 40, 30, imaging.PNG, imaging.PNG},
		{"landscape to square", func(t *testing.T) []byte { return encodePNG(t, splitImage(200, 100)) }, 50, 50, imaging.JPEG, imaging.JPEG},
		{"portrait jpeg to wide", func(t *testing.T) []byte { return encodeJPEG(t, splitImage(60, 120)) }, 90, 20, imaging.JPEG, imaging.JPEG},
		{"gif keeps gif", func(t *testing.T) []byte { return encodeGIF(t, splitImage(32, 32)) }, 16, 8, imaging.GIF, imaging.GIF},
		{"to bmp", onePixelPNG, 7, 3, imaging.BMP, imaging.BMP},
		{"to tiff", onePixelPNG, 5, 5, imaging.TIFF, imaging.TIFF},
		{"empty format uses source", func(t *testing.T) []byte { return encodeJPEG(t, splitImage(10, 10)) }, 4, 4, "", imaging.JPEG},
		{"webp falls back to source", func(t *testing.T) []byte { return encodeJPEG(t, splitImage(10, 10)) }, 4, 4, imaging.WebP, imaging.JPEG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Resize(tt.data(t), tt.width, tt.height, tt.format)
			if err != nil {
				t.Fatalf("Resize() failed: %v", err)
			}

			if res.Format != tt.want {
				t.Errorf("Format = %q, want %q", res.Format, tt.want)
			}
			if res.Width != tt.width || res.Height != tt.height {
				t.Errorf("Result size = %dx%d, want %dx%d", res.Width, res.Height, tt.width, tt.height)
			}

			format, cfg, err := imaging.Sniff(res.Data)
			if err != nil {
				t.Fatalf("Sniff() output failed: %v", err)
			}
			if format != tt.want {
				t.Errorf("encoded format = %q, want %q", format, tt.want)
			}
			if cfg.Width != tt.width || cfg.Height != tt.height {
				t.Errorf("encoded size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.width, tt.height)
			}
		})
	}
}

func TestResize_CentreCrop(t *testing.T) {
	r := imaging.New(imaging.Options{})

	res, err := r.Resize(encodePNG(t, splitImage(200, 100)), 100, 100, imaging.PNG)
	if err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("png.Decode() failed: %v", err)
	}

	left := color.RGBAModel.Convert(img.At(10, 50)).(color.RGBA)
	right := color.RGBAModel.Convert(img.At(90, 50)).(color.RGBA)

	if left.R < 200 || left.B > 50 {
		t.Errorf("left pixel = %+v, want red", left)
	}
	if right.B < 200 || right.R > 50 {
		t.Errorf("right pixel = %+v, want blue", right)
	}
}

func TestCoverRect(t *testing.T) {
	tests := []struct {
		name   string
		bounds image.Rectangle
		w, h   int
		want   image.Rectangle
	}{
		{"wide source", image.Rect(0, 0, 200, 100), 100, 100, image.Rect(50, 0, 150, 100)},
		{"tall source", image.Rect(0, 0, 100, 300), 100, 100, image.Rect(0, 100, 100, 200)},
		{"same ratio", image.Rect(0, 0, 80, 40), 40, 20, image.Rect(0, 0, 80, 40)},
		{"offset bounds", image.Rect(10, 10, 30, 20), 1, 1, image.Rect(15, 10, 25, 20)},
		{"1x1 to wide", image.Rect(0, 0, 1, 1), 40, 30, image.Rect(0, 0, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := imaging.CoverRect(tt.bounds, tt.w, tt.h); got != tt.want {
				t.Errorf("CoverRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResize_Errors(t *testing.T) {
	r := imaging.New(imaging.Options{MaxPixels: 1000})
	fixture := onePixelPNG(t)

	tests := []struct {
		name   string
		data   []byte
		width  int
		height int
		want   error
	}{
		{"zero width", fixture, 0, 10, imaging.ErrInvalidDimensions},
		{"negative height", fixture, 10, -1, imaging.ErrInvalidDimensions},
		{"not an image", []byte("definitely not pixels"), 10, 10, imaging.ErrDecode},
		{"empty payload", nil, 10, 10, imaging.ErrDecode},
		{"target over budget", fixture, 100, 100, imaging.ErrTooLarge},
		{"source over budget", encodePNG(t, splitImage(50, 50)), 10, 10, imaging.ErrTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resize(tt.data, tt.width, tt.height, imaging.PNG)
			if !errors.Is(err, tt.want) {
				t.Errorf("Resize() error = %v, want %v", err, tt.want)
			}
		})
	}
}
