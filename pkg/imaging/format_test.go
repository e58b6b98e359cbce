package imaging_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/image-lab/pkg/imaging"
)

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want imaging.Format
		ok   bool
	}{
		{".png", imaging.PNG, true},
		{".JPG", imaging.JPEG, true},
		{"jpeg", imaging.JPEG, true},
		{".tif", imaging.TIFF, true},
		{".webp", imaging.WebP, true},
		{".heic", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, ok := imaging.FormatFromExtension(tt.ext)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FormatFromExtension(%q) = %q, %v; want %q, %v", tt.ext, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFormat_ExtensionAndMimeType(t *testing.T) {
	tests := []struct {
		format imaging.Format
		ext    string
		mime   string
	}{
		{imaging.PNG, ".png", "image/png"},
		{imaging.JPEG, ".jpg", "image/jpeg"},
		{imaging.GIF, ".gif", "image/gif"},
		{imaging.TIFF, ".tiff", "image/tiff"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.Extension(); got != tt.ext {
				t.Errorf("Extension() = %q, want %q", got, tt.ext)
			}
			mime, err := tt.format.MimeType()
			if err != nil {
				t.Fatalf("MimeType() failed: %v", err)
			}
			if mime != tt.mime {
				t.Errorf("MimeType() = %q, want %q", mime, tt.mime)
			}
		})
	}

	if _, err := imaging.Format("heic").MimeType(); !errors.Is(err, imaging.ErrUnsupportedFormat) {
		t.Errorf("MimeType(heic) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormat_CanEncode(t *testing.T) {
	if imaging.WebP.CanEncode() {
		t.Error("WebP.CanEncode() = true, want false")
	}
	if !imaging.PNG.CanEncode() {
		t.Error("PNG.CanEncode() = false, want true")
	}
}
