// Package images ingests uploaded images, cover-resizes them to a requested
// size, stores the artifact, and serves paginated metadata.
package images

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTitleLength bounds titles in Unicode code points.
const MaxTitleLength = 255

// Image is the persisted metadata for a stored artifact.
type Image struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Filename  string    `json:"filename"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	CreatedAt time.Time `json:"created_at"`

	seq int64
}

// UploadCommand carries a fully buffered upload into Ingest.
type UploadCommand struct {
	Title    string
	Width    int
	Height   int
	Filename string
	Data     []byte
}

// Validate trims the title and checks every field. maxDimension caps width
// and height when positive.
func (c *UploadCommand) Validate(maxDimension int) error {
	c.Title = strings.TrimSpace(c.Title)

	if c.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if n := utf8.RuneCountInString(c.Title); n > MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters, got %d", ErrValidation, MaxTitleLength, n)
	}
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be a positive integer", ErrValidation)
	}
	if c.Height <= 0 {
		return fmt.Errorf("%w: height must be a positive integer", ErrValidation)
	}
	if maxDimension > 0 && (c.Width > maxDimension || c.Height > maxDimension) {
		return fmt.Errorf("%w: width and height must be at most %d", ErrValidation, maxDimension)
	}
	if len(c.Data) == 0 {
		return fmt.Errorf("%w: file is empty", ErrValidation)
	}
	return nil
}

// Response is the client-facing record shape.
type Response struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	URL    string    `json:"url"`
}

// ToResponse projects img with its artifact URL under urlPrefix.
func ToResponse(img Image, urlPrefix string) Response {
	return Response{
		ID:     img.ID,
		Title:  img.Title,
		Width:  img.Width,
		Height: img.Height,
		URL:    strings.TrimSuffix(urlPrefix, "/") + "/" + img.Filename,
	}
}
