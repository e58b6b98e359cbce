package images

import (
	"fmt"
	"time"

	"github.com/JaimeStill/image-lab/pkg/query"
	"github.com/JaimeStill/image-lab/pkg/repository"
)

// newProjection maps images columns for the dialect. SQLite has no schemas.
func newProjection(d query.Dialect) *query.ProjectionMap {
	schema := "public"
	if d == query.SQLite {
		schema = ""
	}
	return query.NewProjectionMap(schema, "images", "i").
		Project("id", "ID").
		Project("title", "Title").
		Project("filename", "Filename").
		Project("width", "Width").
		Project("height", "Height").
		Project("created_at", "CreatedAt").
		Project("seq", "Seq")
}

// defaultSort orders newest first; seq breaks createdAt ties by insertion order.
var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "Seq", Descending: true},
}

func scanImage(s repository.Scanner) (Image, error) {
	var img Image
	err := s.Scan(
		&img.ID,
		&img.Title,
		&img.Filename,
		&img.Width,
		&img.Height,
		timestamp{&img.CreatedAt},
		&img.seq,
	)
	return img, err
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
}

// timestamp scans time columns into UTC whether the driver returns
// time.Time or text.
type timestamp struct {
	t *time.Time
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
