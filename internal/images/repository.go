package images

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/image-lab/pkg/query"
	"github.com/JaimeStill/image-lab/pkg/repository"
)

// Repository persists and queries image metadata.
type Repository interface {
	// Create inserts img, assigning ID and CreatedAt when unset.
	Create(ctx context.Context, img *Image) (*Image, error)

	// FindPage returns the 1-based page of records matching filters, newest
	// first, with the total match count independent of the window.
	FindPage(ctx context.Context, filters Filters, page, limit int) ([]Image, int, error)

	// FindByID returns ErrNotFound when no record has id.
	FindByID(ctx context.Context, id uuid.UUID) (*Image, error)
}

type repo struct {
	db         *sql.DB
	dialect    query.Dialect
	projection *query.ProjectionMap
	insertSQL  string
}

// NewRepository creates a SQL repository for the given dialect.
func NewRepository(db *sql.DB, dialect query.Dialect) Repository {
	insert := fmt.Sprintf(
		"INSERT INTO images (id, title, filename, width, height, created_at) VALUES (%s) "+
			"RETURNING id, title, filename, width, height, created_at, seq",
		strings.Join(dialect.Placeholders(1, 6), ", "),
	)
	return &repo{
		db:         db,
		dialect:    dialect,
		projection: newProjection(dialect),
		insertSQL:  insert,
	}
}

func (r *repo) Create(ctx context.Context, img *Image) (*Image, error) {
	id := img.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := img.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	args := []any{id.String(), img.Title, img.Filename, img.Width, img.Height, createdAt}
	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Image, error) {
		return repository.QueryOne(ctx, tx, r.insertSQL, args, scanImage)
	})
	if err != nil {
		return nil, mapError("insert image", err)
	}

	return &created, nil
}

func (r *repo) FindPage(ctx context.Context, filters Filters, page, limit int) ([]Image, int, error) {
	qb := query.NewBuilder(r.projection, defaultSort...).WithDialect(r.dialect)
	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: count images: %w", ErrPersistence, err)
	}

	pageSQL, pageArgs := qb.BuildPage(page, limit)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanImage)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: query images: %w", ErrPersistence, err)
	}

	return items, total, nil
}

func (r *repo) FindByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	q, args := query.NewBuilder(r.projection).WithDialect(r.dialect).BuildSingle("ID", id.String())
	img, err := repository.QueryOne(ctx, r.db, q, args, scanImage)
	if err != nil {
		return nil, mapError("find image", err)
	}
	return &img, nil
}

// mapError translates driver errors. Unmapped faults wrap ErrPersistence.
func mapError(op string, err error) error {
	switch mapped := repository.MapError(err, ErrNotFound, ErrDuplicate); mapped {
	case ErrNotFound, ErrDuplicate:
		return mapped
	default:
		return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
	}
}
