package timelines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// MetaRepository defines the data access contract for timeline metadata
// and themes.
type MetaRepository interface {
	// FindBySlug returns the metadata row for slug, or a NotFound AppError.
	FindBySlug(ctx context.Context, slug string) (*Meta, error)

	// List returns every registered timeline ordered by title.
	List(ctx context.Context) ([]Meta, error)

	// ListThemes returns every theme ordered by slug.
	ListThemes(ctx context.Context) ([]Theme, error)
}

// metaRepository implements MetaRepository with hand-written MariaDB SQL.
type metaRepository struct {
	db *sql.DB
}

// NewMetaRepository creates a MetaRepository backed by db.
func NewMetaRepository(db *sql.DB) MetaRepository {
	return &metaRepository{db: db}
}

func (r *metaRepository) FindBySlug(ctx context.Context, slug string) (*Meta, error) {
	query := `SELECT id, slug, title, subtitle, description
	          FROM timeline_meta WHERE slug = ?`

	var m Meta
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&m.ID, &m.Slug, &m.Title, &m.Subtitle, &m.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("timeline not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying timeline meta by slug: %w", err)
	}
	return &m, nil
}

func (r *metaRepository) List(ctx context.Context) ([]Meta, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, slug, title, subtitle, description FROM timeline_meta ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("listing timeline meta: %w", err)
	}
	defer rows.Close()

	var metas []Meta
	for rows.Next() {
		var m Meta
		if err := rows.Scan(&m.ID, &m.Slug, &m.Title, &m.Subtitle, &m.Description); err != nil {
			return nil, fmt.Errorf("scanning timeline meta: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

func (r *metaRepository) ListThemes(ctx context.Context) ([]Theme, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slug, name FROM themes ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("listing themes: %w", err)
	}
	defer rows.Close()

	var themes []Theme
	for rows.Next() {
		var t Theme
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning theme: %w", err)
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}
