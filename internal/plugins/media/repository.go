package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// ImageRepository defines the data access contract for images.
type ImageRepository interface {
	// Create inserts img and sets its ID.
	Create(ctx context.Context, img *Image) error

	// FindByID returns an image or a NotFound AppError.
	FindByID(ctx context.Context, id int) (*Image, error)

	// Delete removes an image row. Missing rows are not an error.
	Delete(ctx context.Context, id int) error
}

// imageRepository implements ImageRepository with MariaDB queries.
type imageRepository struct {
	db *sql.DB
}

// NewImageRepository creates a new image repository.
func NewImageRepository(db *sql.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, img *Image) error {
	query := `INSERT INTO images
	          (filename, original_name, mime_type, file_size, thumbnail, citation_id, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`

	thumb := sql.NullString{String: img.Thumbnail, Valid: img.Thumbnail != ""}
	result, err := r.db.ExecContext(ctx, query,
		img.Filename, img.OriginalName, img.MimeType, img.FileSize,
		thumb, img.CitationID, img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting image: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	img.ID = int(id)
	return nil
}

func (r *imageRepository) FindByID(ctx context.Context, id int) (*Image, error) {
	query := `SELECT id, filename, original_name, mime_type, file_size,
	                 COALESCE(thumbnail, ''), citation_id, created_at
	          FROM images WHERE id = ?`

	var img Image
	var citationID sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&img.ID, &img.Filename, &img.OriginalName, &img.MimeType, &img.FileSize,
		&img.Thumbnail, &citationID, &img.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("image not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying image by id: %w", err)
	}
	if citationID.Valid {
		cid := int(citationID.Int64)
		img.CitationID = &cid
	}
	return &img, nil
}

func (r *imageRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}
