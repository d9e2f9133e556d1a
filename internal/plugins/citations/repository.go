package citations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// CitationRepository defines the data access contract for citations.
type CitationRepository interface {
	// Create inserts c and sets its ID.
	Create(ctx context.Context, c *Citation) error

	// Update writes every column of c.
	Update(ctx context.Context, c *Citation) error

	// FindByID returns a citation or a NotFound AppError.
	FindByID(ctx context.Context, id int) (*Citation, error)

	// SetType changes only the type column.
	SetType(ctx context.Context, id int, t Type) error
}

// citationRepository implements CitationRepository with MariaDB SQL.
type citationRepository struct {
	db *sql.DB
}

// NewCitationRepository creates a CitationRepository backed by db.
func NewCitationRepository(db *sql.DB) CitationRepository {
	return &citationRepository{db: db}
}

// Columns selects a citation row in Scan order. Shared with the events
// repository, which joins citations onto events.
const Columns = `c.id, c.title, COALESCE(c.caselaw_citation, ''), COALESCE(c.url, ''),
	COALESCE(c.publication_title, ''), COALESCE(c.publication_author, ''),
	COALESCE(c.publication_volume, ''), COALESCE(c.publication_issue, ''),
	c.publication_date, COALESCE(c.archived_url, ''), c.archived_date, c.type`

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Scan reads a row selected with Columns (plus any extra destinations
// appended after them).
func Scan(s Scanner, extra ...any) (*Citation, error) {
	var c Citation
	var pubDate, archivedDate sql.NullTime
	var typ string
	dest := []any{
		&c.ID, &c.Title, &c.CaselawCitation, &c.URL,
		&c.PublicationTitle, &c.PublicationAuthor,
		&c.PublicationVolume, &c.PublicationIssue,
		&pubDate, &c.ArchivedURL, &archivedDate, &typ,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if pubDate.Valid {
		c.PublicationDate = &pubDate.Time
	}
	if archivedDate.Valid {
		c.ArchivedDate = &archivedDate.Time
	}
	c.Type = Type(typ)
	return &c, nil
}

func (r *citationRepository) Create(ctx context.Context, c *Citation) error {
	query := `INSERT INTO citations
	          (title, caselaw_citation, url, publication_title, publication_author,
	           publication_volume, publication_issue, publication_date,
	           archived_url, archived_date, type)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, r.args(c)...)
	if err != nil {
		return fmt.Errorf("inserting citation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	c.ID = int(id)
	return nil
}

func (r *citationRepository) Update(ctx context.Context, c *Citation) error {
	query := `UPDATE citations SET
	            title = ?, caselaw_citation = ?, url = ?, publication_title = ?,
	            publication_author = ?, publication_volume = ?, publication_issue = ?,
	            publication_date = ?, archived_url = ?, archived_date = ?, type = ?
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, append(r.args(c), c.ID)...)
	if err != nil {
		return fmt.Errorf("updating citation: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		// MariaDB reports 0 for unchanged rows too; confirm the row exists.
		if _, err := r.FindByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *citationRepository) FindByID(ctx context.Context, id int) (*Citation, error) {
	query := `SELECT ` + Columns + ` FROM citations c WHERE c.id = ?`

	c, err := Scan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("citation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying citation by id: %w", err)
	}
	return c, nil
}

func (r *citationRepository) SetType(ctx context.Context, id int, t Type) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE citations SET type = ? WHERE id = ?`, string(t), id); err != nil {
		return fmt.Errorf("setting citation type: %w", err)
	}
	return nil
}

// args returns the column values of c in insert order.
func (r *citationRepository) args(c *Citation) []any {
	return []any{
		c.Title, nullString(c.CaselawCitation), nullString(c.URL),
		nullString(c.PublicationTitle), nullString(c.PublicationAuthor),
		nullString(c.PublicationVolume), nullString(c.PublicationIssue),
		c.PublicationDate, nullString(c.ArchivedURL), c.ArchivedDate, string(c.Type),
	}
}

// nullString stores empty strings as NULL, matching the nullable columns.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
