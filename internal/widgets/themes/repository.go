package themes

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// ThemeRepository defines the data access contract for themes and the
// event_themes join table.
type ThemeRepository interface {
	Create(ctx context.Context, theme *Theme) error
	FindByID(ctx context.Context, id int) (*Theme, error)

	// List returns every theme ordered by name.
	List(ctx context.Context) ([]Theme, error)

	Update(ctx context.Context, theme *Theme) error

	// Delete removes a theme. Cascade deletes remove event_themes rows.
	Delete(ctx context.Context, id int) error

	EventExists(ctx context.Context, eventID int) (bool, error)
	AddThemeToEvent(ctx context.Context, eventID, themeID int) error
	RemoveThemeFromEvent(ctx context.Context, eventID, themeID int) error

	// ListByEvent returns the themes attached to an event, ordered by name.
	ListByEvent(ctx context.Context, eventID int) ([]Theme, error)
}

// themeRepository implements ThemeRepository using MariaDB with
// hand-written SQL.
type themeRepository struct {
	db *sql.DB
}

// NewThemeRepository creates a new ThemeRepository backed by the given
// database connection.
func NewThemeRepository(db *sql.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) Create(ctx context.Context, theme *Theme) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO themes (slug, name) VALUES (?, ?)`, theme.Slug, theme.Name)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("a theme with this slug already exists")
		}
		return fmt.Errorf("inserting theme: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	theme.ID = int(id)
	return nil
}

func (r *themeRepository) FindByID(ctx context.Context, id int) (*Theme, error) {
	var t Theme
	err := r.db.QueryRowContext(ctx,
		`SELECT id, slug, name FROM themes WHERE id = ?`, id,
	).Scan(&t.ID, &t.Slug, &t.Name)
	if err == sql.ErrNoRows {
		return nil, apperror.NewNotFound("theme not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying theme by id: %w", err)
	}
	return &t, nil
}

func (r *themeRepository) List(ctx context.Context) ([]Theme, error) {
	return r.query(ctx, `SELECT id, slug, name FROM themes ORDER BY name ASC`)
}

func (r *themeRepository) Update(ctx context.Context, theme *Theme) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE themes SET slug = ?, name = ? WHERE id = ?`, theme.Slug, theme.Name, theme.ID)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("a theme with this slug already exists")
		}
		return fmt.Errorf("updating theme: %w", err)
	}

	// MariaDB reports 0 affected rows when nothing changed, so existence
	// is checked by the service beforehand.
	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	return nil
}

func (r *themeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM themes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting theme: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFound("theme not found")
	}
	return nil
}

func (r *themeRepository) EventExists(ctx context.Context, eventID int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, eventID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking event: %w", err)
	}
	return true, nil
}

// AddThemeToEvent uses INSERT IGNORE so an existing link is not an error.
func (r *themeRepository) AddThemeToEvent(ctx context.Context, eventID, themeID int) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO event_themes (event_id, theme_id) VALUES (?, ?)`, eventID, themeID); err != nil {
		return fmt.Errorf("adding theme to event: %w", err)
	}
	return nil
}

func (r *themeRepository) RemoveThemeFromEvent(ctx context.Context, eventID, themeID int) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM event_themes WHERE event_id = ? AND theme_id = ?`, eventID, themeID); err != nil {
		return fmt.Errorf("removing theme from event: %w", err)
	}
	return nil
}

func (r *themeRepository) ListByEvent(ctx context.Context, eventID int) ([]Theme, error) {
	return r.query(ctx,
		`SELECT t.id, t.slug, t.name
		 FROM themes t
		 INNER JOIN event_themes et ON et.theme_id = t.id
		 WHERE et.event_id = ?
		 ORDER BY t.name ASC`, eventID)
}

func (r *themeRepository) query(ctx context.Context, query string, args ...any) ([]Theme, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing themes: %w", err)
	}
	defer rows.Close()

	var themes []Theme
	for rows.Next() {
		var t Theme
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning theme row: %w", err)
		}
		themes = append(themes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating theme rows: %w", err)
	}
	return themes, nil
}

// isDuplicateEntry checks for MariaDB error 1062 (ER_DUP_ENTRY).
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
