package findings

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// FindingRepository defines the data access contract for findings.
type FindingRepository interface {
	// ListByTimeline returns the findings linked to at least one event of
	// the timeline, each with all of its event IDs.
	ListByTimeline(ctx context.Context, timeline string) ([]Finding, error)

	FindByID(ctx context.Context, id int) (*Finding, error)

	// Save inserts the finding when its ID is zero and updates it otherwise,
	// replacing its event links in the same transaction.
	Save(ctx context.Context, f *Finding) error

	Delete(ctx context.Context, id int) error

	// MissingEvents returns the IDs in ids that match no event.
	MissingEvents(ctx context.Context, ids []int) ([]int, error)
}

// findingRepository implements FindingRepository with MariaDB SQL.
type findingRepository struct {
	db *sql.DB
}

// NewFindingRepository creates a FindingRepository backed by db.
func NewFindingRepository(db *sql.DB) FindingRepository {
	return &findingRepository{db: db}
}

func (r *findingRepository) ListByTimeline(ctx context.Context, timeline string) ([]Finding, error) {
	query := `SELECT f.id, f.description_short, f.description_long, fe.event_id
	          FROM findings f
	          JOIN finding_events fe ON fe.finding_id = f.id
	          WHERE f.id IN (
	              SELECT fe2.finding_id FROM finding_events fe2
	              JOIN events e ON e.id = fe2.event_id
	              WHERE e.timeline = ?
	          )
	          ORDER BY f.id, fe.event_id`

	rows, err := r.db.QueryContext(ctx, query, timeline)
	if err != nil {
		return nil, fmt.Errorf("listing findings: %w", err)
	}
	defer rows.Close()

	var list []Finding
	for rows.Next() {
		var f Finding
		var eventID int
		if err := rows.Scan(&f.ID, &f.DescriptionShort, &f.DescriptionLong, &eventID); err != nil {
			return nil, fmt.Errorf("scanning finding row: %w", err)
		}
		// Rows arrive grouped by finding.
		if n := len(list); n > 0 && list[n-1].ID == f.ID {
			list[n-1].EventIDs = append(list[n-1].EventIDs, eventID)
			continue
		}
		f.EventIDs = []int{eventID}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *findingRepository) FindByID(ctx context.Context, id int) (*Finding, error) {
	var f Finding
	err := r.db.QueryRowContext(ctx,
		`SELECT id, description_short, description_long FROM findings WHERE id = ?`, id,
	).Scan(&f.ID, &f.DescriptionShort, &f.DescriptionLong)
	if err == sql.ErrNoRows {
		return nil, apperror.NewNotFound("finding not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying finding: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT event_id FROM finding_events WHERE finding_id = ? ORDER BY event_id`, id)
	if err != nil {
		return nil, fmt.Errorf("listing finding events: %w", err)
	}
	defer rows.Close()

	f.EventIDs = []int{}
	for rows.Next() {
		var eventID int
		if err := rows.Scan(&eventID); err != nil {
			return nil, fmt.Errorf("scanning finding event: %w", err)
		}
		f.EventIDs = append(f.EventIDs, eventID)
	}
	return &f, rows.Err()
}

func (r *findingRepository) Save(ctx context.Context, f *Finding) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning finding tx: %w", err)
	}
	defer tx.Rollback()

	if f.ID == 0 {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO findings (description_short, description_long) VALUES (?, ?)`,
			f.DescriptionShort, f.DescriptionLong)
		if err != nil {
			return fmt.Errorf("inserting finding: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		f.ID = int(id)
	} else {
		if _, err := tx.ExecContext(ctx,
			`UPDATE findings SET description_short = ?, description_long = ? WHERE id = ?`,
			f.DescriptionShort, f.DescriptionLong, f.ID); err != nil {
			return fmt.Errorf("updating finding: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM finding_events WHERE finding_id = ?`, f.ID); err != nil {
			return fmt.Errorf("clearing finding events: %w", err)
		}
	}

	for _, eventID := range f.EventIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO finding_events (finding_id, event_id) VALUES (?, ?)`, f.ID, eventID); err != nil {
			return fmt.Errorf("linking event %d: %w", eventID, err)
		}
	}

	return tx.Commit()
}

func (r *findingRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM findings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting finding: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NewNotFound("finding not found")
	}
	return nil
}

func (r *findingRepository) MissingEvents(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id FROM events WHERE id IN (%s)`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return nil, fmt.Errorf("checking events: %w", err)
	}
	defer rows.Close()

	found := make(map[int]bool, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning event id: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event ids: %w", err)
	}

	var missing []int
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
