package relations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// RelationshipRepository defines the data access contract for event
// relationships.
type RelationshipRepository interface {
	// Create inserts rel and sets its ID. A duplicate pair is a Conflict.
	Create(ctx context.Context, rel *Relationship) error

	FindByID(ctx context.Context, id int) (*Relationship, error)

	// FindBetween returns the relationship linking a and b in either
	// direction, or nil if there is none.
	FindBetween(ctx context.Context, a, b int) (*Relationship, error)

	// ListByEvent returns every relationship touching eventID, with the
	// other event's name.
	ListByEvent(ctx context.Context, eventID int) ([]Relationship, error)

	Delete(ctx context.Context, id int) error

	// EventExists reports whether an event row with id exists.
	EventExists(ctx context.Context, id int) (bool, error)
}

// relationshipRepository implements RelationshipRepository with MariaDB SQL.
type relationshipRepository struct {
	db *sql.DB
}

// NewRelationshipRepository creates a RelationshipRepository backed by db.
func NewRelationshipRepository(db *sql.DB) RelationshipRepository {
	return &relationshipRepository{db: db}
}

func (r *relationshipRepository) Create(ctx context.Context, rel *Relationship) error {
	query := `INSERT INTO relationships (preceding_event_id, succeeding_event_id, description)
	          VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, rel.PrecedingEventID, rel.SucceedingEventID, rel.Description)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("these events are already related")
		}
		return fmt.Errorf("inserting relationship: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	rel.ID = int(id)
	return nil
}

func (r *relationshipRepository) FindByID(ctx context.Context, id int) (*Relationship, error) {
	query := `SELECT id, preceding_event_id, succeeding_event_id, description
	          FROM relationships WHERE id = ?`

	var rel Relationship
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rel.ID, &rel.PrecedingEventID, &rel.SucceedingEventID, &rel.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("relationship not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying relationship by id: %w", err)
	}
	return &rel, nil
}

func (r *relationshipRepository) FindBetween(ctx context.Context, a, b int) (*Relationship, error) {
	query := `SELECT id, preceding_event_id, succeeding_event_id, description
	          FROM relationships
	          WHERE (preceding_event_id = ? AND succeeding_event_id = ?)
	             OR (preceding_event_id = ? AND succeeding_event_id = ?)
	          LIMIT 1`

	var rel Relationship
	err := r.db.QueryRowContext(ctx, query, a, b, b, a).Scan(
		&rel.ID, &rel.PrecedingEventID, &rel.SucceedingEventID, &rel.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding relationship between events: %w", err)
	}
	return &rel, nil
}

func (r *relationshipRepository) ListByEvent(ctx context.Context, eventID int) ([]Relationship, error) {
	query := `SELECT rel.id, rel.preceding_event_id, rel.succeeding_event_id, rel.description, e.name
	          FROM relationships rel
	          INNER JOIN events e ON e.id = IF(rel.preceding_event_id = ?, rel.succeeding_event_id, rel.preceding_event_id)
	          WHERE rel.preceding_event_id = ? OR rel.succeeding_event_id = ?
	          ORDER BY e.name ASC, rel.id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID, eventID, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships by event: %w", err)
	}
	defer rows.Close()

	var list []Relationship
	for rows.Next() {
		var rel Relationship
		if err := rows.Scan(&rel.ID, &rel.PrecedingEventID, &rel.SucceedingEventID,
			&rel.Description, &rel.OtherEventName); err != nil {
			return nil, fmt.Errorf("scanning relationship row: %w", err)
		}
		list = append(list, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relationship rows: %w", err)
	}
	return list, nil
}

func (r *relationshipRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting relationship: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NewNotFound("relationship not found")
	}
	return nil
}

func (r *relationshipRepository) EventExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking event exists: %w", err)
	}
	return exists, nil
}

// isDuplicateEntry checks for MariaDB's duplicate key error (1062).
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
