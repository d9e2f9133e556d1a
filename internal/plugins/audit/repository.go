package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AuditRepository defines the data access contract for the audit log.
type AuditRepository interface {
	// Log inserts a new entry and sets its ID.
	Log(ctx context.Context, entry *Entry) error

	// List returns entries most recent first, plus the total count for
	// pagination.
	List(ctx context.Context, limit, offset int) ([]Entry, int, error)
}

// auditRepository implements AuditRepository with MariaDB queries.
type auditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new repository backed by the given DB pool.
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (action, method, path, resource_id, status, remote_ip, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.Action, entry.Method, entry.Path, entry.ResourceID,
		entry.Status, entry.RemoteIP, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting audit entry id: %w", err)
	}
	entry.ID = id
	return nil
}

func (r *auditRepository) List(ctx context.Context, limit, offset int) ([]Entry, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting audit entries: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, action, method, path, resource_id, status, remote_ip, created_at
		 FROM audit_log
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.Method, &e.Path,
			&e.ResourceID, &e.Status, &e.RemoteIP, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scanning audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating audit rows: %w", err)
	}
	return entries, total, nil
}
