package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// GroupRepository defines the data access contract for groups and regions.
type GroupRepository interface {
	// List returns all groups with their region, ordered by region slug.
	List(ctx context.Context) ([]Group, error)

	// ListRegions returns all regions ordered by name.
	ListRegions(ctx context.Context) ([]Region, error)

	FindByID(ctx context.Context, id int) (*Group, error)

	// Create inserts g and sets its ID. Duplicate names are a Conflict.
	Create(ctx context.Context, g *Group) error

	// Update writes every column of g. Duplicate names are a Conflict.
	Update(ctx context.Context, g *Group) error
}

// groupRepository implements GroupRepository with MariaDB SQL.
type groupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a GroupRepository backed by db.
func NewGroupRepository(db *sql.DB) GroupRepository {
	return &groupRepository{db: db}
}

const groupColumns = `g.id, g.name, g.slug, g.description, g.start_date, g.end_date,
	g.region_id, COALESCE(r.name, ''), COALESCE(r.slug, '')`

func scanGroup(s interface{ Scan(...any) error }) (*Group, error) {
	var g Group
	var start, end sql.NullTime
	var regionID sql.NullInt64
	if err := s.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &start, &end,
		&regionID, &g.RegionName, &g.RegionSlug); err != nil {
		return nil, err
	}
	if start.Valid {
		g.StartDate = &start.Time
	}
	if end.Valid {
		g.EndDate = &end.Time
	}
	if regionID.Valid {
		id := int(regionID.Int64)
		g.RegionID = &id
	}
	return &g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]Group, error) {
	query := `SELECT ` + groupColumns + `
	          FROM timeline_groups g
	          LEFT JOIN regions r ON r.id = g.region_id
	          ORDER BY r.slug ASC, g.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning group row: %w", err)
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) ListRegions(ctx context.Context) ([]Region, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug FROM regions ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	defer rows.Close()

	var regions []Region
	for rows.Next() {
		var rg Region
		if err := rows.Scan(&rg.ID, &rg.Name, &rg.Slug); err != nil {
			return nil, fmt.Errorf("scanning region row: %w", err)
		}
		regions = append(regions, rg)
	}
	return regions, rows.Err()
}

func (r *groupRepository) FindByID(ctx context.Context, id int) (*Group, error) {
	query := `SELECT ` + groupColumns + `
	          FROM timeline_groups g
	          LEFT JOIN regions r ON r.id = g.region_id
	          WHERE g.id = ?`

	g, err := scanGroup(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("group not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying group by id: %w", err)
	}
	return g, nil
}

func (r *groupRepository) Create(ctx context.Context, g *Group) error {
	query := `INSERT INTO timeline_groups (name, slug, description, start_date, end_date, region_id)
	          VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		g.Name, g.Slug, g.Description, g.StartDate, g.EndDate, g.RegionID)
	if err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("a group with this name already exists")
		}
		return fmt.Errorf("inserting group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	g.ID = int(id)
	return nil
}

func (r *groupRepository) Update(ctx context.Context, g *Group) error {
	query := `UPDATE timeline_groups
	          SET name = ?, slug = ?, description = ?, start_date = ?, end_date = ?, region_id = ?
	          WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query,
		g.Name, g.Slug, g.Description, g.StartDate, g.EndDate, g.RegionID, g.ID); err != nil {
		if isDuplicateEntry(err) {
			return apperror.NewConflict("a group with this name already exists")
		}
		return fmt.Errorf("updating group: %w", err)
	}
	return nil
}

// isDuplicateEntry checks for MariaDB's duplicate key error (1062).
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
