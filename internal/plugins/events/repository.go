package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/plugins/citations"
)

// EventRepository defines the data access contract for events.
type EventRepository interface {
	// FindByID returns a fully hydrated event or a NotFound AppError.
	FindByID(ctx context.Context, id int) (*Event, error)

	// ListRelated returns every hydrated event linked to id by a
	// relationship in either direction.
	ListRelated(ctx context.Context, id int) ([]Event, error)

	// ListDateRanges returns the dates of the timeline's non-hidden events.
	ListDateRanges(ctx context.Context, timeline string) ([]DateRange, error)
}

// eventRepository implements EventRepository with MariaDB SQL.
type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates an EventRepository backed by db.
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

const eventColumns = `e.id, e.timeline, e.name, e.start_date, e.end_date,
	e.description_short, e.description_long, e.hide, e.type,
	w.id, w.level, COALESCE(w.description, ''),
	i.id, COALESCE(i.filename, ''), COALESCE(i.thumbnail, ''), i.citation_id`

const eventJoins = `FROM events e
	LEFT JOIN weights w ON w.id = e.weight_id
	LEFT JOIN images i ON i.id = e.image_id`

func scanEvent(s citations.Scanner) (*Event, error) {
	var e Event
	var start, end sql.NullTime
	var typ string
	var weightID, weightLevel, imageID, imageCitation sql.NullInt64
	var weightDesc, imageFile, imageThumb string

	if err := s.Scan(&e.ID, &e.Timeline, &e.Name, &start, &end,
		&e.DescriptionShort, &e.DescriptionLong, &e.Hide, &typ,
		&weightID, &weightLevel, &weightDesc,
		&imageID, &imageFile, &imageThumb, &imageCitation); err != nil {
		return nil, err
	}

	e.Type = Type(typ)
	if start.Valid {
		e.StartDate = &start.Time
	}
	if end.Valid {
		e.EndDate = &end.Time
	}
	if weightID.Valid {
		e.Weight = &Weight{ID: int(weightID.Int64), Description: weightDesc}
		if weightLevel.Valid {
			level := int(weightLevel.Int64)
			e.Weight.Level = &level
		}
	}
	if imageID.Valid {
		e.Image = &Image{ID: int(imageID.Int64), Filename: imageFile, Thumbnail: imageThumb}
		if imageCitation.Valid {
			id := int(imageCitation.Int64)
			e.Image.CitationID = &id
		}
	}
	return &e, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id int) (*Event, error) {
	query := `SELECT ` + eventColumns + ` ` + eventJoins + ` WHERE e.id = ?`

	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("event not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying event by id: %w", err)
	}

	list := []Event{*e}
	if err := r.hydrate(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *eventRepository) ListRelated(ctx context.Context, id int) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` ` + eventJoins + `
	          WHERE e.id IN (
	              SELECT succeeding_event_id FROM relationships WHERE preceding_event_id = ?
	              UNION
	              SELECT preceding_event_id FROM relationships WHERE succeeding_event_id = ?
	          )
	          ORDER BY e.id`

	rows, err := r.db.QueryContext(ctx, query, id, id)
	if err != nil {
		return nil, fmt.Errorf("listing related events: %w", err)
	}
	defer rows.Close()

	var list []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning related event: %w", err)
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating related events: %w", err)
	}

	if err := r.hydrate(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *eventRepository) ListDateRanges(ctx context.Context, timeline string) ([]DateRange, error) {
	query := `SELECT id, name, start_date, end_date FROM events
	          WHERE timeline = ? AND hide = FALSE
	          ORDER BY start_date ASC`

	rows, err := r.db.QueryContext(ctx, query, timeline)
	if err != nil {
		return nil, fmt.Errorf("listing event dates: %w", err)
	}
	defer rows.Close()

	var ranges []DateRange
	for rows.Next() {
		var d DateRange
		var start, end sql.NullTime
		if err := rows.Scan(&d.EventID, &d.Name, &start, &end); err != nil {
			return nil, fmt.Errorf("scanning event dates: %w", err)
		}
		if start.Valid {
			d.StartDate = &start.Time
		}
		if end.Valid {
			d.EndDate = &end.Time
		}
		ranges = append(ranges, d)
	}
	return ranges, rows.Err()
}

// hydrate loads the many-to-many relations of every event in list.
func (r *eventRepository) hydrate(ctx context.Context, list []Event) error {
	if len(list) == 0 {
		return nil
	}
	index := make(map[int]*Event, len(list))
	ids := make([]any, 0, len(list))
	for i := range list {
		index[list[i].ID] = &list[i]
		ids = append(ids, list[i].ID)
	}
	in := placeholders(len(ids))

	// Citations.
	rows, err := r.db.QueryContext(ctx, `SELECT `+citations.Columns+`, ec.event_id
		FROM event_citations ec
		JOIN citations c ON c.id = ec.citation_id
		WHERE ec.event_id IN (`+in+`)
		ORDER BY c.id`, ids...)
	if err != nil {
		return fmt.Errorf("loading event citations: %w", err)
	}
	for rows.Next() {
		var eventID int
		c, err := citations.Scan(rows, &eventID)
		if err != nil {
			rows.Close()
			return fmt.Errorf("scanning event citation: %w", err)
		}
		if e := index[eventID]; e != nil {
			e.Citations = append(e.Citations, *c)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating event citations: %w", err)
	}

	groups := `SELECT eg.event_id, g.slug FROM event_groups eg
		JOIN timeline_groups g ON g.id = eg.group_id
		WHERE eg.event_id IN (` + in + `) ORDER BY g.slug`
	if err := r.loadSlugs(ctx, groups, ids, func(e *Event, slug string) {
		e.GroupSlugs = append(e.GroupSlugs, slug)
	}, index); err != nil {
		return fmt.Errorf("loading event groups: %w", err)
	}

	themes := `SELECT et.event_id, t.slug FROM event_themes et
		JOIN themes t ON t.id = et.theme_id
		WHERE et.event_id IN (` + in + `) ORDER BY t.slug`
	if err := r.loadSlugs(ctx, themes, ids, func(e *Event, slug string) {
		e.ThemeSlugs = append(e.ThemeSlugs, slug)
	}, index); err != nil {
		return fmt.Errorf("loading event themes: %w", err)
	}
	return nil
}

// loadSlugs runs an (event_id, slug) query and feeds each row to add.
func (r *eventRepository) loadSlugs(ctx context.Context, query string, ids []any, add func(*Event, string), index map[int]*Event) error {
	rows, err := r.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID int
		var slug string
		if err := rows.Scan(&eventID, &slug); err != nil {
			return err
		}
		if e := index[eventID]; e != nil {
			add(e, slug)
		}
	}
	return rows.Err()
}

// placeholders returns "?, ?, ..." for n query arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
