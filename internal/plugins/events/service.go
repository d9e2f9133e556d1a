package events

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/cache"
)

// EventService is the business logic contract for event reads.
type EventService interface {
	// GetDetail returns the event with its related events bucketed into
	// preceding and succeeding.
	GetDetail(ctx context.Context, id int) (*DetailJSON, error)

	// Years returns the sorted, distinct years touched by the timeline's
	// visible events.
	Years(ctx context.Context, slug string) ([]int, error)

	// ReadExport returns the pre-generated events export for a timeline.
	ReadExport(slug string) ([]byte, error)
}

// eventService implements EventService.
type eventService struct {
	repo      EventRepository
	cache     cache.Cache
	exportDir string
	mediaURL  string
}

// NewEventService creates an EventService. Exports are read from
// {exportDir}/json; image URLs are built under mediaURL.
func NewEventService(repo EventRepository, c cache.Cache, exportDir, mediaURL string) EventService {
	return &eventService{repo: repo, cache: c, exportDir: exportDir, mediaURL: mediaURL}
}

func (s *eventService) GetDetail(ctx context.Context, id int) (*DetailJSON, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.repo.ListRelated(ctx, id)
	if err != nil {
		return nil, err
	}

	buckets := BucketRelated(event, related)
	detail := &DetailJSON{
		Event: event.AsJSON(s.mediaURL),
		RelatedEvents: RelatedJSON{
			Preceding:  make([]JSON, 0, len(buckets.Preceding)),
			Succeeding: make([]JSON, 0, len(buckets.Succeeding)),
		},
	}
	for i := range buckets.Preceding {
		detail.RelatedEvents.Preceding = append(detail.RelatedEvents.Preceding, buckets.Preceding[i].AsJSON(s.mediaURL))
	}
	for i := range buckets.Succeeding {
		detail.RelatedEvents.Succeeding = append(detail.RelatedEvents.Succeeding, buckets.Succeeding[i].AsJSON(s.mediaURL))
	}
	return detail, nil
}

func (s *eventService) Years(ctx context.Context, slug string) ([]int, error) {
	return cache.Load(ctx, s.cache, "years", slug, func(ctx context.Context) ([]int, error) {
		ranges, err := s.repo.ListDateRanges(ctx, slug)
		if err != nil {
			return nil, err
		}
		return ExpandYears(ranges), nil
	})
}

// ReadExport reads {exportDir}/json/events-{slug}.json. The slug has
// already been resolved to a registered timeline; filepath.Base keeps it
// inside the export directory regardless.
func (s *eventService) ReadExport(slug string) ([]byte, error) {
	path := filepath.Join(s.exportDir, "json", "events-"+filepath.Base(slug)+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperror.NewNotFound("events export not found")
	}
	if err != nil {
		return nil, fmt.Errorf("reading events export: %w", err)
	}
	return data, nil
}
