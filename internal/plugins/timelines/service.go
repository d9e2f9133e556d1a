package timelines

import (
	"context"

	"github.com/keyxmakerx/timeline/internal/cache"
	"github.com/keyxmakerx/timeline/internal/config"
)

// TimelineService is the business logic contract for timeline metadata.
type TimelineService interface {
	// GetBySlug resolves a timeline; unknown slugs yield a NotFound AppError.
	GetBySlug(ctx context.Context, slug string) (*Meta, error)

	// List returns all registered timelines (index page).
	List(ctx context.Context) ([]Meta, error)

	// Themes returns the slug -> name theme map.
	Themes(ctx context.Context, slug string) (ThemeMap, error)

	// YearSettings returns the deployment's year toggles.
	YearSettings() config.YearToggles
}

// timelineService implements TimelineService.
type timelineService struct {
	repo  MetaRepository
	cache cache.Cache
	years config.YearToggles
}

// NewTimelineService creates a TimelineService.
func NewTimelineService(repo MetaRepository, c cache.Cache, years config.YearToggles) TimelineService {
	return &timelineService{repo: repo, cache: c, years: years}
}

func (s *timelineService) GetBySlug(ctx context.Context, slug string) (*Meta, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *timelineService) List(ctx context.Context) ([]Meta, error) {
	return s.repo.List(ctx)
}

// CacheKindThemes is the cache kind holding theme maps. Theme writes
// invalidate it.
const CacheKindThemes = "themes"

// Themes are global, but cached per slug like the other read payloads so a
// single invalidation scheme covers them.
func (s *timelineService) Themes(ctx context.Context, slug string) (ThemeMap, error) {
	return cache.Load(ctx, s.cache, CacheKindThemes, slug, func(ctx context.Context) (ThemeMap, error) {
		themes, err := s.repo.ListThemes(ctx)
		if err != nil {
			return nil, err
		}
		return NewThemeMap(themes), nil
	})
}

func (s *timelineService) YearSettings() config.YearToggles {
	return s.years
}
