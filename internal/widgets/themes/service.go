package themes

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/cache"
	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
	"github.com/keyxmakerx/timeline/internal/sanitize"
)

// slugPattern matches runs of characters not allowed in a slug.
var slugPattern = regexp.MustCompile(`[^a-z0-9_]+`)

// ThemeService defines the business logic contract for theme operations.
type ThemeService interface {
	Create(ctx context.Context, req SaveThemeRequest) (*Theme, error)
	List(ctx context.Context) ([]Theme, error)
	Update(ctx context.Context, id int, req SaveThemeRequest) (*Theme, error)
	Delete(ctx context.Context, id int) error

	// SetEventThemes replaces the themes on an event, touching only the
	// links that change.
	SetEventThemes(ctx context.Context, eventID int, themeIDs []int) ([]Theme, error)

	ListByEvent(ctx context.Context, eventID int) ([]Theme, error)
}

// themeService implements ThemeService. Every write drops the cached
// theme maps.
type themeService struct {
	repo  ThemeRepository
	cache cache.Cache
}

// NewThemeService creates a new ThemeService.
func NewThemeService(repo ThemeRepository, c cache.Cache) ThemeService {
	return &themeService{repo: repo, cache: c}
}

func (s *themeService) Create(ctx context.Context, req SaveThemeRequest) (*Theme, error) {
	name := sanitize.Text(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, apperror.NewValidation("theme name is required")
	}
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = generateSlug(name)
	}

	theme := &Theme{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, theme); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, timelines.CacheKindThemes)
	return theme, nil
}

func (s *themeService) List(ctx context.Context) ([]Theme, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Theme{}
	}
	return list, nil
}

func (s *themeService) Update(ctx context.Context, id int, req SaveThemeRequest) (*Theme, error) {
	theme, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := sanitize.Text(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, apperror.NewValidation("theme name is required")
	}
	theme.Name = name
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		theme.Slug = slug
	}

	if err := s.repo.Update(ctx, theme); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, timelines.CacheKindThemes)
	return theme, nil
}

func (s *themeService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, timelines.CacheKindThemes)
	return nil
}

func (s *themeService) SetEventThemes(ctx context.Context, eventID int, themeIDs []int) ([]Theme, error) {
	ok, err := s.repo.EventExists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewNotFound("event not found")
	}

	if len(themeIDs) > 0 {
		all, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing themes for validation: %w", err)
		}
		known := make(map[int]bool, len(all))
		for _, t := range all {
			known[t.ID] = true
		}
		for _, id := range themeIDs {
			if !known[id] {
				return nil, apperror.NewBadRequest(fmt.Sprintf("theme %d does not exist", id))
			}
		}
	}

	current, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("getting current event themes: %w", err)
	}

	currentSet := make(map[int]bool, len(current))
	for _, t := range current {
		currentSet[t.ID] = true
	}
	desiredSet := make(map[int]bool, len(themeIDs))
	for _, id := range themeIDs {
		desiredSet[id] = true
	}

	for _, t := range current {
		if !desiredSet[t.ID] {
			if err := s.repo.RemoveThemeFromEvent(ctx, eventID, t.ID); err != nil {
				return nil, fmt.Errorf("removing theme %d from event: %w", t.ID, err)
			}
		}
	}
	for id := range desiredSet {
		if !currentSet[id] {
			if err := s.repo.AddThemeToEvent(ctx, eventID, id); err != nil {
				return nil, fmt.Errorf("adding theme %d to event: %w", id, err)
			}
		}
	}

	return s.ListByEvent(ctx, eventID)
}

func (s *themeService) ListByEvent(ctx context.Context, eventID int) ([]Theme, error) {
	list, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Theme{}
	}
	return list, nil
}

// generateSlug lowercases the name and collapses everything else into
// single underscores, matching the slugs the front end already filters on
// ("Voting Rights" -> "voting_rights").
func generateSlug(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "theme"
	}
	return slug
}
