package groups

import (
	"context"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/cache"
	"github.com/keyxmakerx/timeline/internal/datefmt"
	"github.com/keyxmakerx/timeline/internal/sanitize"
)

// Cache kinds written by this service.
const (
	cacheKindGroups   = "groups"
	cacheKindByRegion = "groups-by-region"
)

// GroupService is the business logic contract for groups and regions.
type GroupService interface {
	// Pairs returns [slug, name] for every group, ordered by region slug.
	Pairs(ctx context.Context, slug string) ([]Pair, error)

	// ByRegion returns the regions ordered by name, each with its groups.
	ByRegion(ctx context.Context, slug string) ([]RegionJSON, error)

	// Save creates (ID == 0) or updates a group, deriving its slug from the
	// name when none is set.
	Save(ctx context.Context, g *Group) error

	// Create and Update apply admin requests and save.
	Create(ctx context.Context, req SaveGroupRequest) (*Group, error)
	Update(ctx context.Context, id int, req SaveGroupRequest) (*Group, error)
}

// groupService implements GroupService.
type groupService struct {
	repo  GroupRepository
	cache cache.Cache
}

// NewGroupService creates a GroupService.
func NewGroupService(repo GroupRepository, c cache.Cache) GroupService {
	return &groupService{repo: repo, cache: c}
}

// Pairs is cached per timeline slug even though groups are global; the
// viewer requests them through the slug-scoped route.
func (s *groupService) Pairs(ctx context.Context, slug string) ([]Pair, error) {
	return cache.Load(ctx, s.cache, cacheKindGroups, slug, func(ctx context.Context) ([]Pair, error) {
		groups, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		pairs := make([]Pair, 0, len(groups))
		for _, g := range groups {
			pairs = append(pairs, Pair{g.Slug, g.Name})
		}
		return pairs, nil
	})
}

func (s *groupService) ByRegion(ctx context.Context, slug string) ([]RegionJSON, error) {
	return cache.Load(ctx, s.cache, cacheKindByRegion, slug, func(ctx context.Context) ([]RegionJSON, error) {
		regions, err := s.repo.ListRegions(ctx)
		if err != nil {
			return nil, err
		}
		groups, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return buildRegions(regions, groups), nil
	})
}

// buildRegions nests groups under their region. Regions keep their input
// order; groups keep theirs within a region. Groups without a region are
// not listed.
func buildRegions(regions []Region, groups []Group) []RegionJSON {
	byRegion := make(map[int][]RegionGroupJSON, len(regions))
	for _, g := range groups {
		if g.RegionID == nil {
			continue
		}
		byRegion[*g.RegionID] = append(byRegion[*g.RegionID], RegionGroupJSON{
			Slug:       g.Slug,
			Name:       g.Name,
			RegionName: g.RegionName,
			RegionSlug: g.RegionSlug,
		})
	}

	out := make([]RegionJSON, 0, len(regions))
	for _, rg := range regions {
		members := byRegion[rg.ID]
		if members == nil {
			members = []RegionGroupJSON{}
		}
		out = append(out, RegionJSON{Slug: rg.Slug, Name: rg.Name, Groups: members})
	}
	return out
}

func (s *groupService) Save(ctx context.Context, g *Group) error {
	g.Name = sanitize.Text(g.Name)
	if g.Name == "" {
		return apperror.NewValidation("group name is required")
	}
	if len(g.Name) > 500 {
		return apperror.NewValidation("group name must be 500 characters or fewer")
	}
	if g.StartDate != nil && g.EndDate != nil && g.EndDate.Before(*g.StartDate) {
		return apperror.NewValidation("group end date is before its start date")
	}
	g.EnsureSlug()

	var err error
	if g.ID == 0 {
		err = s.repo.Create(ctx, g)
	} else {
		err = s.repo.Update(ctx, g)
	}
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, cacheKindGroups, cacheKindByRegion)
	return nil
}

func (s *groupService) Create(ctx context.Context, req SaveGroupRequest) (*Group, error) {
	g := &Group{}
	if err := apply(g, req); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *groupService) Update(ctx context.Context, id int, req SaveGroupRequest) (*Group, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(g, req); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// apply copies req onto g. An empty slug in the request keeps the stored one.
func apply(g *Group, req SaveGroupRequest) error {
	start, err := datefmt.Parse(strings.TrimSpace(req.StartDate))
	if err != nil {
		return apperror.NewValidation("start_date must be YYYY-MM-DD")
	}
	end, err := datefmt.Parse(strings.TrimSpace(req.EndDate))
	if err != nil {
		return apperror.NewValidation("end_date must be YYYY-MM-DD")
	}

	g.Name = req.Name
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		g.Slug = slug
	}
	g.Description = sanitize.HTML(req.Description)
	g.StartDate = start
	g.EndDate = end
	g.RegionID = req.RegionID
	return nil
}

// AsJSON builds the admin API view of g.
func (g *Group) AsJSON() GroupJSON {
	return GroupJSON{
		ID:          g.ID,
		Name:        g.Name,
		Slug:        g.Slug,
		Description: g.Description,
		StartDate:   datefmt.ISO(g.StartDate),
		EndDate:     datefmt.ISO(g.EndDate),
		RegionID:    g.RegionID,
	}
}
