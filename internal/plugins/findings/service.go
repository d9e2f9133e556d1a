package findings

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/sanitize"
)

// FindingService is the business logic contract for findings.
type FindingService interface {
	ListByTimeline(ctx context.Context, slug string) ([]Finding, error)

	Create(ctx context.Context, req SaveFindingRequest) (*Finding, error)
	Update(ctx context.Context, id int, req SaveFindingRequest) (*Finding, error)
	Delete(ctx context.Context, id int) error
}

// findingService implements FindingService.
type findingService struct {
	repo FindingRepository
}

// NewFindingService creates a FindingService.
func NewFindingService(repo FindingRepository) FindingService {
	return &findingService{repo: repo}
}

// ListByTimeline never returns a nil slice so the endpoint renders [].
func (s *findingService) ListByTimeline(ctx context.Context, slug string) ([]Finding, error) {
	list, err := s.repo.ListByTimeline(ctx, slug)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Finding{}
	}
	return list, nil
}

func (s *findingService) Create(ctx context.Context, req SaveFindingRequest) (*Finding, error) {
	f := &Finding{}
	if err := s.save(ctx, f, req); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *findingService) Update(ctx context.Context, id int, req SaveFindingRequest) (*Finding, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, f, req); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *findingService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// save validates req onto f and persists it. Event IDs are deduplicated
// and sorted; every one must name an existing event.
func (s *findingService) save(ctx context.Context, f *Finding, req SaveFindingRequest) error {
	short := sanitize.HTML(strings.TrimSpace(req.DescriptionShort))
	if short == "" {
		return apperror.NewValidation("short description is required")
	}

	seen := make(map[int]bool, len(req.EventIDs))
	ids := make([]int, 0, len(req.EventIDs))
	for _, id := range req.EventIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	missing, err := s.repo.MissingEvents(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperror.NewValidation(fmt.Sprintf("unknown event IDs: %v", missing))
	}

	f.DescriptionShort = short
	f.DescriptionLong = sanitize.HTML(req.DescriptionLong)
	f.EventIDs = ids
	return s.repo.Save(ctx, f)
}
