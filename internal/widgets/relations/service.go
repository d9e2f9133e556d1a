package relations

import (
	"context"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/sanitize"
)

// RelationshipService defines the business logic contract for linking
// events.
type RelationshipService interface {
	// Create links two existing, distinct events. A pair already linked in
	// either direction is a Conflict.
	Create(ctx context.Context, req CreateRelationshipRequest) (*Relationship, error)

	// ListByEvent returns every relationship touching eventID.
	ListByEvent(ctx context.Context, eventID int) ([]Relationship, error)

	Delete(ctx context.Context, id int) error
}

// relationshipService implements RelationshipService.
type relationshipService struct {
	repo RelationshipRepository
}

// NewRelationshipService creates a RelationshipService.
func NewRelationshipService(repo RelationshipRepository) RelationshipService {
	return &relationshipService{repo: repo}
}

func (s *relationshipService) Create(ctx context.Context, req CreateRelationshipRequest) (*Relationship, error) {
	if req.PrecedingEventID <= 0 || req.SucceedingEventID <= 0 {
		return nil, apperror.NewValidation("both event IDs are required")
	}
	if req.PrecedingEventID == req.SucceedingEventID {
		return nil, apperror.NewValidation("an event cannot be related to itself")
	}

	for _, id := range []int{req.PrecedingEventID, req.SucceedingEventID} {
		ok, err := s.repo.EventExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NewNotFound("event not found")
		}
	}

	// The unique key only covers one direction.
	existing, err := s.repo.FindBetween(ctx, req.PrecedingEventID, req.SucceedingEventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflict("these events are already related")
	}

	rel := &Relationship{
		PrecedingEventID:  req.PrecedingEventID,
		SucceedingEventID: req.SucceedingEventID,
		Description:       sanitize.Text(req.Description),
	}
	if err := s.repo.Create(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *relationshipService) ListByEvent(ctx context.Context, eventID int) ([]Relationship, error) {
	list, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Relationship{}
	}
	return list, nil
}

func (s *relationshipService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
