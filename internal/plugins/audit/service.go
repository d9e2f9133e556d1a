package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// perPage is the number of audit entries returned per page.
const perPage = 50

// AuditService handles business logic for the audit log.
type AuditService interface {
	// Log records an entry. Errors are logged here as well, so callers may
	// ignore them.
	Log(ctx context.Context, entry *Entry) error

	// List returns a page of the feed. Pages are 1-indexed.
	List(ctx context.Context, page int) (*Page, error)
}

// auditService implements AuditService.
type auditService struct {
	repo AuditRepository
}

// NewAuditService creates a new audit service with the given repository.
func NewAuditService(repo AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Log(ctx context.Context, entry *Entry) error {
	if entry.Action == "" {
		return apperror.NewBadRequest("action is required for audit entry")
	}

	if err := s.repo.Log(ctx, entry); err != nil {
		slog.Error("failed to write audit log entry",
			slog.String("action", entry.Action),
			slog.String("path", entry.Path),
			slog.Any("error", err),
		)
		return apperror.NewInternal(fmt.Errorf("writing audit entry: %w", err))
	}
	return nil
}

// List clamps invalid page numbers to 1.
func (s *auditService) List(ctx context.Context, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}

	entries, total, err := s.repo.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing audit entries: %w", err))
	}
	if entries == nil {
		entries = []Entry{}
	}
	return &Page{Entries: entries, Total: total, Page: page, PerPage: perPage}, nil
}
