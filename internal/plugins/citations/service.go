package citations

import (
	"context"
	"log/slog"
	"strings"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/archive"
	"github.com/keyxmakerx/timeline/internal/datefmt"
	"github.com/keyxmakerx/timeline/internal/sanitize"
)

// CitationService is the business logic contract for citations.
type CitationService interface {
	// Save creates (ID == 0) or updates a citation. Before the row is
	// written, a citation with a URL and no archived URL is submitted to
	// the archiving service; failures leave it unarchived and are only
	// logged.
	Save(ctx context.Context, c *Citation) error

	// Create builds a citation from an admin request and saves it.
	Create(ctx context.Context, req SaveCitationRequest) (*Citation, error)

	// Update applies an admin request to an existing citation and saves it.
	// Stored archive fields are preserved.
	Update(ctx context.Context, id int, req SaveCitationRequest) (*Citation, error)

	// GetByID returns a single citation.
	GetByID(ctx context.Context, id int) (*Citation, error)

	// MarkAsImage sets the citation's type to "image". Called when an
	// image is saved with this citation as its source.
	MarkAsImage(ctx context.Context, id int) error
}

// citationService implements CitationService.
type citationService struct {
	repo     CitationRepository
	archiver archive.Archiver
}

// NewCitationService creates a CitationService. archiver may be nil, which
// disables the archival hook.
func NewCitationService(repo CitationRepository, archiver archive.Archiver) CitationService {
	return &citationService{repo: repo, archiver: archiver}
}

func (s *citationService) Save(ctx context.Context, c *Citation) error {
	if c.Type == "" {
		c.Type = TypeWebpage
	}
	if !c.Type.Valid() {
		return apperror.NewValidation("unknown citation type: " + string(c.Type))
	}

	s.archive(ctx, c)

	if c.ID == 0 {
		return s.repo.Create(ctx, c)
	}
	return s.repo.Update(ctx, c)
}

// archive runs the best-effort archival hook. It never returns an error:
// the primary save must go ahead regardless of the archiving service.
func (s *citationService) archive(ctx context.Context, c *Citation) {
	if s.archiver == nil || !s.archiver.Enabled() || !c.NeedsArchive() {
		return
	}

	res, err := s.archiver.Archive(ctx, c.URL)
	if err != nil {
		slog.Warn("citation archival failed",
			slog.Int("citation_id", c.ID),
			slog.String("url", c.URL),
			slog.Any("error", err),
		)
		return
	}

	c.ArchivedURL = res.URL
	archivedAt := res.ArchivedAt
	c.ArchivedDate = &archivedAt
	slog.Info("citation archived",
		slog.Int("citation_id", c.ID),
		slog.String("archived_url", c.ArchivedURL),
	)
}

func (s *citationService) Create(ctx context.Context, req SaveCitationRequest) (*Citation, error) {
	c := &Citation{}
	if err := apply(c, req); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *citationService) Update(ctx context.Context, id int, req SaveCitationRequest) (*Citation, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(c, req); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *citationService) GetByID(ctx context.Context, id int) (*Citation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *citationService) MarkAsImage(ctx context.Context, id int) error {
	return s.repo.SetType(ctx, id, TypeImage)
}

// apply validates req and copies it onto c, leaving ID and archive fields
// untouched. An empty type keeps the stored one.
func apply(c *Citation, req SaveCitationRequest) error {
	title := sanitize.Text(req.Title)
	if title == "" {
		return apperror.NewValidation("citation title is required")
	}
	if len(title) > 800 {
		return apperror.NewValidation("citation title must be 800 characters or fewer")
	}

	url := strings.TrimSpace(req.URL)
	if url != "" && !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return apperror.NewValidation("citation url must be an http(s) URL")
	}

	pubDate, err := datefmt.Parse(strings.TrimSpace(req.PublicationDate))
	if err != nil {
		return apperror.NewValidation("publication_date must be YYYY-MM-DD")
	}

	c.Title = title
	c.CaselawCitation = sanitize.Text(req.Citation)
	c.URL = url
	c.PublicationTitle = sanitize.Text(req.PublicationTitle)
	c.PublicationAuthor = sanitize.Text(req.PublicationAuthor)
	c.PublicationVolume = sanitize.Text(req.PublicationVolume)
	c.PublicationIssue = sanitize.Text(req.PublicationIssue)
	c.PublicationDate = pubDate
	if req.Type != "" {
		c.Type = req.Type
	}
	return nil
}
