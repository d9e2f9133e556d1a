package findings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/config"
	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
)

// mockFindingRepo implements FindingRepository for testing.
type mockFindingRepo struct {
	listByTimelineFn func(ctx context.Context, timeline string) ([]Finding, error)
	findByIDFn       func(ctx context.Context, id int) (*Finding, error)
	missingEventsFn  func(ctx context.Context, ids []int) ([]int, error)
	saved            []Finding
}

func (m *mockFindingRepo) ListByTimeline(ctx context.Context, timeline string) ([]Finding, error) {
	if m.listByTimelineFn != nil {
		return m.listByTimelineFn(ctx, timeline)
	}
	return nil, nil
}

func (m *mockFindingRepo) FindByID(ctx context.Context, id int) (*Finding, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("finding not found")
}

func (m *mockFindingRepo) Save(ctx context.Context, f *Finding) error {
	if f.ID == 0 {
		f.ID = len(m.saved) + 1
	}
	m.saved = append(m.saved, *f)
	return nil
}

func (m *mockFindingRepo) Delete(ctx context.Context, id int) error {
	return apperror.NewNotFound("finding not found")
}

func (m *mockFindingRepo) MissingEvents(ctx context.Context, ids []int) ([]int, error) {
	if m.missingEventsFn != nil {
		return m.missingEventsFn(ctx, ids)
	}
	return nil, nil
}

// stubTimelines resolves only the "civil-rights" slug.
type stubTimelines struct{}

func (stubTimelines) GetBySlug(ctx context.Context, slug string) (*timelines.Meta, error) {
	if slug == "civil-rights" {
		return &timelines.Meta{ID: 1, Slug: slug}, nil
	}
	return nil, apperror.NewNotFound("timeline not found")
}

func (stubTimelines) List(ctx context.Context) ([]timelines.Meta, error) { return nil, nil }

func (stubTimelines) Themes(ctx context.Context, slug string) (timelines.ThemeMap, error) {
	return nil, nil
}

func (stubTimelines) YearSettings() config.YearToggles { return config.YearToggles{} }

func serve(repo FindingRepository, path string) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, map[string]string{"message": appErr.Message})
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
	RegisterRoutes(e, NewHandler(NewFindingService(repo)), stubTimelines{})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestList_UnknownSlugIs404(t *testing.T) {
	if rec := serve(&mockFindingRepo{}, "/findings/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestList_EmptyIsArray(t *testing.T) {
	rec := serve(&mockFindingRepo{}, "/findings/civil-rights")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "[]\n" {
		t.Errorf("expected [], got %q", rec.Body.String())
	}
}

func TestList_Shape(t *testing.T) {
	var gotTimeline string
	repo := &mockFindingRepo{
		listByTimelineFn: func(ctx context.Context, timeline string) ([]Finding, error) {
			gotTimeline = timeline
			return []Finding{{ID: 1, DescriptionShort: "short", DescriptionLong: "long", EventIDs: []int{2, 3}}}, nil
		},
	}

	rec := serve(repo, "/findings/civil-rights")
	want := `[{"id":1,"description_short":"short","description_long":"long","events":[2,3]}]` + "\n"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
	if gotTimeline != "civil-rights" {
		t.Errorf("expected timeline slug passed through, got %q", gotTimeline)
	}
}
