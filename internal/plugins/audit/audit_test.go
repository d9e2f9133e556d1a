package audit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// --- Mock Repository ---

// mockAuditRepo implements AuditRepository for testing.
type mockAuditRepo struct {
	logged []Entry
	logErr error
	listFn func(ctx context.Context, limit, offset int) ([]Entry, int, error)
}

func (m *mockAuditRepo) Log(ctx context.Context, entry *Entry) error {
	if m.logErr != nil {
		return m.logErr
	}
	entry.ID = int64(len(m.logged) + 1)
	m.logged = append(m.logged, *entry)
	return nil
}

func (m *mockAuditRepo) List(ctx context.Context, limit, offset int) ([]Entry, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		method, route, want string
	}{
		{http.MethodPost, "/citations", "citation.created"},
		{http.MethodPut, "/citations/:id", "citation.updated"},
		{http.MethodPut, "/groups/:id", "group.updated"},
		{http.MethodPost, "/images", "image.created"},
		{http.MethodDelete, "/relationships/:id", "relationship.deleted"},
		{http.MethodGet, "/events/:id/relationships", ""},
		{http.MethodPost, "", "unknown.created"},
	}

	for _, tt := range tests {
		if got := ActionFor(tt.method, tt.route); got != tt.want {
			t.Errorf("ActionFor(%s, %q) = %q, want %q", tt.method, tt.route, got, tt.want)
		}
	}
}

func newTestServer(repo *mockAuditRepo) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, map[string]string{"message": appErr.Message})
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
	g := e.Group("/admin/api", Record(NewAuditService(repo), "/admin/api"))
	g.POST("/citations", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]int{"id": 1})
	})
	g.PUT("/citations/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	g.DELETE("/relationships/:id", func(c echo.Context) error {
		return apperror.NewNotFound("relationship not found")
	})
	g.GET("/audit", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

func serve(e *echo.Echo, method, path string) int {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRecord_LogsSuccessfulWrites(t *testing.T) {
	repo := &mockAuditRepo{}
	e := newTestServer(repo)

	serve(e, http.MethodPost, "/admin/api/citations")
	serve(e, http.MethodPut, "/admin/api/citations/7")

	if len(repo.logged) != 2 {
		t.Fatalf("expected 2 entries, got %+v", repo.logged)
	}
	if got := repo.logged[0]; got.Action != "citation.created" || got.Status != http.StatusCreated {
		t.Errorf("unexpected create entry: %+v", got)
	}
	if got := repo.logged[1]; got.Action != "citation.updated" || got.ResourceID != "7" || got.Path != "/admin/api/citations/7" {
		t.Errorf("unexpected update entry: %+v", got)
	}
}

func TestRecord_SkipsReadsAndFailures(t *testing.T) {
	repo := &mockAuditRepo{}
	e := newTestServer(repo)

	serve(e, http.MethodGet, "/admin/api/audit")
	if code := serve(e, http.MethodDelete, "/admin/api/relationships/3"); code != http.StatusNotFound {
		t.Errorf("expected handler error to pass through, got %d", code)
	}

	if len(repo.logged) != 0 {
		t.Errorf("expected nothing logged, got %+v", repo.logged)
	}
}

func TestRecord_StoreFailureDoesNotFailWrite(t *testing.T) {
	repo := &mockAuditRepo{logErr: errors.New("db down")}
	e := newTestServer(repo)

	if code := serve(e, http.MethodPost, "/admin/api/citations"); code != http.StatusCreated {
		t.Errorf("expected 201, got %d", code)
	}
}

func TestList_ClampsPageAndReturnsArray(t *testing.T) {
	var gotLimit, gotOffset int
	repo := &mockAuditRepo{
		listFn: func(ctx context.Context, limit, offset int) ([]Entry, int, error) {
			gotLimit, gotOffset = limit, offset
			return nil, 0, nil
		},
	}
	svc := NewAuditService(repo)

	page, err := svc.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Page != 1 || gotOffset != 0 || gotLimit != perPage {
		t.Errorf("expected first page, got page=%d limit=%d offset=%d", page.Page, gotLimit, gotOffset)
	}
	if page.Entries == nil {
		t.Error("expected empty slice, got nil")
	}

	if _, err := svc.List(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOffset != 2*perPage {
		t.Errorf("expected offset %d, got %d", 2*perPage, gotOffset)
	}
}

func TestLog_RequiresAction(t *testing.T) {
	err := NewAuditService(&mockAuditRepo{}).Log(context.Background(), &Entry{})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
