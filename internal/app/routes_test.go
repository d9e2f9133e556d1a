package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/config"
	"github.com/keyxmakerx/timeline/internal/plugins/timelines"
)

// stubTimelines knows a single timeline.
type stubTimelines struct{}

func (stubTimelines) GetBySlug(ctx context.Context, slug string) (*timelines.Meta, error) {
	if slug == "civil-rights" {
		return &timelines.Meta{ID: 1, Slug: slug, Title: "Civil Rights", Subtitle: "1850-1930"}, nil
	}
	return nil, apperror.NewNotFound("timeline not found")
}

func (stubTimelines) List(ctx context.Context) ([]timelines.Meta, error) {
	return []timelines.Meta{{ID: 1, Slug: "civil-rights", Title: "Civil Rights", Subtitle: "1850-1930"}}, nil
}

func (stubTimelines) Themes(ctx context.Context, slug string) (timelines.ThemeMap, error) {
	return timelines.ThemeMap{"voting": "Voting Rights"}, nil
}

func (stubTimelines) YearSettings() config.YearToggles {
	return config.YearToggles{Min: 1850, Max: 1930}
}

// newTestApp mounts every route with only the timeline service populated.
// Unknown slugs must be rejected before any other service is reached.
func newTestApp(t *testing.T, adminHash string) *App {
	t.Helper()
	cfg := &config.Config{
		Env:     "development",
		BaseURL: "http://viewer.test",
		Upload:  config.UploadConfig{MediaURL: "/media", MediaPath: t.TempDir(), MaxSize: 1 << 20},
		Admin:   config.AdminConfig{TokenHash: adminHash},
	}
	a := New(cfg, nil, nil)
	a.mountRoutes(services{timelines: stubTimelines{}})
	return a
}

func get(a *App, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_UnknownSlugIs404Everywhere(t *testing.T) {
	a := newTestApp(t, "")

	for _, path := range []string{
		"/events/unknown",
		"/event/1/unknown",
		"/years/unknown",
		"/groups/unknown",
		"/groups-by-region/unknown",
		"/year-settings/unknown",
		"/themes/unknown",
		"/meta/unknown",
		"/findings/unknown",
	} {
		rec := get(a, path)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, rec.Code)
			continue
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Errorf("GET %s: expected JSON error body, got %q", path, rec.Body.String())
			continue
		}
		if body["error"] != "Not Found" || body["message"] != "timeline not found" {
			t.Errorf("GET %s: unexpected body %v", path, body)
		}
	}
}

func TestRoutes_KnownSlugReads(t *testing.T) {
	a := newTestApp(t, "")

	rec := get(a, "/year-settings/civil-rights")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"min":1850,"max":1930}` {
		t.Errorf("year-settings: %d %s", rec.Code, rec.Body.String())
	}

	rec = get(a, "/themes/civil-rights")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"voting":"Voting Rights"}` {
		t.Errorf("themes: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRoutes_UnknownPathIsJSON404(t *testing.T) {
	a := newTestApp(t, "")

	rec := get(a, "/no/such/route")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Errorf("expected JSON error, got %q", rec.Header().Get("Content-Type"))
	}
}

func TestRoutes_AdminDisabledWithoutHash(t *testing.T) {
	a := newTestApp(t, "")

	req := httptest.NewRequest(http.MethodPost, "/admin/api/citations", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer anything")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected admin API to be unmounted, got %d", rec.Code)
	}
}

func TestRoutes_AdminRequiresToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("operator"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	a := newTestApp(t, string(hash))

	for _, path := range []string{"/admin/api/citations", "/admin/api/relationships", "/admin/api/images"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer wrong")
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("POST %s: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestIndex_ListsTimelines(t *testing.T) {
	a := newTestApp(t, "")

	rec := get(a, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("expected HTML, got %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), `href="/meta/civil-rights"`) {
		t.Errorf("expected timeline link in %s", rec.Body.String())
	}
}

func TestHealthz_WithoutDB(t *testing.T) {
	a := newTestApp(t, "")

	if rec := get(a, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCORS_ViewerOrigin(t *testing.T) {
	a := newTestApp(t, "")

	req := httptest.NewRequest(http.MethodGet, "/meta/civil-rights", nil)
	req.Header.Set("Origin", "http://viewer.test")
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://viewer.test" {
		t.Errorf("expected viewer origin allowed, got %q", got)
	}
}

func TestRecovery_PanicIsJSON500(t *testing.T) {
	a := newTestApp(t, "")
	a.Echo.GET("/boom", func(c echo.Context) error { panic("boom") })

	rec := get(a, "/boom")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Internal Server Error"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestApp_ShutdownStopsBackgroundWork(t *testing.T) {
	a := newTestApp(t, "")
	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if a.ctx.Err() == nil {
		t.Error("expected background context to be cancelled after shutdown")
	}
}
