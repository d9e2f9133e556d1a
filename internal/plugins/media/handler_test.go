package media

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

func newTestServer(svc ImageService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, map[string]string{"message": appErr.Message})
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
	h := NewHandler(svc, "/media/")
	RegisterRoutes(e, h)
	RegisterAdminRoutes(e.Group("/admin/api"), h, 1<<20)
	return e
}

// multipartUpload builds an upload request with the given form values.
func multipartUpload(t *testing.T, citationID, mime string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if citationID != "" {
		w.WriteField("citation_id", citationID)
	}
	if data != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="march.png"`)
		header.Set("Content-Type", mime)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(data)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/api/images", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadHandler_CreatesAndServes(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := newTestServer(svc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, multipartUpload(t, "9", "image/png", pngBytes(t, 600, 300)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.CitationID == nil || *resp.CitationID != 9 {
		t.Errorf("expected citation 9, got %v", resp.CitationID)
	}
	if resp.ThumbnailURL == resp.URL {
		t.Error("expected a distinct thumbnail url")
	}

	// The returned URL is served from disk.
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d", resp.URL, rec.Code)
	}
	if rec.Header().Get("Cache-Control") == "" {
		t.Error("expected cache headers")
	}
}

func TestUploadHandler_BadRequests(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := newTestServer(svc)

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"missing citation", multipartUpload(t, "", "image/png", pngBytes(t, 10, 10))},
		{"non-numeric citation", multipartUpload(t, "abc", "image/png", pngBytes(t, 10, 10))},
		{"missing file", multipartUpload(t, "9", "", nil)},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, tt.req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, rec.Code)
		}
	}
}

func TestServe_MissingFileIs404(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	e := newTestServer(svc)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/2024/01/nope.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
