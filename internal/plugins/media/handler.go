package media

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/timeline/internal/apperror"
)

// Handler handles HTTP requests for image operations.
type Handler struct {
	service  ImageService
	mediaURL string // URL prefix the media root is served under.
}

// NewHandler creates a new media handler.
func NewHandler(service ImageService, mediaURL string) *Handler {
	return &Handler{service: service, mediaURL: strings.TrimSuffix(mediaURL, "/")}
}

// Upload handles multipart image uploads (POST /admin/api/images). The form
// carries the file and the ID of the citation that sources it.
func (h *Handler) Upload(c echo.Context) error {
	citationID, err := strconv.Atoi(c.FormValue("citation_id"))
	if err != nil {
		return apperror.NewBadRequest("citation_id is required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return apperror.NewBadRequest("no file provided")
	}
	src, err := file.Open()
	if err != nil {
		return apperror.NewInternal(err)
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return apperror.NewInternal(err)
	}

	img, err := h.service.Upload(c.Request().Context(), UploadInput{
		CitationID:   citationID,
		OriginalName: file.Filename,
		MimeType:     file.Header.Get("Content-Type"),
		FileBytes:    fileBytes,
	})
	if err != nil {
		return err
	}

	resp := UploadResponse{
		ID:         img.ID,
		URL:        h.mediaURL + "/" + img.Filename,
		CitationID: img.CitationID,
		MimeType:   img.MimeType,
		FileSize:   img.FileSize,
	}
	resp.ThumbnailURL = resp.URL
	if img.Thumbnail != "" {
		resp.ThumbnailURL = h.mediaURL + "/" + img.Thumbnail
	}
	return c.JSON(http.StatusCreated, resp)
}

// Serve serves a stored image or thumbnail (GET {mediaURL}/*).
func (h *Handler) Serve(c echo.Context) error {
	path := h.service.FilePath(c.Param("*"))
	if path == "" {
		return apperror.NewNotFound("image not found")
	}

	// UUID-based filenames never change.
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.File(path)
}
