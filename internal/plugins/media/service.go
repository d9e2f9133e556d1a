package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	// Register decoders for image formats.
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/keyxmakerx/timeline/internal/apperror"
	"github.com/keyxmakerx/timeline/internal/plugins/citations"
)

// CitationMarker is the slice of the citation service an upload needs: the
// source citation must exist, and is retyped as "image" once the upload is
// stored.
type CitationMarker interface {
	GetByID(ctx context.Context, id int) (*citations.Citation, error)
	MarkAsImage(ctx context.Context, id int) error
}

// ImageService handles business logic for image uploads.
type ImageService interface {
	Upload(ctx context.Context, input UploadInput) (*Image, error)
	GetByID(ctx context.Context, id int) (*Image, error)

	// FilePath returns the absolute on-disk path for a path relative to the
	// media root, or "" if it would escape the root.
	FilePath(rel string) string
}

// imageService implements ImageService.
type imageService struct {
	repo      ImageRepository
	citations CitationMarker
	mediaPath string // Root directory for file storage.
	maxSize   int64  // Maximum file size in bytes.
}

// NewImageService creates a new image service.
func NewImageService(repo ImageRepository, citations CitationMarker, mediaPath string, maxSize int64) ImageService {
	return &imageService{
		repo:      repo,
		citations: citations,
		mediaPath: mediaPath,
		maxSize:   maxSize,
	}
}

// Upload validates, stores, and records a new image, then marks its source
// citation as an image citation.
func (s *imageService) Upload(ctx context.Context, input UploadInput) (*Image, error) {
	if !AllowedMimeTypes[input.MimeType] {
		return nil, apperror.NewBadRequest("unsupported file type: " + input.MimeType)
	}
	if int64(len(input.FileBytes)) > s.maxSize {
		return nil, apperror.NewBadRequest(fmt.Sprintf("file too large; maximum size is %d MB", s.maxSize/(1024*1024)))
	}
	// Reject non-image files sent with a spoofed Content-Type.
	if !validateMagicBytes(input.FileBytes, input.MimeType) {
		return nil, apperror.NewBadRequest("file content does not match declared type")
	}

	if _, err := s.citations.GetByID(ctx, input.CitationID); err != nil {
		return nil, err
	}

	// UUID filename in a date-based directory.
	id := uuid.NewString()
	now := time.Now().UTC()
	subdir := now.Format("2006/01")
	dir := filepath.Join(s.mediaPath, subdir)
	ext := MimeToExtension[input.MimeType]
	filename := id + ext

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating media directory: %w", err))
	}
	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, input.FileBytes, 0644); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("writing image file: %w", err))
	}

	citationID := input.CitationID
	img := &Image{
		Filename:     filepath.ToSlash(filepath.Join(subdir, filename)),
		OriginalName: input.OriginalName,
		MimeType:     input.MimeType,
		FileSize:     int64(len(input.FileBytes)),
		CitationID:   &citationID,
		CreatedAt:    now,
	}

	// Animated GIFs would lose their frames.
	if input.MimeType != "image/gif" {
		thumb, err := generateThumbnail(input.FileBytes, dir, id, ext, ThumbnailSize)
		if err != nil {
			slog.Warn("thumbnail generation skipped",
				slog.String("file", img.Filename),
				slog.Any("error", err),
			)
		} else {
			img.Thumbnail = filepath.ToSlash(filepath.Join(subdir, thumb))
		}
	}

	if err := s.repo.Create(ctx, img); err != nil {
		// Clean up disk files on DB failure.
		s.removeFiles(img)
		return nil, apperror.NewInternal(fmt.Errorf("saving image record: %w", err))
	}

	// An image row must never point at a citation that is not typed as an
	// image, so undo the upload when the retype fails.
	if err := s.citations.MarkAsImage(ctx, input.CitationID); err != nil {
		if delErr := s.repo.Delete(ctx, img.ID); delErr != nil {
			slog.Error("removing image row after failed citation retype",
				slog.Int("id", img.ID),
				slog.Any("error", delErr),
			)
		}
		s.removeFiles(img)
		return nil, apperror.NewInternal(fmt.Errorf("marking citation as image: %w", err))
	}

	slog.Info("image uploaded",
		slog.Int("id", img.ID),
		slog.Int("citation_id", input.CitationID),
		slog.String("mime_type", img.MimeType),
		slog.Int64("size", img.FileSize),
	)
	return img, nil
}

// removeFiles deletes the stored original and thumbnail of img.
func (s *imageService) removeFiles(img *Image) {
	os.Remove(filepath.Join(s.mediaPath, filepath.FromSlash(img.Filename)))
	if img.Thumbnail != "" {
		os.Remove(filepath.Join(s.mediaPath, filepath.FromSlash(img.Thumbnail)))
	}
}

func (s *imageService) GetByID(ctx context.Context, id int) (*Image, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *imageService) FilePath(rel string) string {
	clean := filepath.Clean("/" + filepath.FromSlash(rel))
	if clean == string(filepath.Separator) {
		return ""
	}
	return filepath.Join(s.mediaPath, clean)
}

// generateThumbnail writes a copy of the image scaled so its longest edge is
// maxDim, returning the thumbnail's filename.
func generateThumbnail(data []byte, dir, id, ext string, maxDim int) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return "", fmt.Errorf("image already smaller than %d", maxDim)
	}

	// Maintain aspect ratio.
	newW, newH := maxDim, maxDim
	if w > h {
		newH = h * maxDim / w
	} else {
		newW = w * maxDim / h
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	// WebP has no encoder in x/image; those thumbnails are written as JPEG.
	thumbExt := ext
	if ext == ".webp" {
		thumbExt = ".jpg"
	}
	thumbFilename := fmt.Sprintf("%s_%d%s", id, maxDim, thumbExt)
	thumbPath := filepath.Join(dir, thumbFilename)

	f, err := os.Create(thumbPath)
	if err != nil {
		return "", fmt.Errorf("creating thumbnail file: %w", err)
	}
	defer f.Close()

	switch thumbExt {
	case ".png":
		err = png.Encode(f, dst)
	default:
		err = jpeg.Encode(f, dst, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		os.Remove(thumbPath)
		return "", fmt.Errorf("encoding thumbnail: %w", err)
	}
	return thumbFilename, nil
}

// validateMagicBytes checks that the file content's magic bytes match the
// declared MIME type.
func validateMagicBytes(data []byte, declaredMIME string) bool {
	if len(data) < 4 {
		return false
	}
	switch declaredMIME {
	case "image/jpeg":
		return data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
	case "image/png":
		return len(data) >= 8 &&
			data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 &&
			data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A
	case "image/gif":
		return len(data) >= 6 && string(data[:3]) == "GIF"
	case "image/webp":
		return len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP"
	default:
		return false
	}
}
