// Package media stores event illustrations. Each image is a file on local
// disk, laid out in date-based directories, with one downscaled thumbnail,
// and it is owned by the citation that sources it.
package media

import (
	"time"
)

// Image is an uploaded illustration stored on disk.
type Image struct {
	ID           int       `json:"id"`
	Filename     string    `json:"filename"`      // UUID-based path relative to the media root.
	OriginalName string    `json:"original_name"` // Uploader's filename.
	MimeType     string    `json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	Thumbnail    string    `json:"thumbnail"` // Empty when the original is already small.
	CitationID   *int      `json:"citation_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadInput holds the input for storing a new image.
type UploadInput struct {
	CitationID   int
	OriginalName string
	MimeType     string
	FileBytes    []byte
}

// UploadResponse is the JSON response returned after a successful upload.
type UploadResponse struct {
	ID           int    `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	CitationID   *int   `json:"citation_id"`
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
}

// --- MIME Type Validation ---

// AllowedMimeTypes defines which MIME types are accepted for upload.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MimeToExtension maps MIME types to file extensions.
var MimeToExtension = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ThumbnailSize is the longest edge of generated thumbnails, in pixels.
const ThumbnailSize = 300
