package http

import (
	"time"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/file"
)

// FileResponse is the shape of file metadata in API responses.
type FileResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewFileResponse converts a domain file.File to its API shape.
func NewFileResponse(f *file.File) FileResponse {
	resp := FileResponse{
		ID:          f.ID,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		URL:         file.URL(f.ID),
		CreatedAt:   f.CreatedAt,
	}
	if f.ThumbnailPath != nil {
		u := file.ThumbnailURL(f.ID)
		resp.ThumbnailURL = &u
	}
	return resp
}
