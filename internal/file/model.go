package file

import (
	"net/http"
	"time"

	"github.com/Justinkingbella/namibia-service-connect-sub002/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "file not found")
	ErrNoThumbnail      = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrTooLarge         = apperror.New(http.StatusRequestEntityTooLarge, "file exceeds the upload size limit")
	ErrUnsupportedType  = apperror.New(http.StatusUnsupportedMediaType, "only image uploads are supported")
)

// File is an uploaded object, typically a service listing image.
type File struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"` // Internal path
	ThumbnailPath *string   `json:"-"` // Internal path
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public URL for accessing a file by its ID.
func URL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
