// Package upload validates admin image uploads and tracks their progress.
package upload

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
)

const (
	// MaxImageBytes is the largest accepted image.
	MaxImageBytes = 5 << 20
	// MaxRequestBytes caps an upload request body, leaving room for
	// multipart framing and form fields around the image.
	MaxRequestBytes = MaxImageBytes + 1<<20
)

// Validate checks data before any network call and wraps it as a
// byte-backed image. The content type is sniffed from the bytes; the
// client-declared type is ignored.
func Validate(data []byte) (*content.Image, error) {
	if len(data) == 0 {
		return nil, apperrors.EK(apperrors.KindInvalidInput, "error.upload.empty", "choose an image to upload")
	}
	if len(data) > MaxImageBytes {
		return nil, apperrors.EK(apperrors.KindInvalidInput, "error.upload.too_large", "image must be 5MB or smaller")
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperrors.EK(apperrors.KindInvalidInput, "error.upload.not_image", "please select an image file")
	}
	return content.FromBytes(data).WithContentType(contentType), nil
}

// Read reads at most one byte past MaxImageBytes from r and validates the
// result, so oversized files are rejected without buffering them whole.
func Read(r io.Reader) (*content.Image, error) {
	if r == nil {
		return Validate(nil)
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "error.upload.unreadable", "image could not be read", fmt.Errorf("read upload: %w", err))
	}
	return Validate(data)
}
