package content

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// maxFetchedImageBytes bounds Bytes for URL-backed images.
const maxFetchedImageBytes = 16 << 20

// ProgressFunc receives upload progress as a percentage in [0, 100].
type ProgressFunc func(percent int)

// Image is either a remote URL reference or raw bytes awaiting upload.
//
// Both forms resolve to a direct URL for display, so pages never branch on
// where the image came from.
type Image struct {
	url         string
	data        []byte
	contentType string
	progress    *progress
}

// FromURL references an image already hosted remotely.
func FromURL(url string) *Image {
	return &Image{url: strings.TrimSpace(url)}
}

// FromBytes wraps raw image bytes that still need to be uploaded.
func FromBytes(data []byte) *Image {
	contentType := ""
	if len(data) > 0 {
		contentType = http.DetectContentType(data)
	}
	return &Image{data: data, contentType: contentType}
}

// WithUploadProgress returns a copy of the image that reports upload progress to fn.
func (i *Image) WithUploadProgress(fn ProgressFunc) *Image {
	if i == nil {
		return nil
	}
	clone := *i
	clone.progress = &progress{fn: fn, last: -1}
	return &clone
}

// WithContentType overrides the sniffed content type.
func (i *Image) WithContentType(contentType string) *Image {
	if i == nil {
		return nil
	}
	clone := *i
	clone.contentType = strings.TrimSpace(contentType)
	return &clone
}

// NeedsUpload reports whether the image is byte-backed.
func (i *Image) NeedsUpload() bool {
	return i != nil && i.url == "" && len(i.data) > 0
}

// ContentType returns the MIME type of byte-backed images.
func (i *Image) ContentType() string {
	if i == nil {
		return ""
	}
	return i.contentType
}

// Size returns the byte length of byte-backed images.
func (i *Image) Size() int {
	if i == nil {
		return 0
	}
	return len(i.data)
}

// DirectURL resolves an address the browser can load the image from.
func (i *Image) DirectURL() string {
	if i == nil {
		return ""
	}
	if i.url != "" {
		return i.url
	}
	if len(i.data) == 0 {
		return ""
	}
	contentType := i.contentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(i.data)
}

// Bytes returns the raw image bytes, fetching URL-backed images over HTTP.
func (i *Image) Bytes(ctx context.Context) ([]byte, error) {
	if i == nil {
		return nil, fmt.Errorf("image is nil")
	}
	if i.url == "" {
		return i.data, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchedImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxFetchedImageBytes {
		return nil, fmt.Errorf("read image: larger than %d bytes", maxFetchedImageBytes)
	}
	return data, nil
}

// ReportProgress forwards percent to the progress callback.
//
// Values are clamped to [0, 100] and never decrease.
func (i *Image) ReportProgress(percent int) {
	if i == nil || i.progress == nil {
		return
	}
	i.progress.report(percent)
}

type progress struct {
	mu   sync.Mutex
	fn   ProgressFunc
	last int
}

func (p *progress) report(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	// Delivery stays under the lock so concurrent reporters cannot reorder
	// callbacks. fn must not report progress itself.
	p.mu.Lock()
	defer p.mu.Unlock()
	if percent < p.last {
		percent = p.last
	}
	p.last = percent
	if p.fn != nil {
		p.fn(percent)
	}
}
