package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/louisbranch/sacredverses/internal/services/web/backend/backendtest"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/upload"
)

// countingReader records how many body bytes the server consumed.
type countingReader struct {
	r    io.Reader
	read atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read.Add(int64(n))
	return n, err
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

const oversizedUpload = 20 << 20

func oversizedUploadRequest(token string, declareLength bool) (*http.Request, *countingReader) {
	const boundary = "sacredverses-boundary"
	head := "--" + boundary + "\r\n" +
		"Content-Disposition: form-data; name=\"gorilla.csrf.Token\"\r\n\r\n" + token + "\r\n" +
		"--" + boundary + "\r\n" +
		"Content-Disposition: form-data; name=\"image\"; filename=\"big.png\"\r\n" +
		"Content-Type: image/png\r\n\r\n"
	tail := "\r\n--" + boundary + "--\r\n"
	body := &countingReader{r: io.MultiReader(
		strings.NewReader(head),
		io.LimitReader(zeroReader{}, oversizedUpload),
		strings.NewReader(tail),
	)}
	r := httptest.NewRequest(http.MethodPost, "/stories/0/image", body)
	r.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	r.ContentLength = -1
	if declareLength {
		r.ContentLength = int64(len(head) + oversizedUpload + len(tail))
	}
	return r, body
}

func adminUploadHandler(t *testing.T) (http.Handler, *backendtest.Fake) {
	t.Helper()
	fake := backendtest.New().
		WithStories(content.Story{Title: "Ruth and Naomi", Summary: "Loyalty"}).
		WithProfile("ruth", content.UserProfile{Name: "Ruth"}).
		WithRole("ruth", content.RoleAdmin)
	return newTestHandler(t, fake, false), fake
}

func TestOversizedUploadIsRejectedBeforeReadingBody(t *testing.T) {
	t.Parallel()

	h, fake := adminUploadHandler(t)
	auth := sessionCookie(t, "ruth")
	token, cookies := formToken(t, h, auth)

	r, body := oversizedUploadRequest(token, true)
	rr := serve(h, r, append(cookies, auth)...)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "larger than 5MB") {
		t.Fatalf("body = %q, want size message", rr.Body.String())
	}
	if got := body.read.Load(); got != 0 {
		t.Fatalf("body bytes read = %d, want 0", got)
	}
	if got := fake.Calls(backendtest.OpAddStoryOrVerseImage); got != 0 {
		t.Fatalf("upload calls = %d, want 0", got)
	}
}

func TestOversizedChunkedUploadStopsAtLimit(t *testing.T) {
	t.Parallel()

	h, fake := adminUploadHandler(t)
	auth := sessionCookie(t, "ruth")
	token, cookies := formToken(t, h, auth)

	r, body := oversizedUploadRequest(token, false)
	rr := serve(h, r, append(cookies, auth)...)
	if rr.Code == http.StatusOK || rr.Code == http.StatusSeeOther {
		t.Fatalf("status = %d, want a rejection", rr.Code)
	}
	if got := body.read.Load(); got > upload.MaxRequestBytes+1 {
		t.Fatalf("body bytes read = %d, want at most %d", got, upload.MaxRequestBytes+1)
	}
	if got := fake.Calls(backendtest.OpAddStoryOrVerseImage); got != 0 {
		t.Fatalf("upload calls = %d, want 0", got)
	}
}

func TestOversizedFormIsRejected(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, backendtest.New(), false)
	r := httptest.NewRequest(http.MethodPost, "/profile", io.LimitReader(zeroReader{}, 2*maxFormRequestBytes))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ContentLength = 2 * maxFormRequestBytes
	rr := serve(h, r, sessionCookie(t, "naomi"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rr.Body.String(), "too large") {
		t.Fatalf("body = %q, want size message", rr.Body.String())
	}
}

func TestIsImageUploadPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{path: "/stories/0/image", want: true},
		{path: "/stories/12/image", want: true},
		{path: "/stories/x/image", want: false},
		{path: "/stories/0", want: false},
		{path: "/profile", want: false},
	}
	for _, tc := range tests {
		if got := isImageUploadPath(tc.path); got != tc.want {
			t.Fatalf("isImageUploadPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
