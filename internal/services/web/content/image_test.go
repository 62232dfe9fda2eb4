package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestFromURLDirectURL(t *testing.T) {
	t.Parallel()

	img := FromURL(" https://cdn.example.com/a.png ")
	if got := img.DirectURL(); got != "https://cdn.example.com/a.png" {
		t.Fatalf("DirectURL() = %q, want %q", got, "https://cdn.example.com/a.png")
	}
	if img.NeedsUpload() {
		t.Fatal("NeedsUpload() = true, want false for URL-backed image")
	}
}

func TestFromBytesDirectURLUsesDataURL(t *testing.T) {
	t.Parallel()

	img := FromBytes(pngHeader)
	if !img.NeedsUpload() {
		t.Fatal("NeedsUpload() = false, want true")
	}
	if img.ContentType() != "image/png" {
		t.Fatalf("ContentType() = %q, want image/png", img.ContentType())
	}
	if got := img.DirectURL(); !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("DirectURL() = %q, want data URL", got)
	}
}

func TestReportProgressIsMonotonicAndClamped(t *testing.T) {
	t.Parallel()

	var got []int
	img := FromBytes(pngHeader).WithUploadProgress(func(percent int) {
		got = append(got, percent)
	})
	for _, p := range []int{-5, 10, 40, 30, 100, 140} {
		img.ReportProgress(p)
	}
	want := []int{0, 10, 40, 40, 100, 100}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestWithUploadProgressDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()

	calls := 0
	original := FromBytes(pngHeader)
	_ = original.WithUploadProgress(func(int) { calls++ })
	original.ReportProgress(50)
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestBytesFetchesURLBackedImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	data, err := FromURL(srv.URL + "/img.png").Bytes(context.Background())
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if diff := cmp.Diff(pngHeader, data); diff != "" {
		t.Fatalf("bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestBytesRejectsNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if _, err := FromURL(srv.URL).Bytes(context.Background()); err == nil {
		t.Fatal("expected error for 404 image")
	}
}

func TestConcurrentReportsDeliverInOrder(t *testing.T) {
	t.Parallel()

	var got []int
	img := FromBytes(pngHeader).WithUploadProgress(func(percent int) {
		got = append(got, percent)
	})
	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for p := offset; p <= 100; p += 8 {
				img.ReportProgress(p)
			}
		}(worker)
	}
	wg.Wait()

	if len(got) != 101 {
		t.Fatalf("callbacks = %d, want 101", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("progress[%d] = %d after %d, want non-decreasing", i, got[i], got[i-1])
		}
	}
}

func TestBytesRejectsOversizedImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, maxFetchedImageBytes+1))
	}))
	defer srv.Close()

	if _, err := FromURL(srv.URL).Bytes(context.Background()); err == nil {
		t.Fatal("Bytes() error = nil, want error for oversized image")
	}
}
