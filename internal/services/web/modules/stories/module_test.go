package stories

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/sacredverses/internal/services/web/backend/backendtest"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/data"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/session"
	"github.com/louisbranch/sacredverses/internal/services/web/query"
	"github.com/louisbranch/sacredverses/internal/services/web/upload"
)

var (
	adminCaller = content.Caller{Principal: "admin-1"}
	userCaller  = content.Caller{Principal: "ruth"}
	pngHeader   = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
)

type fixture struct {
	fake    *backendtest.Fake
	tracker *upload.Tracker
	handler http.Handler
}

func newFixture(t *testing.T, stories ...content.Story) fixture {
	t.Helper()
	fake := backendtest.New().WithStories(stories...).WithRole(adminCaller.Principal, content.RoleAdmin)
	tracker := upload.NewTracker(nil, 0)
	t.Cleanup(tracker.Wait)
	m := New(data.New(query.NewClient(), fake), modulehandler.NewTestBase(), tracker)
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return fixture{fake: fake, tracker: tracker, handler: mount.Handler}
}

func sampleStories() []content.Story {
	return []content.Story{
		{Title: "Creation", Summary: "In the beginning", Verses: []content.Verse{{Reference: "Genesis 1:1", Text: "In the beginning God created"}}},
		{Title: "The Exodus", Summary: "Out of Egypt", Verses: []content.Verse{{Reference: "Exodus 3:14"}, {Reference: "Exodus 14:21"}}},
	}
}

func (f fixture) serve(r *http.Request, caller content.Caller) *httptest.ResponseRecorder {
	if !caller.IsAnonymous() {
		r = r.WithContext(session.WithCaller(r.Context(), caller))
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, r)
	return rr
}

func uploadRequest(t *testing.T, index string, data []byte, htmx bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(uploadField, "image.png")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	r := httptest.NewRequest(http.MethodPost, "/stories/"+index+"/image", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	if htmx {
		r.Header.Set("HX-Request", "true")
	}
	return r
}

func TestModuleIDAndPrefixes(t *testing.T) {
	t.Parallel()

	m := New(nil, modulehandler.NewTestBase(), nil)
	if got := m.ID(); got != "stories" {
		t.Fatalf("ID() = %q, want %q", got, "stories")
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if len(mount.Prefixes) != 3 {
		t.Fatalf("prefixes = %v, want 3", mount.Prefixes)
	}
	if m.Healthy() {
		t.Fatalf("Healthy() = true, want false without gateway")
	}
}

func TestListRendersSkeletonWhenCold(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleStories()...)
	rr := f.serve(httptest.NewRequest(http.MethodGet, "/stories", nil), content.Anonymous())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `hx-get="/stories?partial=content"`) {
		t.Fatalf("body missing skeleton loader")
	}
	if got := f.fake.Calls(backendtest.OpGetStories); got != 0 {
		t.Fatalf("GetStories calls = %d, want 0 before the fragment loads", got)
	}
}

func TestListFragmentThenWarmPage(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleStories()...)
	rr := f.serve(httptest.NewRequest(http.MethodGet, "/stories?partial=content", nil), content.Anonymous())
	body := rr.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatalf("fragment rendered the layout")
	}
	for _, want := range []string{"Creation", "1 verse<", "2 verses<", `href="/stories/1"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("fragment missing %q", want)
		}
	}

	rr = f.serve(httptest.NewRequest(http.MethodGet, "/stories", nil), content.Anonymous())
	body = rr.Body.String()
	if strings.Contains(body, "skeleton-card") || !strings.Contains(body, "The Exodus") {
		t.Fatalf("warm page should render cached stories directly")
	}
	if got := f.fake.Calls(backendtest.OpGetStories); got != 1 {
		t.Fatalf("GetStories calls = %d, want 1", got)
	}
}

func TestListFragmentStates(t *testing.T) {
	t.Parallel()

	empty := newFixture(t)
	rr := empty.serve(httptest.NewRequest(http.MethodGet, "/stories?partial=content", nil), content.Anonymous())
	if !strings.Contains(rr.Body.String(), "No stories are available right now.") {
		t.Fatalf("empty fragment missing empty state")
	}

	failing := newFixture(t)
	failing.fake.SetError(backendtest.OpGetStories, apperrors.E(apperrors.KindUnavailable, "down"))
	rr = failing.serve(httptest.NewRequest(http.MethodGet, "/stories?partial=content", nil), content.Anonymous())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d so htmx swaps the alert", rr.Code, http.StatusOK)
	}
	if body := rr.Body.String(); !strings.Contains(body, "Failed to load stories. Please try again later.") || strings.Contains(body, "down") {
		t.Fatalf("error fragment = %q", body)
	}
}

func TestDetail(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleStories()...)
	rr := f.serve(httptest.NewRequest(http.MethodGet, "/stories/0", nil), content.Anonymous())
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Creation", "Genesis 1:1", "In the beginning God created", "No image available", "Back to Stories"} {
		if !strings.Contains(body, want) {
			t.Fatalf("detail missing %q", want)
		}
	}
	if strings.Contains(body, "upload-form") {
		t.Fatalf("anonymous caller should not see the upload form")
	}

	rr = f.serve(httptest.NewRequest(http.MethodGet, "/stories/0", nil), adminCaller)
	if !strings.Contains(rr.Body.String(), `action="/stories/0/image"`) {
		t.Fatalf("admin should see the upload form")
	}
}

func TestDetailNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleStories()...)
	for _, path := range []string{"/stories/2", "/stories/abc", "/stories/-1"} {
		rr := f.serve(httptest.NewRequest(http.MethodGet, path, nil), content.Anonymous())
		if rr.Code != http.StatusNotFound {
			t.Fatalf("%s status = %d, want %d", path, rr.Code, http.StatusNotFound)
		}
		if !strings.Contains(rr.Body.String(), "Story not found. Please try again.") {
			t.Fatalf("%s missing not-found message", path)
		}
	}

	failing := newFixture(t)
	failing.fake.SetError(backendtest.OpGetStories, apperrors.E(apperrors.KindUnavailable, "down"))
	rr := failing.serve(httptest.NewRequest(http.MethodGet, "/stories/0", nil), content.Anonymous())
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rr.Body.String(), "Story not found. Please try again.") {
		t.Fatalf("fetch error should render the not-found message")
	}
}

func TestUploadFlow(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleStories()...)
	rr := f.serve(uploadRequest(t, "1", pngHeader, true), adminCaller)
	if rr.Code != http.StatusOK {
		t.Fatalf("upload status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	body := rr.Body.String()
	start := strings.Index(body, `hx-get="/uploads/`)
	if start < 0 {
		t.Fatalf("upload response missing progress poll: %q", body)
	}
	rest := body[start+len(`hx-get="`):]
	pollPath := rest[:strings.Index(rest, `"`)]

	f.tracker.Wait()
	rr = f.serve(httptest.NewRequest(http.MethodGet, pollPath, nil), adminCaller)
	if rr.Code != statusStopPolling {
		t.Fatalf("poll status = %d, want %d", rr.Code, statusStopPolling)
	}
	if rr.Header().Get("HX-Refresh") != "true" {
		t.Fatalf("finished upload should refresh the page")
	}
	if got := f.fake.Calls(backendtest.OpAddStoryOrVerseImage); got != 1 {
		t.Fatalf("AddStoryOrVerseImage calls = %d, want 1", got)
	}

	rr = f.serve(httptest.NewRequest(http.MethodGet, "/stories/1", nil), content.Anonymous())
	if !strings.Contains(rr.Body.String(), backendtest.UploadedImageURL(true, 1)) {
		t.Fatalf("story detail should show the uploaded image after invalidation")
	}

	rr = f.serve(httptest.NewRequest(http.MethodGet, pollPath, nil), userCaller)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("other caller poll status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUploadWithoutHTMXRedirectsToStory(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleStories()...)
	rr := f.serve(uploadRequest(t, "0", pngHeader, false), adminCaller)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); !strings.HasPrefix(got, "/stories/0?upload=") {
		t.Fatalf("Location = %q, want story page with upload id", got)
	}
}

func TestUploadRejectsInvalidFileWithoutNewBackendCalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "not an image", data: []byte("just some text"), want: "The selected file is not an image."},
		{name: "too large", data: append(append([]byte{}, pngHeader...), make([]byte, upload.MaxImageBytes)...), want: "The image is larger than 5MB."},
		{name: "empty", data: nil, want: "Please choose an image to upload."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, sampleStories()...)
			// The upload form is only offered on a rendered story page.
			f.serve(httptest.NewRequest(http.MethodGet, "/stories/0", nil), adminCaller)
			ops := []string{backendtest.OpIsCallerAdmin, backendtest.OpGetStories, backendtest.OpAddStoryOrVerseImage}
			before := make(map[string]int, len(ops))
			for _, op := range ops {
				before[op] = f.fake.Calls(op)
			}

			rr := f.serve(uploadRequest(t, "0", tc.data, true), adminCaller)
			if !strings.Contains(rr.Body.String(), tc.want) {
				t.Fatalf("body = %q, want %q", rr.Body.String(), tc.want)
			}
			for _, op := range ops {
				if got := f.fake.Calls(op); got != before[op] {
					t.Fatalf("%s calls = %d, want %d", op, got, before[op])
				}
			}
		})
	}
}

func TestUploadRequiresAdmin(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleStories()...)
	rr := f.serve(uploadRequest(t, "0", pngHeader, true), content.Anonymous())
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	rr = f.serve(uploadRequest(t, "0", pngHeader, true), userCaller)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("user status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	rr = f.serve(uploadRequest(t, "9", pngHeader, true), adminCaller)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing story status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if got := f.fake.Calls(backendtest.OpAddStoryOrVerseImage); got != 0 {
		t.Fatalf("AddStoryOrVerseImage calls = %d, want 0", got)
	}
}

func TestUploadChecksAdminBeforeFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleStories()...)
	rr := f.serve(uploadRequest(t, "0", []byte("just some text"), true), userCaller)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if strings.Contains(rr.Body.String(), "not an image") {
		t.Fatalf("non-admin should not see file validation: %q", rr.Body.String())
	}
	if got := f.fake.Calls(backendtest.OpIsCallerAdmin); got != 1 {
		t.Fatalf("IsCallerAdmin calls = %d, want 1", got)
	}
}
