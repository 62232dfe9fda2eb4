package routepath

import (
	"testing"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
)

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "story", got: Story(3), want: "/stories/3"},
		{name: "story image", got: StoryImage(0), want: "/stories/0/image"},
		{name: "story upload", got: StoryWithUpload(2, "u-1"), want: "/stories/2?upload=u-1"},
		{name: "old testament", got: Testament(content.TestamentOld), want: "/old-testament"},
		{name: "new testament", got: Testament(content.TestamentNew), want: "/new-testament"},
		{name: "verse", got: Verse(content.TestamentNew, 12), want: "/verse/new-12"},
		{name: "user escapes", got: UserProfile(" a b/c "), want: "/u/a%20b%2Fc"},
		{name: "upload", got: Upload("abc"), want: "/uploads/abc"},
		{name: "partial", got: Partial(Stories), want: "/stories?partial=content"},
		{name: "login root", got: LoginWithNext("/"), want: "/login"},
		{name: "login next", got: LoginWithNext("/stories/1"), want: "/login?next=%2Fstories%2F1"},
	}
	for _, tc := range tests {
		if tc.got != tc.want {
			t.Fatalf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestParseVerseRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref           string
		wantTestament content.Testament
		wantIndex     int
		wantOK        bool
	}{
		{ref: "old-0", wantTestament: content.TestamentOld, wantIndex: 0, wantOK: true},
		{ref: "new-42", wantTestament: content.TestamentNew, wantIndex: 42, wantOK: true},
		{ref: "NEW-1", wantTestament: content.TestamentNew, wantIndex: 1, wantOK: true},
		{ref: "old"},
		{ref: "middle-1"},
		{ref: "old--1"},
		{ref: "old-x"},
		{ref: "old-+1"},
		{ref: ""},
	}
	for _, tc := range tests {
		testament, index, ok := ParseVerseRef(tc.ref)
		if ok != tc.wantOK || testament != tc.wantTestament || index != tc.wantIndex {
			t.Fatalf("ParseVerseRef(%q) = (%q, %d, %v), want (%q, %d, %v)", tc.ref, testament, index, ok, tc.wantTestament, tc.wantIndex, tc.wantOK)
		}
	}
}

func TestParseIndex(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "-1", "abc", "1.5", "+2"} {
		if _, ok := ParseIndex(raw); ok {
			t.Fatalf("ParseIndex(%q) ok = true, want false", raw)
		}
	}
	if got, ok := ParseIndex(" 7 "); !ok || got != 7 {
		t.Fatalf("ParseIndex(7) = (%d, %v), want (7, true)", got, ok)
	}
}
