// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
)

const (
	Root              = "/"
	Stories           = "/stories"
	StoriesPrefix     = "/stories/"
	StoryPattern      = StoriesPrefix + "{index}"
	StoryImagePattern = StoriesPrefix + "{index}/image"
	DailyVerse        = "/daily-verse"
	DailyVerseRefresh = "/daily-verse/refresh"
	OldTestament      = "/old-testament"
	NewTestament      = "/new-testament"
	VersePrefix       = "/verse/"
	VersePattern      = VersePrefix + "{ref}"
	UserProfilePrefix = "/u/"
	UserPattern       = UserProfilePrefix + "{principal}"
	Profile           = "/profile"
	AdminPrefix       = "/admin/"
	AdminRoles        = AdminPrefix + "roles"
	UploadsPrefix     = "/uploads/"
	UploadPattern     = UploadsPrefix + "{id}"
	Login             = "/login"
	AuthPrefix        = "/auth/"
	AuthCallback      = AuthPrefix + "callback"
	Logout            = "/logout"
	MCP               = "/mcp"
	StaticPrefix      = "/static/"
	Health            = "/up"

	// PartialQueryKey requests only the content fragment of a list page.
	PartialQueryKey   = "partial"
	PartialQueryValue = "content"
	// NextQueryKey carries the post-login/post-submit return path.
	NextQueryKey = "next"
	// UploadQueryKey resumes progress polling on the story page.
	UploadQueryKey = "upload"
)

// Story returns the story detail route.
func Story(index int) string {
	return StoriesPrefix + strconv.Itoa(index)
}

// StoryImage returns the story image upload route.
func StoryImage(index int) string {
	return Story(index) + "/image"
}

// StoryWithUpload returns the story detail route polling upload id.
func StoryWithUpload(index int, id string) string {
	return Story(index) + "?" + url.Values{UploadQueryKey: {strings.TrimSpace(id)}}.Encode()
}

// Testament returns the listing route for testament.
func Testament(testament content.Testament) string {
	if testament == content.TestamentNew {
		return NewTestament
	}
	return OldTestament
}

// Verse returns the verse detail route, /verse/{testament}-{index}.
func Verse(testament content.Testament, index int) string {
	return VersePrefix + string(testament) + "-" + strconv.Itoa(index)
}

// ParseVerseRef splits a "{testament}-{index}" route segment.
func ParseVerseRef(ref string) (content.Testament, int, bool) {
	name, rawIndex, ok := strings.Cut(strings.TrimSpace(ref), "-")
	if !ok {
		return "", 0, false
	}
	testament, err := content.ParseTestament(name)
	if err != nil {
		return "", 0, false
	}
	index, ok := ParseIndex(rawIndex)
	if !ok {
		return "", 0, false
	}
	return testament, index, true
}

// ParseIndex parses a non-negative positional index.
func ParseIndex(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "+") {
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// UserProfile returns the public profile route.
func UserProfile(principal string) string {
	return UserProfilePrefix + escapeSegment(principal)
}

// Upload returns the upload progress route.
func Upload(id string) string {
	return UploadsPrefix + escapeSegment(id)
}

// Partial returns path with the content-fragment query set.
func Partial(path string) string {
	return path + "?" + url.Values{PartialQueryKey: {PartialQueryValue}}.Encode()
}

// LoginWithNext returns the login route carrying a return path.
func LoginWithNext(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || next == Root {
		return Login
	}
	return Login + "?" + url.Values{NextQueryKey: {next}}.Encode()
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
