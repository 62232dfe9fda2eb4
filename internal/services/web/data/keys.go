package data

import (
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/query"
)

const (
	segmentStories            = "stories"
	segmentVerses             = "verses"
	segmentDailyVerse         = "dailyVerse"
	segmentCurrentUserProfile = "currentUserProfile"
	segmentUserProfile        = "userProfile"
	segmentIsAdmin            = "isAdmin"
	segmentCallerRole         = "callerRole"
)

// StoriesKey is the key of the story list.
func StoriesKey() query.Key { return query.NewKey(segmentStories) }

// VersesKey is the prefix of every testament listing.
func VersesKey() query.Key { return query.NewKey(segmentVerses) }

// VersesByTestamentKey is the key of one testament listing.
func VersesByTestamentKey(t content.Testament) query.Key {
	return query.NewKey(segmentVerses, string(t))
}

// DailyVerseKey is the key of the daily verse.
func DailyVerseKey() query.Key { return query.NewKey(segmentDailyVerse) }

// CallerProfileKey is the key of the caller's own profile.
func CallerProfileKey(principal string) query.Key {
	return query.NewKey(segmentCurrentUserProfile, principal)
}

// UserProfileKey is the key of a public profile lookup.
func UserProfileKey(principal string) query.Key {
	return query.NewKey(segmentUserProfile, principal)
}

// IsAdminKey is the key of the caller's admin check.
func IsAdminKey(principal string) query.Key {
	return query.NewKey(segmentIsAdmin, principal)
}

// CallerRoleKey is the key of the caller's role.
func CallerRoleKey(principal string) query.Key {
	return query.NewKey(segmentCallerRole, principal)
}
