package content

import (
	"fmt"
	"strings"
)

// Testament partitions verses into the two fixed collections.
type Testament string

const (
	TestamentOld Testament = "old"
	TestamentNew Testament = "new"
)

// Testaments lists every testament in display order.
func Testaments() []Testament {
	return []Testament{TestamentOld, TestamentNew}
}

// ParseTestament accepts only the two canonical values.
func ParseTestament(value string) (Testament, error) {
	switch Testament(strings.ToLower(strings.TrimSpace(value))) {
	case TestamentOld:
		return TestamentOld, nil
	case TestamentNew:
		return TestamentNew, nil
	default:
		return "", fmt.Errorf("unknown testament %q", value)
	}
}

// Valid reports whether t is one of the canonical testaments.
func (t Testament) Valid() bool {
	return t == TestamentOld || t == TestamentNew
}

// Verse is a single scripture passage.
type Verse struct {
	Text      string
	Testament Testament
	Reference string
	Image     Option[*Image]
}

// Story is a titled, ordered collection of verses.
type Story struct {
	Title   string
	Summary string
	Verses  []Verse
	Image   Option[*Image]
}

// UserProfile is the caller-owned display profile.
type UserProfile struct {
	Name string
}

// Role is the authorization level the backend assigns to an identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// ParseRole accepts admin, user and guest.
func ParseRole(value string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	case RoleGuest:
		return RoleGuest, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// AnonymousPrincipal identifies callers without a session.
const AnonymousPrincipal = "anonymous"

// Caller is the identity a request is made on behalf of.
type Caller struct {
	Principal string
	// Token is the raw session token forwarded to the backend.
	Token string
}

// Anonymous returns the caller used for requests without a session.
func Anonymous() Caller {
	return Caller{Principal: AnonymousPrincipal}
}

// IsAnonymous reports whether the caller has no authenticated identity.
func (c Caller) IsAnonymous() bool {
	principal := strings.TrimSpace(c.Principal)
	return principal == "" || principal == AnonymousPrincipal
}

// Key returns the principal used to scope per-caller cache entries.
func (c Caller) Key() string {
	if c.IsAnonymous() {
		return AnonymousPrincipal
	}
	return strings.TrimSpace(c.Principal)
}

// FilterTestament keeps only verses that belong to testament, preserving order.
func FilterTestament(verses []Verse, testament Testament) []Verse {
	out := make([]Verse, 0, len(verses))
	for _, verse := range verses {
		if verse.Testament == testament {
			out = append(out, verse)
		}
	}
	return out
}

// At returns the element at a positional index parsed from a route.
func At[T any](items []T, index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(items) {
		return zero, false
	}
	return items[index], true
}
