// Package backend declares the remote content service contract consumed by
// the web service.
//
// Every operation takes the caller explicitly so authorization-dependent
// answers (profile, role, admin status) are a function of the identity making
// the request rather than of process-wide state.
package backend

import (
	"context"
	"errors"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
)

// Client is the typed contract of the remote content service.
type Client interface {
	GetStories(ctx context.Context, caller content.Caller) ([]content.Story, error)
	GetVersesByTestament(ctx context.Context, caller content.Caller, testament content.Testament) ([]content.Verse, error)
	GetDailyVerse(ctx context.Context, caller content.Caller) (content.Verse, error)
	GetCallerUserProfile(ctx context.Context, caller content.Caller) (content.Option[content.UserProfile], error)
	SaveCallerUserProfile(ctx context.Context, caller content.Caller, profile content.UserProfile) error
	GetUserProfile(ctx context.Context, caller content.Caller, principal string) (content.Option[content.UserProfile], error)
	IsCallerAdmin(ctx context.Context, caller content.Caller) (bool, error)
	GetCallerUserRole(ctx context.Context, caller content.Caller) (content.Role, error)
	AssignCallerUserRole(ctx context.Context, caller content.Caller, principal string, role content.Role) error
	// AddStoryOrVerseImage uploads image and attaches it to the story (isStory)
	// or verse at index. Byte-backed images report progress while uploading.
	AddStoryOrVerseImage(ctx context.Context, caller content.Caller, image *content.Image, isStory bool, index int) error
}

var (
	// ErrUnavailable reports that the backend could not be reached.
	ErrUnavailable = errors.New("content service unavailable")
	// ErrNotFound reports that the requested subject does not exist.
	ErrNotFound = errors.New("content not found")
	// ErrPermissionDenied reports that the caller lacks the required role.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrUnauthenticated reports that the operation requires a signed-in caller.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Unavailable is the Client used when no backend is configured.
type Unavailable struct{}

var _ Client = Unavailable{}

func unavailable() error {
	return apperrors.Wrap(apperrors.KindUnavailable, "error.backend.not_configured", "content service is not configured", ErrUnavailable)
}

func (Unavailable) GetStories(context.Context, content.Caller) ([]content.Story, error) {
	return nil, unavailable()
}

func (Unavailable) GetVersesByTestament(context.Context, content.Caller, content.Testament) ([]content.Verse, error) {
	return nil, unavailable()
}

func (Unavailable) GetDailyVerse(context.Context, content.Caller) (content.Verse, error) {
	return content.Verse{}, unavailable()
}

func (Unavailable) GetCallerUserProfile(context.Context, content.Caller) (content.Option[content.UserProfile], error) {
	return content.None[content.UserProfile](), unavailable()
}

func (Unavailable) SaveCallerUserProfile(context.Context, content.Caller, content.UserProfile) error {
	return unavailable()
}

func (Unavailable) GetUserProfile(context.Context, content.Caller, string) (content.Option[content.UserProfile], error) {
	return content.None[content.UserProfile](), unavailable()
}

func (Unavailable) IsCallerAdmin(context.Context, content.Caller) (bool, error) {
	return false, unavailable()
}

func (Unavailable) GetCallerUserRole(context.Context, content.Caller) (content.Role, error) {
	return content.RoleGuest, unavailable()
}

func (Unavailable) AssignCallerUserRole(context.Context, content.Caller, string, content.Role) error {
	return unavailable()
}

func (Unavailable) AddStoryOrVerseImage(context.Context, content.Caller, *content.Image, bool, int) error {
	return unavailable()
}
