// Package backendtest provides an in-memory backend.Client for tests.
package backendtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/louisbranch/sacredverses/internal/services/web/backend"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
)

// Operation names used by Calls and SetError.
const (
	OpGetStories            = "GetStories"
	OpGetVersesByTestament  = "GetVersesByTestament"
	OpGetDailyVerse         = "GetDailyVerse"
	OpGetCallerUserProfile  = "GetCallerUserProfile"
	OpSaveCallerUserProfile = "SaveCallerUserProfile"
	OpGetUserProfile        = "GetUserProfile"
	OpIsCallerAdmin         = "IsCallerAdmin"
	OpGetCallerUserRole     = "GetCallerUserRole"
	OpAssignCallerUserRole  = "AssignCallerUserRole"
	OpAddStoryOrVerseImage  = "AddStoryOrVerseImage"
)

// UploadedImageURL is the URL the fake assigns to an uploaded image.
func UploadedImageURL(isStory bool, index int) string {
	target := "verse"
	if isStory {
		target = "story"
	}
	return fmt.Sprintf("https://images.example.test/%s-%d", target, index)
}

// Fake is a concurrency-safe in-memory backend.
//
// GetVersesByTestament returns every configured verse regardless of
// testament so that client-side filtering stays observable.
type Fake struct {
	mu         sync.Mutex
	stories    []content.Story
	verses     []content.Verse
	dailyVerse content.Verse
	profiles   map[string]content.UserProfile
	roles      map[string]content.Role
	errs       map[string]error
	calls      map[string]int
	gate       chan struct{}
}

var _ backend.Client = (*Fake)(nil)

// New returns an empty fake.
func New() *Fake {
	return &Fake{
		profiles: map[string]content.UserProfile{},
		roles:    map[string]content.Role{},
		errs:     map[string]error{},
		calls:    map[string]int{},
	}
}

// WithStories replaces the story list.
func (f *Fake) WithStories(stories ...content.Story) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stories = append([]content.Story(nil), stories...)
	return f
}

// WithVerses replaces the verse list.
func (f *Fake) WithVerses(verses ...content.Verse) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verses = append([]content.Verse(nil), verses...)
	return f
}

// WithDailyVerse sets the daily verse.
func (f *Fake) WithDailyVerse(verse content.Verse) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dailyVerse = verse
	return f
}

// WithProfile stores a profile for principal.
func (f *Fake) WithProfile(principal string, profile content.UserProfile) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[principal] = profile
	return f
}

// WithRole assigns role to principal.
func (f *Fake) WithRole(principal string, role content.Role) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[principal] = role
	return f
}

// SetError makes op fail with err until cleared with a nil err.
func (f *Fake) SetError(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, op)
		return
	}
	f.errs[op] = err
}

// Hold blocks every read until the returned release func is called.
func (f *Fake) Hold() (release func()) {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gate = gate
	f.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			if f.gate == gate {
				f.gate = nil
			}
			f.mu.Unlock()
			close(gate)
		})
	}
}

// Calls reports how many times op was invoked.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *Fake) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	gate := f.gate
	err := f.errs[op]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *Fake) GetStories(ctx context.Context, _ content.Caller) ([]content.Story, error) {
	if err := f.enter(ctx, OpGetStories); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]content.Story(nil), f.stories...), nil
}

func (f *Fake) GetVersesByTestament(ctx context.Context, _ content.Caller, _ content.Testament) ([]content.Verse, error) {
	if err := f.enter(ctx, OpGetVersesByTestament); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]content.Verse(nil), f.verses...), nil
}

func (f *Fake) GetDailyVerse(ctx context.Context, _ content.Caller) (content.Verse, error) {
	if err := f.enter(ctx, OpGetDailyVerse); err != nil {
		return content.Verse{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dailyVerse, nil
}

func (f *Fake) GetCallerUserProfile(ctx context.Context, caller content.Caller) (content.Option[content.UserProfile], error) {
	if err := f.enter(ctx, OpGetCallerUserProfile); err != nil {
		return content.None[content.UserProfile](), err
	}
	return f.profile(caller.Key()), nil
}

func (f *Fake) SaveCallerUserProfile(ctx context.Context, caller content.Caller, profile content.UserProfile) error {
	if err := f.enter(ctx, OpSaveCallerUserProfile); err != nil {
		return err
	}
	if caller.IsAnonymous() {
		return apperrors.Wrap(apperrors.KindUnauthorized, "error.backend.unauthenticated", "sign in required", backend.ErrUnauthenticated)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[caller.Key()] = profile
	return nil
}

func (f *Fake) GetUserProfile(ctx context.Context, _ content.Caller, principal string) (content.Option[content.UserProfile], error) {
	if err := f.enter(ctx, OpGetUserProfile); err != nil {
		return content.None[content.UserProfile](), err
	}
	return f.profile(principal), nil
}

func (f *Fake) profile(principal string) content.Option[content.UserProfile] {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[principal]
	if !ok {
		return content.None[content.UserProfile]()
	}
	return content.Some(profile)
}

func (f *Fake) IsCallerAdmin(ctx context.Context, caller content.Caller) (bool, error) {
	if err := f.enter(ctx, OpIsCallerAdmin); err != nil {
		return false, err
	}
	return f.role(caller) == content.RoleAdmin, nil
}

func (f *Fake) GetCallerUserRole(ctx context.Context, caller content.Caller) (content.Role, error) {
	if err := f.enter(ctx, OpGetCallerUserRole); err != nil {
		return content.RoleGuest, err
	}
	return f.role(caller), nil
}

func (f *Fake) role(caller content.Caller) content.Role {
	f.mu.Lock()
	defer f.mu.Unlock()
	if role, ok := f.roles[caller.Key()]; ok {
		return role
	}
	if caller.IsAnonymous() {
		return content.RoleGuest
	}
	return content.RoleUser
}

func (f *Fake) AssignCallerUserRole(ctx context.Context, caller content.Caller, principal string, role content.Role) error {
	if err := f.enter(ctx, OpAssignCallerUserRole); err != nil {
		return err
	}
	if f.role(caller) != content.RoleAdmin {
		return apperrors.Wrap(apperrors.KindForbidden, "error.backend.forbidden", "admin role required", backend.ErrPermissionDenied)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[principal] = role
	return nil
}

// AddStoryOrVerseImage reports progress in quarters and then attaches
// UploadedImageURL to the target. Verse indexes address the full verse list.
func (f *Fake) AddStoryOrVerseImage(ctx context.Context, caller content.Caller, image *content.Image, isStory bool, index int) error {
	if err := f.enter(ctx, OpAddStoryOrVerseImage); err != nil {
		return err
	}
	if f.role(caller) != content.RoleAdmin {
		return apperrors.Wrap(apperrors.KindForbidden, "error.backend.forbidden", "admin role required", backend.ErrPermissionDenied)
	}
	for _, percent := range []int{0, 25, 50, 75, 100} {
		image.ReportProgress(percent)
	}
	uploaded := content.Some(content.FromURL(UploadedImageURL(isStory, index)))
	f.mu.Lock()
	defer f.mu.Unlock()
	if isStory {
		if index < 0 || index >= len(f.stories) {
			return apperrors.Wrap(apperrors.KindNotFound, "error.backend.not_found", "story not found", backend.ErrNotFound)
		}
		f.stories[index].Image = uploaded
		return nil
	}
	if index < 0 || index >= len(f.verses) {
		return apperrors.Wrap(apperrors.KindNotFound, "error.backend.not_found", "verse not found", backend.ErrNotFound)
	}
	f.verses[index].Image = uploaded
	return nil
}
