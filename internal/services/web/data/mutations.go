package data

import (
	"context"
	"strings"

	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/query"
)

const maxProfileNameLength = 80

type saveProfileInput struct {
	caller  content.Caller
	profile content.UserProfile
}

// SaveProfile stores the caller's profile and invalidates both profile reads
// of the caller.
func (h *Hooks) SaveProfile(ctx context.Context, caller content.Caller, profile content.UserProfile) error {
	profile.Name = strings.TrimSpace(profile.Name)
	if caller.IsAnonymous() {
		return apperrors.EK(apperrors.KindUnauthorized, "error.profile.sign_in", "sign in to save a profile")
	}
	if profile.Name == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "error.profile.name_required", "name is required")
	}
	if len([]rune(profile.Name)) > maxProfileNameLength {
		return apperrors.EK(apperrors.KindInvalidInput, "error.profile.name_too_long", "name is too long")
	}
	return query.Mutate(ctx, h.queries, query.Mutation[saveProfileInput]{
		Name: "saveCallerUserProfile",
		Do: func(ctx context.Context, in saveProfileInput) error {
			return h.backend.SaveCallerUserProfile(ctx, in.caller, in.profile)
		},
		Invalidates: func(in saveProfileInput) []query.Key {
			return []query.Key{CallerProfileKey(in.caller.Key()), UserProfileKey(in.caller.Key())}
		},
	}, saveProfileInput{caller: caller, profile: profile})
}

// ImageUpload addresses the story or verse an image is attached to.
type ImageUpload struct {
	Image   *content.Image
	IsStory bool
	Index   int
}

type uploadInput struct {
	caller content.Caller
	ImageUpload
}

// UploadImage attaches an image and invalidates every story and verse read.
func (h *Hooks) UploadImage(ctx context.Context, caller content.Caller, upload ImageUpload) error {
	if upload.Image == nil {
		return apperrors.EK(apperrors.KindInvalidInput, "error.upload.missing", "image is required")
	}
	if upload.Index < 0 {
		return apperrors.EK(apperrors.KindNotFound, "error.upload.target", "upload target not found")
	}
	return query.Mutate(ctx, h.queries, query.Mutation[uploadInput]{
		Name: "addStoryOrVerseImage",
		Do: func(ctx context.Context, in uploadInput) error {
			return h.backend.AddStoryOrVerseImage(ctx, in.caller, in.Image, in.IsStory, in.Index)
		},
		Invalidates: func(uploadInput) []query.Key {
			return []query.Key{StoriesKey(), VersesKey()}
		},
	}, uploadInput{caller: caller, ImageUpload: upload})
}

type assignRoleInput struct {
	caller    content.Caller
	principal string
	role      content.Role
}

// AssignRole changes the role of principal and invalidates its role reads.
func (h *Hooks) AssignRole(ctx context.Context, caller content.Caller, principal string, role content.Role) error {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return apperrors.EK(apperrors.KindInvalidInput, "error.roles.principal_required", "principal is required")
	}
	if _, err := content.ParseRole(string(role)); err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, "error.roles.unknown", "unknown role", err)
	}
	return query.Mutate(ctx, h.queries, query.Mutation[assignRoleInput]{
		Name: "assignCallerUserRole",
		Do: func(ctx context.Context, in assignRoleInput) error {
			return h.backend.AssignCallerUserRole(ctx, in.caller, in.principal, in.role)
		},
		Invalidates: func(in assignRoleInput) []query.Key {
			return []query.Key{IsAdminKey(in.principal), CallerRoleKey(in.principal)}
		},
	}, assignRoleInput{caller: caller, principal: principal, role: role})
}
