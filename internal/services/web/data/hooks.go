package data

import (
	"context"
	"strings"
	"time"

	"github.com/louisbranch/sacredverses/internal/services/web/backend"
	"github.com/louisbranch/sacredverses/internal/services/web/backend/wire"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/query"
)

const (
	defaultContentStaleTime    = 30 * time.Second
	defaultDailyVerseStaleTime = time.Hour
)

// Hooks binds backend operations to the query cache.
type Hooks struct {
	queries    *query.Client
	backend    backend.Client
	contentTTL time.Duration
	dailyTTL   time.Duration
}

// Option configures Hooks.
type Option func(*Hooks)

// WithContentStaleTime overrides the stale time of non-daily reads.
func WithContentStaleTime(d time.Duration) Option {
	return func(h *Hooks) {
		if d > 0 {
			h.contentTTL = d
		}
	}
}

// WithDailyVerseStaleTime overrides the stale time of the daily verse.
func WithDailyVerseStaleTime(d time.Duration) Option {
	return func(h *Hooks) {
		if d > 0 {
			h.dailyTTL = d
		}
	}
}

// New builds Hooks over a query client and backend. A nil backend behaves
// as unavailable.
func New(queries *query.Client, client backend.Client, opts ...Option) *Hooks {
	if queries == nil {
		queries = query.NewClient()
	}
	if client == nil {
		client = backend.Unavailable{}
	}
	h := &Hooks{
		queries:    queries,
		backend:    client,
		contentTTL: defaultContentStaleTime,
		dailyTTL:   defaultDailyVerseStaleTime,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Hooks) storiesQuery(caller content.Caller) query.Query[[]content.Story] {
	return query.Query[[]content.Story]{
		Key:       StoriesKey(),
		StaleTime: h.contentTTL,
		NoRetry:   true,
		Codec:     wire.StoriesCodec,
		Fetch: func(ctx context.Context) ([]content.Story, error) {
			return h.backend.GetStories(ctx, caller)
		},
	}
}

// Stories returns every story in backend order.
func (h *Hooks) Stories(ctx context.Context, caller content.Caller) ([]content.Story, error) {
	return query.Fetch(ctx, h.queries, h.storiesQuery(caller))
}

// PeekStories returns the story list when it is cached and fresh.
func (h *Hooks) PeekStories() ([]content.Story, bool) {
	return query.Peek(h.queries, h.storiesQuery(content.Anonymous()))
}

func (h *Hooks) versesQuery(caller content.Caller, testament content.Testament) query.Query[[]content.Verse] {
	return query.Query[[]content.Verse]{
		Key:       VersesByTestamentKey(testament),
		StaleTime: h.contentTTL,
		NoRetry:   true,
		Codec:     wire.VersesCodec,
		Fetch: func(ctx context.Context) ([]content.Verse, error) {
			verses, err := h.backend.GetVersesByTestament(ctx, caller, testament)
			if err != nil {
				return nil, err
			}
			return content.FilterTestament(verses, testament), nil
		},
	}
}

// VersesByTestament returns the verses of testament. Verses the backend
// returns for the other testament are dropped.
func (h *Hooks) VersesByTestament(ctx context.Context, caller content.Caller, testament content.Testament) ([]content.Verse, error) {
	if !testament.Valid() {
		return nil, apperrors.EK(apperrors.KindNotFound, "error.testament.unknown", "unknown testament")
	}
	return query.Fetch(ctx, h.queries, h.versesQuery(caller, testament))
}

// PeekVersesByTestament returns a testament listing when it is cached and fresh.
func (h *Hooks) PeekVersesByTestament(testament content.Testament) ([]content.Verse, bool) {
	if !testament.Valid() {
		return nil, false
	}
	return query.Peek(h.queries, h.versesQuery(content.Anonymous(), testament))
}

func (h *Hooks) dailyVerseQuery(caller content.Caller) query.Query[content.Verse] {
	return query.Query[content.Verse]{
		Key:       DailyVerseKey(),
		StaleTime: h.dailyTTL,
		Codec:     wire.VerseCodec,
		Fetch: func(ctx context.Context) (content.Verse, error) {
			return h.backend.GetDailyVerse(ctx, caller)
		},
	}
}

// DailyVerse returns the verse of the day.
func (h *Hooks) DailyVerse(ctx context.Context, caller content.Caller) (content.Verse, error) {
	return query.Fetch(ctx, h.queries, h.dailyVerseQuery(caller))
}

// RefreshDailyVerse discards the cached daily verse and fetches it again.
func (h *Hooks) RefreshDailyVerse(ctx context.Context, caller content.Caller) (content.Verse, error) {
	return query.Refresh(ctx, h.queries, h.dailyVerseQuery(caller))
}

// PeekDailyVerse returns the daily verse when it is cached and fresh.
func (h *Hooks) PeekDailyVerse() (content.Verse, bool) {
	return query.Peek(h.queries, h.dailyVerseQuery(content.Anonymous()))
}

// CallerProfile returns the caller's own profile, None when unset.
func (h *Hooks) CallerProfile(ctx context.Context, caller content.Caller) (content.Option[content.UserProfile], error) {
	return query.Fetch(ctx, h.queries, query.Query[content.Option[content.UserProfile]]{
		Key:       CallerProfileKey(caller.Key()),
		StaleTime: h.contentTTL,
		NoRetry:   true,
		Fetch: func(ctx context.Context) (content.Option[content.UserProfile], error) {
			return h.backend.GetCallerUserProfile(ctx, caller)
		},
	})
}

// UserProfile returns the public profile of principal, None when unset.
func (h *Hooks) UserProfile(ctx context.Context, caller content.Caller, principal string) (content.Option[content.UserProfile], error) {
	principal = strings.TrimSpace(principal)
	if principal == "" {
		return content.None[content.UserProfile](), apperrors.EK(apperrors.KindInvalidInput, "error.profile.principal_required", "principal is required")
	}
	return query.Fetch(ctx, h.queries, query.Query[content.Option[content.UserProfile]]{
		Key:       UserProfileKey(principal),
		StaleTime: h.contentTTL,
		NoRetry:   true,
		Fetch: func(ctx context.Context) (content.Option[content.UserProfile], error) {
			return h.backend.GetUserProfile(ctx, caller, principal)
		},
	})
}

// IsCallerAdmin reports whether the caller holds the admin role.
func (h *Hooks) IsCallerAdmin(ctx context.Context, caller content.Caller) (bool, error) {
	return query.Fetch(ctx, h.queries, query.Query[bool]{
		Key:       IsAdminKey(caller.Key()),
		StaleTime: h.contentTTL,
		NoRetry:   true,
		Fetch: func(ctx context.Context) (bool, error) {
			return h.backend.IsCallerAdmin(ctx, caller)
		},
	})
}

// CallerRole returns the caller's role.
func (h *Hooks) CallerRole(ctx context.Context, caller content.Caller) (content.Role, error) {
	return query.Fetch(ctx, h.queries, query.Query[content.Role]{
		Key:       CallerRoleKey(caller.Key()),
		StaleTime: h.contentTTL,
		NoRetry:   true,
		Fetch: func(ctx context.Context) (content.Role, error) {
			return h.backend.GetCallerUserRole(ctx, caller)
		},
	})
}
