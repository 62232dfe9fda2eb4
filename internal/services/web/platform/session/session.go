// Package session verifies signed session tokens issued by the identity
// provider and carries the resulting caller through request contexts.
//
// The web service never mints long-lived credentials itself: the login
// provider redirects back with an HS256 token, which is stored verbatim in an
// HttpOnly cookie and forwarded to the backend on every call.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/louisbranch/sacredverses/internal/services/web/content"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
	"go.uber.org/zap"
)

// CookieName is the session cookie name.
const CookieName = "sv_session"

var (
	// ErrDisabled is returned when no signing secret is configured.
	ErrDisabled = errors.New("session: signing secret not configured")
	// ErrInvalidToken is returned for tokens that fail verification.
	ErrInvalidToken = errors.New("session: invalid token")
)

// Claims is the token payload accepted from the login provider.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// Manager issues, verifies and stores session tokens.
type Manager struct {
	secret []byte
	issuer string
	now    func() time.Time
	policy requestmeta.SchemePolicy
	logger *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSchemePolicy controls the Secure flag on session cookies.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(m *Manager) { m.policy = policy }
}

// WithLogger attaches a logger for rejected tokens.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager builds a Manager. An empty secret disables sessions: every
// request resolves to the anonymous caller.
func NewManager(secret string, issuer string, opts ...Option) *Manager {
	m := &Manager{
		secret: []byte(strings.TrimSpace(secret)),
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enabled reports whether tokens can be verified.
func (m *Manager) Enabled() bool {
	return m != nil && len(m.secret) > 0
}

// Issue signs a token for principal valid for ttl.
func (m *Manager) Issue(principal string, name string, ttl time.Duration) (string, error) {
	if !m.Enabled() {
		return "", ErrDisabled
	}
	principal = strings.TrimSpace(principal)
	if principal == "" || principal == content.AnonymousPrincipal {
		return "", fmt.Errorf("%w: principal is required", ErrInvalidToken)
	}
	now := m.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name: strings.TrimSpace(name),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify validates token and returns its claims.
func (m *Manager) Verify(token string) (Claims, error) {
	if !m.Enabled() {
		return Claims{}, ErrDisabled
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalidToken
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(m.issuer))
	}
	var claims Claims
	if _, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, parserOpts...); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, fmt.Errorf("%w: subject is required", ErrInvalidToken)
	}
	return claims, nil
}

// CallerFromToken verifies token and builds the backend caller.
func (m *Manager) CallerFromToken(token string) (content.Caller, error) {
	claims, err := m.Verify(token)
	if err != nil {
		return content.Anonymous(), err
	}
	return content.Caller{Principal: strings.TrimSpace(claims.Subject), Token: strings.TrimSpace(token)}, nil
}

// Resolve returns the caller for r, falling back to anonymous on any failure.
func (m *Manager) Resolve(r *http.Request) content.Caller {
	token, ok := readCookie(r)
	if !ok || !m.Enabled() {
		return content.Anonymous()
	}
	caller, err := m.CallerFromToken(token)
	if err != nil {
		m.logger.Debug("session token rejected", zap.Error(err))
		return content.Anonymous()
	}
	return caller
}

// Middleware stores the resolved caller in the request context.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := m.Resolve(r)
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

type callerKey struct{}

// WithCaller returns ctx carrying caller.
func WithCaller(ctx context.Context, caller content.Caller) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller stored in ctx, or anonymous.
func CallerFromContext(ctx context.Context) content.Caller {
	if ctx == nil {
		return content.Anonymous()
	}
	caller, ok := ctx.Value(callerKey{}).(content.Caller)
	if !ok {
		return content.Anonymous()
	}
	return caller
}

// CallerFromRequest returns the caller stored in the request context.
func CallerFromRequest(r *http.Request) content.Caller {
	if r == nil {
		return content.Anonymous()
	}
	return CallerFromContext(r.Context())
}
