package publicauth

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/session"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
)

// Sessions verifies login-provider tokens and stores them in the session
// cookie.
type Sessions interface {
	Enabled() bool
	Verify(token string) (session.Claims, error)
	SetCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time)
	ClearCookie(w http.ResponseWriter, r *http.Request)
}

const (
	redirectURIQueryKey = "redirect_uri"
	tokenQueryKey       = "token"
)

type service struct {
	sessions Sessions
	loginURL string
	policy   requestmeta.SchemePolicy
}

func newService(sessions Sessions, loginURL string, policy requestmeta.SchemePolicy) service {
	if sessions == nil {
		sessions = disabledSessions{}
	}
	return service{sessions: sessions, loginURL: strings.TrimSpace(loginURL), policy: policy}
}

// providerURL returns the login provider address that sends the browser back
// to the callback route carrying next.
func (s service) providerURL(r *http.Request, next string) (string, error) {
	if s.loginURL == "" || !s.sessions.Enabled() {
		return "", apperrors.EK(apperrors.KindUnavailable, "error.session.login_unavailable", "login provider is not configured")
	}
	provider, err := url.Parse(s.loginURL)
	if err != nil || provider.Host == "" {
		return "", apperrors.EK(apperrors.KindUnavailable, "error.session.login_unavailable", "login provider url is invalid")
	}
	callback := routepath.AuthCallback
	if next = strings.TrimSpace(next); next != "" && next != routepath.Root {
		callback += "?" + url.Values{routepath.NextQueryKey: {next}}.Encode()
	}
	query := provider.Query()
	query.Set(redirectURIQueryKey, requestmeta.BaseURL(r, s.policy)+callback)
	provider.RawQuery = query.Encode()
	return provider.String(), nil
}

// verify checks a token returned by the login provider and reports when it
// expires.
func (s service) verify(token string) (time.Time, error) {
	claims, err := s.sessions.Verify(token)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.KindUnauthorized, "error.session.invalid", "session token rejected", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

type disabledSessions struct{}

func (disabledSessions) Enabled() bool { return false }

func (disabledSessions) Verify(string) (session.Claims, error) {
	return session.Claims{}, session.ErrDisabled
}

func (disabledSessions) SetCookie(http.ResponseWriter, *http.Request, string, time.Time) {}

func (disabledSessions) ClearCookie(http.ResponseWriter, *http.Request) {}
