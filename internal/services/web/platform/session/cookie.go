package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
)

func readCookie(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// SetCookie stores token until expires.
func (m *Manager) SetCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time) {
	if w == nil {
		return
	}
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, m.schemePolicy()),
		SameSite: http.SameSiteLaxMode,
	}
	if !expires.IsZero() {
		cookie.Expires = expires.UTC()
	}
	http.SetCookie(w, cookie)
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, m.schemePolicy()),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (m *Manager) schemePolicy() requestmeta.SchemePolicy {
	if m == nil {
		return requestmeta.SchemePolicy{}
	}
	return m.policy
}
