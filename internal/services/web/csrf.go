package web

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	apperrors "github.com/louisbranch/sacredverses/internal/services/web/platform/errors"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/httpx"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/sacredverses/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/sacredverses/internal/services/web/routepath"
	"go.uber.org/zap"
)

const csrfCookieName = "sv_csrf"

// csrfKey derives the 32-byte CSRF key from the session secret. Without a
// secret a random key is used, so tokens do not survive restarts.
func csrfKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate csrf key: %w", err)
		}
		return key, nil
	}
	sum := sha256.Sum256([]byte("csrf:" + secret))
	return sum[:], nil
}

// csrfProtection guards unsafe methods on every route but the MCP endpoint,
// whose clients are not browsers.
func csrfProtection(secret string, secure bool, policy requestmeta.SchemePolicy, base modulehandler.Base, logger *zap.Logger) (httpx.Middleware, error) {
	key, err := csrfKey(secret)
	if err != nil {
		return nil, err
	}
	protect := csrf.Protect(key,
		csrf.CookieName(csrfCookieName),
		csrf.Path("/"),
		csrf.Secure(secure),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(csrfFailureHandler(base, logger)),
	)
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == routepath.MCP {
				r = csrf.UnsafeSkipCheck(r)
			}
			if !requestmeta.IsHTTPS(r, policy) {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}, nil
}

func csrfFailureHandler(base modulehandler.Base, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("csrf check failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(csrf.FailureReason(r)),
		)
		base.WriteError(w, r, apperrors.EK(apperrors.KindForbidden, "error.csrf.invalid", "csrf token rejected"))
	})
}
