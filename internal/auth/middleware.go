package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
)

type contextKey int

const userContextKey contextKey = iota

// CurrentUser returns the identity the middleware attached to the request
// context, if any.
func CurrentUser(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}

// Middleware gates a protected handler: it extracts the bearer token, resolves
// it to a stored identity and rejects the request with 401 when anything in
// that chain fails. Each request is evaluated once, statelessly. The response
// never says which check failed, only the scheme to authenticate with.
func Middleware(service *Service, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" {
			writeUnauthorized(w, "missing authorization token")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeUnauthorized(w, "invalid authorization format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			writeUnauthorized(w, "invalid authorization token")
			return
		}

		resolved, err := service.ResolveIdentity(r.Context(), tokenString)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				writeUnauthorized(w, ErrInvalidToken.Error())
				return
			}
			sentry.CaptureException(err)
			writeError(w, http.StatusInternalServerError, "failed to resolve identity")
			return
		}

		user, err := RequireUser(resolved)
		if err != nil {
			writeUnauthorized(w, ErrNoAuthenticatedUser.Error())
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, message)
}
