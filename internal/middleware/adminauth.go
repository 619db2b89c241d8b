package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/sagecrest/pulsedash/internal/domain/credential"
)

// PasswordHeader carries the shared dashboard password on admin requests.
const PasswordHeader = "x-admin-password"

type adminNameCtxKey struct{}
type isAdminCtxKey struct{}

// Verifier checks a submitted password against the provisioned
// credentials.
type Verifier interface {
	Verify(ctx context.Context, password string) (credential.VerifyResult, error)
}

// AdminAuth returns middleware that requires an admin-flagged shared
// password on every request. A missing header is 401; a wrong password or
// a non-admin credential is 403 with a body that does not say which.
func AdminAuth(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			password := r.Header.Get(PasswordHeader)
			if password == "" {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			result, err := v.Verify(r.Context(), password)
			if err != nil {
				writeAuthError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if !result.Valid || !result.IsAdmin {
				writeAuthError(w, http.StatusForbidden, "access denied")
				return
			}

			ctx := context.WithValue(r.Context(), adminNameCtxKey{}, result.Name)
			ctx = context.WithValue(ctx, isAdminCtxKey{}, result.IsAdmin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// APIKey returns middleware that requires a fixed key in the
// Authorization header. An empty configured key disables the check.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get("Authorization")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminNameFromContext returns the display name injected by AdminAuth,
// or an empty string outside an authenticated request.
func AdminNameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(adminNameCtxKey{}).(string)
	return name
}

// IsAdminFromContext reports whether the request passed AdminAuth with an
// admin-flagged credential.
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(isAdminCtxKey{}).(bool)
	return isAdmin
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
