package middleware

import (
	"context"
	"net/http"
	"strings"
)

// BearerToken extracts the opaque bearer token from the Authorization header
// into the request context. Resolution of the token to an identity stays in
// the service layer; this middleware only rejects structurally absent or
// malformed headers.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			writeAuthError(w, "invalid authorization header format")
			return
		}

		ctx := context.WithValue(r.Context(), TokenKey, parts[1])
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetToken extracts the bearer token from context.
func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenKey).(string); ok {
		return token
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"status":401,"detail":"` + detail + `"}`))
}
