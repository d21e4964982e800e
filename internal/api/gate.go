package api

import (
	"net/http"
	"strings"

	"github.com/signalytics/pokedex/internal/auth"
	"github.com/signalytics/pokedex/internal/server"
)

// Gate authenticates and authorizes a request before any payload validation
// or business logic runs. A missing credential, an invalid credential, and a
// valid credential with a role outside the allowed set are logged as
// distinct causes but all surface as the same generic unauthorized
// response, so the caller learns nothing about which check failed.
func Gate(srv server.Server, roles []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logArgs := []any{
			"path", r.URL.Path,
			"method", r.Method,
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			srv.Logger.Warn("gate: missing authorization header", logArgs...)
			respondUnauthorized(srv, w)
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" {
			srv.Logger.Warn("gate: malformed authorization header", logArgs...)
			respondUnauthorized(srv, w)
			return
		}

		ident, err := srv.Verifier.Verify(token)
		if err != nil {
			srv.Logger.Warn("gate: invalid bearer token",
				append(logArgs, "error", err)...)
			respondUnauthorized(srv, w)
			return
		}

		if !ident.HasAnyRole(roles...) {
			srv.Logger.Warn("gate: role not allowed for route",
				append(logArgs, "user_id", ident.UserID, "role", ident.Role)...)
			respondUnauthorized(srv, w)
			return
		}

		srv.Logger.Debug("gate: authenticated request",
			append(logArgs, "user_id", ident.UserID, "role", ident.Role)...)

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), ident)))
	})
}
