package middleware

import (
	"net/http"

	"postjourney/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity reads the caller identity asserted by the upstream auth gateway.
// The engine trusts X-User-Id and X-User-Role as-is; issuing and verifying
// credentials happens outside this service.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userHeader := r.Header.Get("X-User-Id")
			if userHeader == "" {
				utils.ResponseUnauthorized(w, "Missing X-User-Id header")
				return
			}

			userID, err := uuid.Parse(userHeader)
			if err != nil {
				logger.Warn("Malformed X-User-Id header",
					zap.String("value", userHeader),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid X-User-Id header")
				return
			}

			role := r.Header.Get("X-User-Role")
			if role == "" {
				role = "patient"
			}

			ctx := utils.SetUserContext(r.Context(), userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the asserted role to be admin.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != "admin" {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
