package middlewares

import (
	"context"
	"net/http"
	"strings"

	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// StaffSession resolves the acting staff name from an optional bearer token.
// Requests without a token, or with one that fails to parse, proceed
// anonymously; attribution then falls back to per-operation defaults.
func (m *Middlewares) StaffSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			next.ServeHTTP(w, r)
			return
		}

		staffName, err := utils.ParseStaffJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Warn("failed to parse staff session token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_STAFF_NAME_KEY, staffName)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
