package middleware

import (
	"net/http"
	"strings"

	"github.com/feedbackhub/feedbackhub/internal/api/handler"
	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

// Authenticate extracts and verifies the bearer token, attaching the
// decoded claims to the request context. Missing, malformed, expired and
// badly signed tokens all fail with the same 401.
func Authenticate(tokens *auth.TokenService, logger *logger.Logger) func(next http.Handler) http.Handler {
	log := logger.Component("middleware/auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				handler.WriteError(w, domain.ErrInvalidToken, log)
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				handler.WriteError(w, domain.ErrInvalidToken, log)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole rejects identities outside the allowed set with 403. It must
// be mounted after Authenticate.
func RequireRole(logger *logger.Logger, allowed ...domain.Role) func(next http.Handler) http.Handler {
	log := logger.Component("middleware/auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.ClaimsFromContext(r.Context())
			if claims == nil {
				handler.WriteError(w, domain.ErrInvalidToken, log)
				return
			}

			for _, role := range allowed {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn("role not allowed",
				"user_id", claims.UserID,
				"role", claims.Role,
				"path", r.URL.Path,
			)
			handler.WriteError(w, domain.ErrForbidden, log)
		})
	}
}
