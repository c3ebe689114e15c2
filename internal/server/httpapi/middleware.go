package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"factforum/internal/common"
	"factforum/internal/server/auth"
	"factforum/internal/server/models"
)

type identityContextKey struct{}

// identityFrom extracts the verified caller identity placed into the request
// context by the guard. The second return is false on anonymous requests.
func identityFrom(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*auth.Identity)
	return id, ok
}

// accessPolicy describes what a route demands from the caller.
type accessPolicy struct {
	anonymous bool          // the route works without an identity
	lenient   bool          // bad tokens degrade to anonymous instead of 401
	roles     []models.Role // empty with anonymous=false means any authenticated caller
}

// RequireNone admits everyone; a presented token must still be valid.
func RequireNone() accessPolicy { return accessPolicy{anonymous: true} }

// RequireOptional admits everyone and silently drops invalid tokens.
func RequireOptional() accessPolicy { return accessPolicy{anonymous: true, lenient: true} }

// RequireAuthenticated admits any caller with a valid token, whatever the role.
func RequireAuthenticated() accessPolicy { return accessPolicy{} }

// RequireRole admits only callers holding the given role.
func RequireRole(role models.Role) accessPolicy {
	return accessPolicy{roles: []models.Role{role}}
}

// RequireAnyRole admits callers holding one of the given roles.
func RequireAnyRole(roles ...models.Role) accessPolicy {
	return accessPolicy{roles: roles}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// guard wraps a handler with the route's access policy. A missing token on a
// protected route is a role failure (403), a presented-but-invalid token is
// an authentication failure (401).
func (s *HTTPServer) guard(policy accessPolicy, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if policy.anonymous {
				next(w, r)
				return
			}
			s.writeError(w, r, common.ErrorForbidden)
			return
		}

		identity, err := auth.VerifyToken(token, s.jwtSecret)
		if err != nil {
			if policy.lenient {
				next(w, r)
				return
			}
			s.writeError(w, r, err)
			return
		}

		if len(policy.roles) > 0 {
			allowed := false
			for _, role := range policy.roles {
				if identity.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				s.writeError(w, r, common.ErrorForbidden)
				return
			}
		}

		ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
		next(w, r.WithContext(ctx))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withAccessLog logs one line per request with a generated request id.
func (s *HTTPServer) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		s.logger.Info(r.Context(), "request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start),
		)
	})
}
