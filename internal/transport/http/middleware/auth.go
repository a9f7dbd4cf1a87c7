package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/yourhostel/stat-syncer/internal/repository"
	"github.com/yourhostel/stat-syncer/internal/service"
	"github.com/yourhostel/stat-syncer/internal/transport/http/response"
	"github.com/yourhostel/stat-syncer/pkg/apierror"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// ContextKeyPrincipal is the key for the authenticated principal in
	// the request context.
	ContextKeyPrincipal ContextKey = "principal"

	bearerPrefix = "Bearer "
)

// Principal is the resolved identity attached to a request. It carries
// no credential material, only identity, authorities, and request
// metadata.
type Principal struct {
	Username   string
	Roles      []string
	RemoteAddr string
	RequestID  string
}

// AuthGate resolves bearer tokens to principals. It runs once per
// request, before route dispatch; collaborators are injected at
// construction, never looked up ambiently.
type AuthGate struct {
	tokens *service.TokenService
	users  repository.UserRepository
}

// NewAuthGate creates the authentication gate.
func NewAuthGate(tokens *service.TokenService, users repository.UserRepository) *AuthGate {
	return &AuthGate{tokens: tokens, users: users}
}

// Handler is the gate middleware. Requests without a bearer token pass
// through unauthenticated; a present token must resolve to a known,
// valid user or the request is answered with a generic 500. That
// uniform 500 (rather than 401) preserves the service's original
// contract; RequireAuth supplies the 401 for principal-less access.
func (g *AuthGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		raw := strings.TrimPrefix(header, bearerPrefix)

		username, err := g.tokens.SubjectFromToken(raw)
		if err != nil {
			g.fail(w, r, err)
			return
		}

		if username != "" && PrincipalFromContext(r.Context()) == nil {
			user, err := g.users.GetByUsername(r.Context(), username)
			if err != nil {
				g.fail(w, r, err)
				return
			}

			if _, err := g.tokens.ValidateToken(raw, user); err != nil {
				g.fail(w, r, err)
				return
			}

			principal := &Principal{
				Username:   user.Username,
				Roles:      append([]string(nil), user.Roles...),
				RemoteAddr: r.RemoteAddr,
				RequestID:  GetRequestID(r.Context()),
			}

			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, principal)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// fail logs the original error and answers with the fixed generic body.
func (g *AuthGate) fail(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("[AuthGate] request %s %s failed: %v", r.Method, r.URL.Path, err)

	apiErr := apierror.InternalError("An internal error occurred")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	w.Write(apiErr.ToJSON())
}

// RequireAuth rejects requests that reached a protected route without a
// resolved principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromContext(r.Context()) == nil {
			response.Error(w, apierror.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromContext retrieves the authenticated principal from the
// request context, or nil when the request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	if p, ok := ctx.Value(ContextKeyPrincipal).(*Principal); ok {
		return p
	}
	return nil
}
