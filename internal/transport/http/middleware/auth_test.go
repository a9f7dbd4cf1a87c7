package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourhostel/stat-syncer/internal/domain"
	"github.com/yourhostel/stat-syncer/internal/service"
)

const testSecret = "middleware-test-signing-secret"

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) CreateUser(_ context.Context, username, passwordHash string, roles []string) (*domain.User, error) {
	return nil, domain.ErrUserExists
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func newTestGate(t *testing.T) (*AuthGate, *service.TokenService) {
	t.Helper()
	tokens, err := service.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*domain.User{
		"alice": {ID: 1, Username: "alice", Roles: []string{"ROLE_USER"}},
	}}
	return NewAuthGate(tokens, users), tokens
}

// captureNext records whether the chain continued and with which principal.
type captureNext struct {
	called    bool
	principal *Principal
}

func (c *captureNext) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.principal = PrincipalFromContext(r.Context())
	})
}

func TestGatePassesThroughWithoutBearer(t *testing.T) {
	gate, _ := newTestGate(t)

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Token abc"} {
		next := &captureNext{}
		req := httptest.NewRequest(http.MethodGet, "/api/statistic/total/date", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		gate.Handler(next.handler()).ServeHTTP(rec, req)

		assert.True(t, next.called, "header %q", header)
		assert.Nil(t, next.principal, "header %q", header)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestGateResolvesPrincipal(t *testing.T) {
	gate, tokens := newTestGate(t)

	token, err := tokens.GenerateToken("alice", []string{"ROLE_USER"})
	require.NoError(t, err)

	next := &captureNext{}
	req := httptest.NewRequest(http.MethodGet, "/api/statistic/total/date", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.RemoteAddr = "192.0.2.1:4242"
	rec := httptest.NewRecorder()

	gate.Handler(next.handler()).ServeHTTP(rec, req)

	require.True(t, next.called)
	require.NotNil(t, next.principal)
	assert.Equal(t, "alice", next.principal.Username)
	assert.Equal(t, []string{"ROLE_USER"}, next.principal.Roles)
	assert.Equal(t, "192.0.2.1:4242", next.principal.RemoteAddr)
}

func TestGateRejectsMalformedToken(t *testing.T) {
	gate, _ := newTestGate(t)

	next := &captureNext{}
	req := httptest.NewRequest(http.MethodGet, "/api/statistic/total/date", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()

	gate.Handler(next.handler()).ServeHTTP(rec, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An internal error occurred")
}

func TestGateRejectsUnknownSubject(t *testing.T) {
	gate, tokens := newTestGate(t)

	token, err := tokens.GenerateToken("ghost", nil)
	require.NoError(t, err)

	next := &captureNext{}
	req := httptest.NewRequest(http.MethodGet, "/api/statistic/total/date", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	gate.Handler(next.handler()).ServeHTTP(rec, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGateRejectsExpiredToken(t *testing.T) {
	gate, _ := newTestGate(t)

	expired, err := service.NewTokenService(testSecret, -time.Minute)
	require.NoError(t, err)
	token, err := expired.GenerateToken("alice", nil)
	require.NoError(t, err)

	next := &captureNext{}
	req := httptest.NewRequest(http.MethodGet, "/api/statistic/total/date", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	gate.Handler(next.handler()).ServeHTTP(rec, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	next := &captureNext{}
	req := httptest.NewRequest(http.MethodGet, "/api/statistic/total/date", nil)
	rec := httptest.NewRecorder()

	RequireAuth(next.handler()).ServeHTTP(rec, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAllowsPrincipal(t *testing.T) {
	next := &captureNext{}
	req := httptest.NewRequest(http.MethodGet, "/api/statistic/total/date", nil)
	ctx := context.WithValue(req.Context(), ContextKeyPrincipal, &Principal{Username: "alice"})
	rec := httptest.NewRecorder()

	RequireAuth(next.handler()).ServeHTTP(rec, req.WithContext(ctx))

	assert.True(t, next.called)
	require.NotNil(t, next.principal)
	assert.Equal(t, "alice", next.principal.Username)
}
