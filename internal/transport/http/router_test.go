package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourhostel/stat-syncer/internal/cache"
	"github.com/yourhostel/stat-syncer/internal/domain"
	"github.com/yourhostel/stat-syncer/internal/service"
	"github.com/yourhostel/stat-syncer/internal/transport/http/handler"
	"github.com/yourhostel/stat-syncer/internal/transport/http/middleware"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func (m *memUserRepo) CreateUser(_ context.Context, username, passwordHash string, roles []string) (*domain.User, error) {
	if _, exists := m.users[username]; exists {
		return nil, domain.ErrUserExists
	}
	user := &domain.User{
		ID:           int64(len(m.users) + 1),
		Username:     username,
		PasswordHash: passwordHash,
		Roles:        roles,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[username] = user
	return user, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type memReportRepo struct {
	docs []domain.ReportDocument
}

func (m *memReportRepo) AllDocuments(_ context.Context) ([]domain.ReportDocument, error) {
	return m.docs, nil
}

func (m *memReportRepo) ReplaceAll(_ context.Context, _ [][]byte) error {
	return nil
}

func newTestRouter(t *testing.T, docs []domain.ReportDocument) http.Handler {
	t.Helper()

	tokens, err := service.NewTokenService("router-test-signing-secret", time.Hour)
	require.NoError(t, err)

	users := &memUserRepo{users: make(map[string]*domain.User)}
	authService := service.NewAuthService(users, tokens, bcrypt.MinCost)
	require.NotNil(t, authService)

	reportService := service.NewReportService(&memReportRepo{docs: docs}, cache.NewMemoryCache(0))
	require.NotNil(t, reportService)

	return NewRouter(
		handler.New("test"),
		handler.NewAuthHandler(authService),
		handler.NewReportHandler(reportService),
		middleware.NewAuthGate(tokens, users),
	)
}

func doJSON(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsOpen(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthEndpointsAreOpen(t *testing.T) {
	router := newTestRouter(t, nil)

	// An invalid body still reaches the handler: the gate let it through
	rec := doJSON(router, http.MethodPost, "/api/auth/login", "{}", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/auth/signup", "{}", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{
		"/api/statistic/date?start=2024-05-01&end=2024-05-02",
		"/api/statistic/asin?asin=A1",
		"/api/statistic/total/units",
		"/api/statistic/total/date",
		"/api/statistic/total/asin",
	} {
		rec := doJSON(router, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestBadTokenYieldsGenericError(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodGet, "/api/statistic/total/units", "", "garbage")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "An internal error occurred")
}

func TestSignupLoginAndQueryFlow(t *testing.T) {
	docs := []domain.ReportDocument{{
		SalesAndTrafficByAsin: []domain.AsinEntry{{
			ParentAsin: "A1",
			SalesByAsin: domain.SalesMetrics{
				UnitsOrdered:        3,
				OrderedProductSales: domain.Money{Amount: 12.5},
			},
		}},
	}}
	router := newTestRouter(t, docs)

	rec := doJSON(router, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","password":"s3cret"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"s3cret"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var loginResp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Data.Token)

	rec = doJSON(router, http.MethodGet, "/api/statistic/total/units", "", loginResp.Data.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalSalesAmount":12.5,"totalUnitsOrdered":3}`, rec.Body.String())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(router, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","password":"s3cret"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
