package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-hq/backoffice-go/internal/pkg/jwt"
)

func testRouter(jwtService jwt.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
	r.Use(AuthRequired(jwtService.JWTAuth()))
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Group(func(r chi.Router) {
		r.Use(AdminOnly)
		r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func doRequest(t *testing.T, router *chi.Mux, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := testRouter(jwtService)

	// No token.
	rec := doRequest(t, router, "/ping", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec = doRequest(t, router, "/ping", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid access token.
	token, _, err := jwtService.GenerateAccessToken("user-1", "bu-1", false)
	require.NoError(t, err)
	rec = doRequest(t, router, "/ping", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired_MissingBusinessUnit(t *testing.T) {
	t.Parallel()
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := testRouter(jwtService)

	token, _, err := jwtService.GenerateAccessToken("user-1", "", false)
	require.NoError(t, err)

	rec := doRequest(t, router, "/ping", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	t.Parallel()
	jwtService := jwt.NewJWTService("test-secret", "1h")
	router := testRouter(jwtService)

	token, _, err := jwtService.GenerateAccessToken("user-1", "bu-1", false)
	require.NoError(t, err)
	rec := doRequest(t, router, "/admin", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, _, err := jwtService.GenerateAccessToken("admin-1", "bu-1", true)
	require.NoError(t, err)
	rec = doRequest(t, router, "/admin", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}
