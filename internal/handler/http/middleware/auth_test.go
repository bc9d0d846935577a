package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenAuth() *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
}

func protectedStack(ja *jwtauth.JWTAuth) http.Handler {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	handler = AuthRequired(ja)(handler)
	return jwtauth.Verifier(ja)(handler)
}

func encodeToken(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) string {
	t.Helper()
	_, tokenString, err := ja.Encode(claims)
	require.NoError(t, err)
	return tokenString
}

func TestAuthRequired_ValidAccessToken(t *testing.T) {
	ja := testTokenAuth()
	token := encodeToken(t, ja, map[string]interface{}{
		"user_id": "u-1",
		"org_id":  "org-1",
		"role":    "employee",
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedStack(ja).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired_MissingToken(t *testing.T) {
	ja := testTokenAuth()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	protectedStack(ja).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RefreshTokenRejected(t *testing.T) {
	ja := testTokenAuth()
	token := encodeToken(t, ja, map[string]interface{}{
		"user_id": "u-1",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedStack(ja).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	ja := testTokenAuth()
	token := encodeToken(t, ja, map[string]interface{}{
		"user_id": "u-1",
		"type":    "access",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedStack(ja).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	ja := testTokenAuth()

	stack := func() http.Handler {
		var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler = RequireAdmin(handler)
		handler = AuthRequired(ja)(handler)
		return jwtauth.Verifier(ja)(handler)
	}()

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"manager", http.StatusForbidden},
		{"team_lead", http.StatusForbidden},
		{"employee", http.StatusForbidden},
	}
	for _, c := range cases {
		token := encodeToken(t, ja, map[string]interface{}{
			"user_id": "u-1",
			"org_id":  "org-1",
			"role":    c.role,
			"type":    "access",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		stack.ServeHTTP(rec, req)

		assert.Equal(t, c.want, rec.Code, "role %s", c.role)
	}
}

func TestRequireManagement(t *testing.T) {
	ja := testTokenAuth()

	stack := func() http.Handler {
		var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler = RequireManagement(handler)
		handler = AuthRequired(ja)(handler)
		return jwtauth.Verifier(ja)(handler)
	}()

	cases := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"manager", http.StatusOK},
		{"team_lead", http.StatusOK},
		{"employee", http.StatusForbidden},
	}
	for _, c := range cases {
		token := encodeToken(t, ja, map[string]interface{}{
			"user_id": "u-1",
			"org_id":  "org-1",
			"role":    c.role,
			"type":    "access",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		stack.ServeHTTP(rec, req)

		assert.Equal(t, c.want, rec.Code, "role %s", c.role)
	}
}
