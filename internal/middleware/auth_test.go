package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vidtube/internal/domain"
	"vidtube/internal/service/auth"
	"vidtube/pkg/logger"
)

func testTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func nopLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func issueAccessToken(t *testing.T, tokens *auth.TokenManager) string {
	t.Helper()
	pair, err := tokens.GeneratePair(&domain.User{
		ID: "user-1", Username: "tester", Email: "t@example.com",
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func TestAuthBearerHeader(t *testing.T) {
	tokens := testTokenManager()

	var seen *Principal
	handler := Auth(tokens, nopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := PrincipalFrom(r.Context())
		seen = principal
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccessToken(t, tokens))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.ID)
	assert.Equal(t, "tester", seen.Username)
	assert.Equal(t, "t@example.com", seen.Email)
}

func TestAuthCookie(t *testing.T) {
	tokens := testTokenManager()

	handler := Auth(tokens, nopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: issueAccessToken(t, tokens)})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRejections(t *testing.T) {
	tokens := testTokenManager()
	otherTokens := auth.NewTokenManager("other-secret", "other-refresh", time.Minute, time.Hour)

	handler := Auth(tokens, nopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not be reached")
	}))

	tests := []struct {
		name  string
		setup func(t *testing.T, r *http.Request)
	}{
		{
			name:  "no credentials",
			setup: func(t *testing.T, r *http.Request) {},
		},
		{
			name: "malformed header",
			setup: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Token abc")
			},
		},
		{
			name: "garbage token",
			setup: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-jwt")
			},
		},
		{
			name: "token signed with another secret",
			setup: func(t *testing.T, r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+issueAccessToken(t, otherTokens))
			},
		},
		{
			name: "refresh token is not an access token",
			setup: func(t *testing.T, r *http.Request) {
				pair, err := tokens.GeneratePair(&domain.User{ID: "user-1"})
				require.NoError(t, err)
				r.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			tt.setup(t, req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, float64(http.StatusUnauthorized), body["statusCode"])
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestRequestID(t *testing.T) {
	handler := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := r.Context().Value(RequestIDContextKey).(string)
		assert.True(t, ok)
		assert.NotEmpty(t, id)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
