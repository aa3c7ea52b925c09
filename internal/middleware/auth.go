package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"vidtube/internal/service/auth"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// UserContextKey is the key for the authenticated principal in context
	UserContextKey ContextKey = "user"
)

// Principal is the authenticated identity attached to the request context
type Principal struct {
	ID       string
	Username string
	Email    string
}

// PrincipalFrom extracts the authenticated principal from a context
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(UserContextKey).(*Principal)
	return principal, ok
}

// Auth creates an authentication middleware validating the access token
// from the Authorization header or the accessToken cookie
func Auth(tokens *auth.TokenManager, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractToken(r)
			if err != nil {
				writeAuthError(w, err, logger)
				return
			}

			claims, verifyErr := tokens.VerifyAccessToken(token)
			if verifyErr != nil {
				logger.WithError(verifyErr).Debug("Token validation failed")
				writeAuthError(w, errors.NewUnauthorizedError("Invalid or expired token"), logger)
				return
			}

			principal := &Principal{
				ID:       claims.Subject,
				Username: claims.Username,
				Email:    claims.Email,
			}
			ctx := context.WithValue(r.Context(), UserContextKey, principal)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the access token from the bearer header or cookie
func extractToken(r *http.Request) (string, *errors.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", errors.NewUnauthorizedError("Invalid authorization header format")
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return "", errors.NewUnauthorizedError("Token is required")
		}
		return token, nil
	}

	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", errors.NewUnauthorizedError("Authorization is required")
}

// writeAuthError writes an error envelope without importing the handler package
func writeAuthError(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Debug("Request rejected by auth middleware")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"statusCode": appErr.StatusCode,
		"message":    appErr.Message,
		"success":    false,
	})
}
