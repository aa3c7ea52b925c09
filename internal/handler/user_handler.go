package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/service"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

const registerFormMemory = 32 << 20 // 32MB in memory, rest spills to disk

// UserHandler handles identity, session and profile requests
type UserHandler struct {
	users         *service.UserService
	log           *logger.Logger
	secureCookies bool
	refreshTTL    time.Duration
	accessTTL     time.Duration
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, log *logger.Logger, secureCookies bool, accessTTL, refreshTTL time.Duration) *UserHandler {
	return &UserHandler{
		users:         users,
		log:           log,
		secureCookies: secureCookies,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Register handles POST /users/register (multipart)
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(registerFormMemory); err != nil {
		writeError(w, h.log, errors.NewBadRequestError("Invalid multipart form"))
		return
	}

	avatar, closeAvatar, err := formFile(r, "avatar")
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if closeAvatar != nil {
		defer closeAvatar()
	}

	cover, closeCover, err := formFile(r, "coverImage")
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if closeCover != nil {
		defer closeCover()
	}

	req := &domain.RegisterRequest{
		FullName:   r.FormValue("fullname"),
		Username:   r.FormValue("username"),
		Email:      r.FormValue("email"),
		Password:   r.FormValue("password"),
		Avatar:     avatar,
		CoverImage: cover,
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, user, "User registered successfully")
}

// Login handles POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, errors.NewBadRequestError("Invalid request body"))
		return
	}

	result, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.setAuthCookies(w, result.AccessToken, result.RefreshToken)
	writeJSON(w, http.StatusOK, result, "User logged in successfully")
}

// Logout handles POST /users/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.users.Logout(r.Context(), principal.ID); err != nil {
		writeError(w, h.log, err)
		return
	}

	h.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, struct{}{}, "User logged out")
}

// RefreshToken handles POST /users/refresh-token. The refresh token comes
// from the cookie or, failing that, the request body.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	token := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			token = body.RefreshToken
		}
	}

	pair, err := h.users.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.setAuthCookies(w, pair.AccessToken, pair.RefreshToken)
	writeJSON(w, http.StatusOK, pair, "Access token refreshed")
}

// ChangePassword handles POST /users/change-password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req domain.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, errors.NewBadRequestError("Invalid request body"))
		return
	}

	if err := h.users.ChangePassword(r.Context(), principal.ID, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Password changed successfully")
}

// CurrentUser handles POST /users/current-user
func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	user, err := h.users.GetCurrentUser(r.Context(), principal.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, user, "User fetched successfully")
}

// ChannelProfile handles GET /users/c/{username}
func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	username := urlParam(r, "username")

	profile, err := h.users.GetChannelProfile(r.Context(), username, principal.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, profile, "User channel fetched successfully")
}

// WatchHistory handles GET /users/history
func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	history, err := h.users.GetWatchHistory(r.Context(), principal.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, history, "Watch history fetched successfully")
}

// setAuthCookies sets the HTTP-only access and refresh token cookies
func (h *UserHandler) setAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies expires both token cookies
func (h *UserHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookies,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// parsePositiveInt parses a positive integer query parameter with a fallback
func parsePositiveInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
