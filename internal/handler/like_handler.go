package handler

import (
	"net/http"

	"vidtube/internal/service"
	"vidtube/pkg/logger"
)

// LikeHandler handles like toggle requests
type LikeHandler struct {
	likes *service.LikeService
	log   *logger.Logger
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(likes *service.LikeService, log *logger.Logger) *LikeHandler {
	return &LikeHandler{likes: likes, log: log}
}

// ToggleVideoLike handles POST /likes/toggle-video/{videoId}
func (h *LikeHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	videoID, err := urlID(r, "videoId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	liked, err := h.likes.ToggleVideoLike(r.Context(), principal.ID, videoID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isLiked": liked}, "Video like toggled")
}

// ToggleCommentLike handles POST /likes/toggle-comment/{commentId}
func (h *LikeHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	commentID, err := urlID(r, "commentId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	liked, err := h.likes.ToggleCommentLike(r.Context(), principal.ID, commentID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isLiked": liked}, "Comment like toggled")
}

// LikedVideos handles GET /likes/videos
func (h *LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	videos, err := h.likes.GetLikedVideos(r.Context(), principal.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, videos, "Liked videos fetched successfully")
}
