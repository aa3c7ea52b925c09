package handler

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/service"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// CommentHandler handles comment requests
type CommentHandler struct {
	comments *service.CommentService
	log      *logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *service.CommentService, log *logger.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

type commentBody struct {
	Content string `json:"content"`
}

// ListByVideo handles GET /comments/video/{videoId}
func (h *CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
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

	q := r.URL.Query()
	page := parsePositiveInt(q.Get("page"), 1)
	limit := parsePositiveInt(q.Get("limit"), 10)

	comments, err := h.comments.ListByVideo(r.Context(), videoID, principal.ID, page, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, comments, "Comments fetched successfully")
}

// Add handles POST /comments/{videoId}/add
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
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

	var body commentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.log, errors.NewBadRequestError("Invalid request body"))
		return
	}

	comment, err := h.comments.Add(r.Context(), videoID, principal.ID, body.Content)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment, "Comment added successfully")
}

// Update handles POST /comments/{commentId}/update
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var body commentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, h.log, errors.NewBadRequestError("Invalid request body"))
		return
	}

	comment, err := h.comments.Update(r.Context(), commentID, principal.ID, body.Content)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, comment, "Comment edited successfully")
}

// Delete handles POST /comments/{commentId}/delete
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.comments.Delete(r.Context(), commentID, principal.ID); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Comment deleted successfully")
}
