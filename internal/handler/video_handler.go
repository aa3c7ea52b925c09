package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/domain"
	"vidtube/internal/service"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

const publishFormMemory = 64 << 20

// VideoHandler handles video lifecycle requests
type VideoHandler struct {
	videos *service.VideoService
	log    *logger.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videos *service.VideoService, log *logger.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, log: log}
}

// List handles GET /videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.VideoFilter{
		Query:   q.Get("query"),
		OwnerID: q.Get("userId"),
		SortBy:  q.Get("sortBy"),
		SortAsc: q.Get("sortType") == "asc",
		Page:    parsePositiveInt(q.Get("page"), 1),
		Limit:   parsePositiveInt(q.Get("limit"), 10),
	}

	page, err := h.videos.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, page, "Videos fetched successfully")
}

// Publish handles POST /videos/publish (multipart)
func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := r.ParseMultipartForm(publishFormMemory); err != nil {
		writeError(w, h.log, errors.NewBadRequestError("Invalid multipart form"))
		return
	}

	videoFile, closeVideo, err := formFile(r, "videoFile")
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if closeVideo != nil {
		defer closeVideo()
	}

	thumbnail, closeThumb, err := formFile(r, "thumbnailFile")
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if closeThumb != nil {
		defer closeThumb()
	}

	duration, _ := strconv.ParseFloat(r.FormValue("duration"), 64)

	req := &domain.PublishVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Duration:    duration,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	}

	video, err := h.videos.Publish(r.Context(), principal.ID, req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, video, "Video published successfully")
}

// GetByID handles GET /videos/{videoId}
func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
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

	detail, err := h.videos.GetByID(r.Context(), videoID, principal.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, detail, "Video fetched successfully")
}

// Delete handles POST /videos/delete/{videoId}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.videos.Delete(r.Context(), videoID, principal.ID); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Video deleted successfully")
}

// TogglePublish handles POST /videos/toggle/{videoId}
func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
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

	isPublished, err := h.videos.TogglePublish(r.Context(), videoID, principal.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isPublished": isPublished}, "Publish status toggled")
}
