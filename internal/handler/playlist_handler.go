package handler

import (
	"encoding/json"
	"net/http"

	"vidtube/internal/domain"
	"vidtube/internal/service"
	"vidtube/pkg/errors"
	"vidtube/pkg/logger"
)

// PlaylistHandler handles playlist requests
type PlaylistHandler struct {
	playlists *service.PlaylistService
	log       *logger.Logger
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(playlists *service.PlaylistService, log *logger.Logger) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, log: log}
}

// Create handles POST /playlists/create
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req domain.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, errors.NewBadRequestError("Invalid request body"))
		return
	}

	playlist, err := h.playlists.Create(r.Context(), principal.ID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, playlist, "Playlist created successfully")
}

// Update handles POST /playlists/update/{playlistId}
func (h *PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	playlistID, err := urlID(r, "playlistId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req domain.PlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, errors.NewBadRequestError("Invalid request body"))
		return
	}

	playlist, err := h.playlists.Update(r.Context(), playlistID, principal.ID, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist, "Playlist updated successfully")
}

// Delete handles POST /playlists/delete/{playlistId}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	playlistID, err := urlID(r, "playlistId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.playlists.Delete(r.Context(), playlistID, principal.ID); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, struct{}{}, "Playlist deleted successfully")
}

// AddVideo handles POST /playlists/add/{playlistId}/{videoId}
func (h *PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	playlistID, err := urlID(r, "playlistId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	videoID, err := urlID(r, "videoId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	playlist, err := h.playlists.AddVideo(r.Context(), playlistID, videoID, principal.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist, "Video added to playlist")
}

// RemoveVideo handles POST /playlists/delete/{playlistId}/{videoId}
func (h *PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	playlistID, err := urlID(r, "playlistId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	videoID, err := urlID(r, "videoId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	playlist, err := h.playlists.RemoveVideo(r.Context(), playlistID, videoID, principal.ID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist, "Video removed from playlist")
}

// ListByUser handles GET /playlists/get/{userId}
func (h *PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := urlID(r, "userId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	playlists, err := h.playlists.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, playlists, "Playlists fetched successfully")
}

// GetByID handles GET /playlists/get/p/{playlistId}
func (h *PlaylistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	playlistID, err := urlID(r, "playlistId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	playlist, err := h.playlists.GetByID(r.Context(), playlistID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist, "Playlist fetched successfully")
}
