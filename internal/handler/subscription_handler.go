package handler

import (
	"net/http"

	"vidtube/internal/service"
	"vidtube/pkg/logger"
)

// SubscriptionHandler handles channel subscription requests
type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
	log           *logger.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptions *service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, log: log}
}

// Toggle handles POST /subscriptions/toggle/{channelId}
func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	principal, err := requirePrincipal(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	channelID, err := urlID(r, "channelId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	subscribed, err := h.subscriptions.Toggle(r.Context(), principal.ID, channelID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isSubscribed": subscribed}, "Subscription toggled")
}

// SubscribedChannels handles GET /subscriptions/subscribed-channels/{subscriberId}
func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, err := urlID(r, "subscriberId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	channels, err := h.subscriptions.GetSubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, channels, "Subscribed channels fetched successfully")
}

// Subscribers handles GET /subscriptions/get-subscribers/{channelId}
func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := urlID(r, "channelId")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	subscribers, err := h.subscriptions.GetSubscribers(r.Context(), channelID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, subscribers, "Subscribers fetched successfully")
}
