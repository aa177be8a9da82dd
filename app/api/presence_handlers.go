package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"

	"github.com/showdown-live/scorebot/app/modules/presence"
	"github.com/showdown-live/scorebot/app/shared/eventbus"
)

type heartbeatRequest struct {
	AdminID string `json:"admin_id"`
}

// handleHeartbeat fans a presence ping out on the ephemeral subject and feeds
// the local tracker directly so single-node deployments see themselves
// without a bus round trip.
func (s *Server) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	var req heartbeatRequest
	if err := decodeJSON(r, &req); err != nil || req.AdminID == "" {
		s.respondError(w, http.StatusBadRequest, "admin_id is required")
		return
	}

	id := chi.URLParam(r, "tournamentID")
	now := time.Now()
	s.tracker.Heartbeat(id, req.AdminID, now)

	payload, err := json.Marshal(presence.HeartbeatPayload{
		TournamentID: id,
		AdminID:      req.AdminID,
		At:           now,
	})
	if err == nil {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.bus.PublishEphemeral(r.Context(), eventbus.SubjectPresenceHeartbeat, msg); err != nil {
			// Presence is advisory; the tracker already saw the ping.
			s.logger.Warn("Failed to publish heartbeat", "error", err)
		}
	}

	s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})
}

func (s *Server) handleGetPresence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	s.respondJSON(w, http.StatusOK, map[string]any{
		"admins": s.tracker.Active(id, time.Now()),
	})
}
