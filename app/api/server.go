// Package api exposes the scoring engine over HTTP: authoritative reads
// (snapshot, activity, chart), the SSE stream for displays, presence, and
// the operator command endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/showdown-live/scorebot/app/modules/broadcast"
	"github.com/showdown-live/scorebot/app/modules/presence"
	rosterservice "github.com/showdown-live/scorebot/app/modules/roster/application"
	tournamentservice "github.com/showdown-live/scorebot/app/modules/tournament/application"
	tournamentqueue "github.com/showdown-live/scorebot/app/modules/tournament/infrastructure/queue"
	"github.com/showdown-live/scorebot/app/shared/eventbus"
	"github.com/showdown-live/scorebot/app/shared/results"
)

// Server holds the HTTP surface's dependencies.
type Server struct {
	tournament tournamentservice.Service
	roster     rosterservice.Service
	tracker    *presence.Tracker
	queue      tournamentqueue.QueueService
	hub        *broadcast.Hub
	bus        eventbus.EventBus
	logger     *slog.Logger
	rateLimit  *IPRateLimiter
}

// NewServer creates a new Server.
func NewServer(
	tournament tournamentservice.Service,
	roster rosterservice.Service,
	tracker *presence.Tracker,
	queue tournamentqueue.QueueService,
	hub *broadcast.Hub,
	bus eventbus.EventBus,
	logger *slog.Logger,
	ratePerSecond float64,
	rateBurst int,
) *Server {
	return &Server{
		tournament: tournament,
		roster:     roster,
		tracker:    tracker,
		queue:      queue,
		hub:        hub,
		bus:        bus,
		logger:     logger,
		rateLimit:  NewIPRateLimiter(rate.Limit(ratePerSecond), rateBurst),
	}
}

// Routes builds the chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RateLimitMiddleware(s.rateLimit))

	r.Route("/api/tournaments/{tournamentID}", func(r chi.Router) {
		// Reads.
		r.Get("/snapshot", s.handleGetSnapshot)
		r.Get("/activity", s.handleGetActivity)
		r.Get("/standings.png", s.handleGetStandingsChart)
		r.Get("/stream", s.hub.ServeHTTP)
		r.Get("/presence", s.handleGetPresence)

		// Presence heartbeat (ephemeral, no authority).
		r.Post("/heartbeat", s.handleHeartbeat)

		// Commands.
		r.Post("/start", s.handleStart)
		r.Post("/reset", s.handleReset)
		r.Post("/end-round", s.handleEndRound)
		r.Post("/eliminations", s.handleEliminate)
		r.Post("/revivals", s.handleRevive)
		r.Post("/removals", s.handleRemoveCompetitor)
		r.Post("/adjustments", s.handleAdjustPoints)
		r.Post("/corrections", s.handleCorrectScore)
		r.Post("/undo", s.handleUndo)
		r.Post("/settings", s.handleUpdateSettings)
		r.Post("/lock", s.handleSetRoundLock)
		r.Post("/raffle-winners", s.handleSetRaffleWinners)
		r.Post("/raffle-draws", s.handleScheduleRaffleDraw)

		// Roster administration.
		r.Get("/competitors", s.handleListCompetitors)
		r.Post("/competitors", s.handleAddCompetitor)
		r.Post("/competitors/import", s.handleImportRoster)
		r.Delete("/competitors/{competitorID}", s.handleDeleteCompetitor)
	})

	return r
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", slog.Any("error", err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// respondResult maps an operation result onto HTTP: business rejections are
// 409s carrying the rejection payload, accepted writes return the
// authoritative payload the bus also delivers.
func (s *Server) respondResult(w http.ResponseWriter, result results.OperationResult) {
	if result.Failure != nil {
		s.respondJSON(w, http.StatusConflict, result.Failure)
		return
	}
	s.respondJSON(w, http.StatusOK, result.Success)
}
