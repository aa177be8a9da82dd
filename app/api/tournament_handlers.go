package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/showdown-live/scorebot/app/modules/broadcast"
	tournamentevents "github.com/showdown-live/scorebot/app/modules/tournament/domain/events"
)

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	snapshot, err := s.tournament.GetSnapshot(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to compute snapshot")
		return
	}
	s.respondJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.tournament.GetActivity(r.Context(), id, limit)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to load activity")
		return
	}
	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetStandingsChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	snapshot, err := s.tournament.GetSnapshot(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to compute snapshot")
		return
	}

	png, err := broadcast.GenerateStandingsChart(snapshot)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		s.logger.Error("Failed to write chart response", "error", err)
	}
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.StartTournamentPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.StartTournament(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "start failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.ResetTournamentPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.ResetTournament(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "reset failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.EndRoundPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.EndRound(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "end round failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleEliminate(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.EliminatePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.RecordElimination(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "elimination failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleRevive(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.RevivePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.RecordRevival(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "revival failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleRemoveCompetitor(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.RemoveCompetitorPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.RemoveCompetitor(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "removal failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleAdjustPoints(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.AdjustPointsPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.AdjustPoints(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "adjustment failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleCorrectScore(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.CorrectScorePayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.CorrectScore(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "correction failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.UndoPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.RetractLastAction(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "undo failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.UpdateSettingsPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.UpdateSettings(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "settings update failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleSetRoundLock(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.SetRoundLockPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.SetRoundLock(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "lock update failed")
		return
	}
	s.respondResult(w, result)
}

func (s *Server) handleSetRaffleWinners(w http.ResponseWriter, r *http.Request) {
	var payload tournamentevents.SetRaffleWinnersPayload
	if err := decodeJSON(r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.TournamentID = chi.URLParam(r, "tournamentID")

	result, err := s.tournament.SetRaffleWinners(r.Context(), payload)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "raffle update failed")
		return
	}
	s.respondResult(w, result)
}

type scheduleRaffleDrawRequest struct {
	DrawTime    time.Time `json:"draw_time"`
	WinnerCount int       `json:"winner_count"`
}

func (s *Server) handleScheduleRaffleDraw(w http.ResponseWriter, r *http.Request) {
	var req scheduleRaffleDrawRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.WinnerCount <= 0 {
		s.respondError(w, http.StatusBadRequest, "winner_count must be positive")
		return
	}

	id := chi.URLParam(r, "tournamentID")
	drawID := uuid.NewString()
	if err := s.queue.ScheduleRaffleDraw(r.Context(), id, drawID, req.DrawTime, req.WinnerCount); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusAccepted, map[string]string{"draw_id": drawID})
}
