package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	tournamenttypes "github.com/showdown-live/scorebot/app/modules/tournament/domain/types"
)

// maxImportBytes caps roster sheet uploads.
const maxImportBytes = 8 << 20

func (s *Server) handleListCompetitors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	competitors, err := s.roster.ListCompetitors(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to list competitors")
		return
	}
	s.respondJSON(w, http.StatusOK, competitors)
}

func (s *Server) handleAddCompetitor(w http.ResponseWriter, r *http.Request) {
	var competitor tournamenttypes.Competitor
	if err := decodeJSON(r, &competitor); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := chi.URLParam(r, "tournamentID")
	if err := s.roster.AddCompetitor(r.Context(), id, competitor); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, competitor)
}

func (s *Server) handleImportRoster(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	id := chi.URLParam(r, "tournamentID")
	imported, err := s.roster.ImportXLSX(r.Context(), id, data)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, imported)
}

func (s *Server) handleDeleteCompetitor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	competitorID := tournamenttypes.CompetitorID(chi.URLParam(r, "competitorID"))

	if err := s.roster.DeleteCompetitor(r.Context(), id, competitorID); err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to delete competitor")
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}
