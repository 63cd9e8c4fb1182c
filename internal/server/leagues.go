package server

import (
	"net/http"

	"academy-ledger/internal/service"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.leagues.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.leagues.GetCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) listLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := s.leagues.ListLeagues(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leagues)
}

func (s *Server) getLeague(w http.ResponseWriter, r *http.Request) {
	league, err := s.leagues.GetLeague(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, league)
}

func (s *Server) createLeague(w http.ResponseWriter, r *http.Request) {
	var in service.CreateLeagueInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	league, err := s.leagues.CreateLeague(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, league)
}

func (s *Server) enroll(w http.ResponseWriter, r *http.Request) {
	var in service.EnrollInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	enrollment, err := s.leagues.Enroll(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, enrollment)
}

func (s *Server) unenroll(w http.ResponseWriter, r *http.Request) {
	if err := s.leagues.Unenroll(r.Context(), r.PathValue("leagueId"), r.PathValue("studentId")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "student unenrolled"})
}
