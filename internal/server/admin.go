package server

import (
	"net/http"

	"academy-ledger/internal/domain"
	"academy-ledger/internal/service"
)

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.dashboard.Snapshot(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateSettingsInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	settings, err := s.settings.Update(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) getExchangeRate(w http.ResponseWriter, r *http.Request) {
	rate, err := s.rates.Current(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	var role *domain.UserRole
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, err := domain.ParseUserRole(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		role = &parsed
	}

	users, err := s.users.List(r.Context(), role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in service.CreateUserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := s.users.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}
