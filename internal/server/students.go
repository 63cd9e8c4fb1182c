package server

import (
	"net/http"

	"academy-ledger/internal/domain"
	"academy-ledger/internal/service"
)

type deleteStudentResponse struct {
	Message string          `json:"message"`
	Student *domain.Student `json:"student"`
}

func (s *Server) listStudents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.StudentFilter{CategoryID: q.Get("categoryId")}
	if raw := q.Get("status"); raw != "" {
		status, err := domain.ParseStudentStatus(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		filter.Status = &status
	}

	students, err := s.students.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (s *Server) getStudent(w http.ResponseWriter, r *http.Request) {
	student, err := s.students.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (s *Server) createStudent(w http.ResponseWriter, r *http.Request) {
	var in service.CreateStudentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	student, err := s.students.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

func (s *Server) updateStudent(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateStudentInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	student, err := s.students.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

func (s *Server) deleteStudent(w http.ResponseWriter, r *http.Request) {
	student, err := s.students.Deactivate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteStudentResponse{Message: "student deactivated", Student: student})
}

func (s *Server) getStudentBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.students.Balance(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}
