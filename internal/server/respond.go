package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"academy-ledger/internal/constants"
	"academy-ledger/internal/domain"
	"academy-ledger/internal/middleware"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"` // only on 500s
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors to HTTP statuses. Anything unrecognized is
// logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr    *domain.ValidationError
		rateErr *domain.InvalidRateError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
	case errors.As(err, &rateErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: rateErr.Error(), Field: "exchangeRate"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDuplicateEnrollment):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:     "internal server error",
			RequestID: middleware.GetRequestID(r.Context()),
		})
	}
}

// decodeJSON reads a bounded request body into dst. Malformed bodies come
// back as validation errors so they map to 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodyBytes)

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var (
		verr      *domain.ValidationError
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		return verr
	case errors.As(err, &typeErr):
		return domain.NewValidationError(typeErr.Field, fmt.Sprintf("must be a %s", typeErr.Type))
	case errors.As(err, &syntaxErr):
		return domain.NewValidationError("body", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
	case errors.As(err, &maxErr):
		return domain.NewValidationError("body", fmt.Sprintf("must not exceed %d bytes", maxErr.Limit))
	case errors.Is(err, io.EOF):
		return domain.NewValidationError("body", "is required")
	}
	return domain.NewValidationError("body", err.Error())
}

// dateRange reads the optional inclusive from/to query bounds.
func dateRange(q url.Values) (domain.DateRange, error) {
	var r domain.DateRange
	for key, dst := range map[string]*domain.Date{"from": &r.From, "to": &r.To} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		d, err := domain.ParseDate(raw)
		if err != nil {
			return domain.DateRange{}, domain.NewValidationError(key, "must be a date in YYYY-MM-DD form")
		}
		*dst = d
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From.Time) {
		return domain.DateRange{}, domain.NewValidationError("to", "must not be before from")
	}
	return r, nil
}
