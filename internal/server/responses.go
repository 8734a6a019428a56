package server

import (
	"errors"
	"net/http"

	"github.com/desertthunder/shelf/internal/shared"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

// MessageResponse is returned by operations that report an outcome rather than a resource.
type MessageResponse struct {
	Message string `json:"message"`
	Book    any    `json:"book,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail, RequestID: RequestIDFrom(r.Context())})
}

// errorStatus maps a catalog error onto an HTTP status.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, shared.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrDuplicateISBN):
		return http.StatusConflict
	case errors.Is(err, shared.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrLookupUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
