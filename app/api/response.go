package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageBody confirms an operation that returns no entity.
type MessageBody struct {
	Message string `json:"mensaje"`
}

func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) //nolint:errcheck
}

func OKResponse(w http.ResponseWriter, data any) {
	JSONResponse(w, http.StatusOK, data)
}

func CreatedResponse(w http.ResponseWriter, data any) {
	JSONResponse(w, http.StatusCreated, data)
}

func MessageResponse(w http.ResponseWriter, message string) {
	JSONResponse(w, http.StatusOK, MessageBody{Message: message})
}

func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, ErrorBody{Error: message})
}

// ValidationErrorResponse reports per-field constraint failures with 422.
func ValidationErrorResponse(w http.ResponseWriter, fields map[string]string) {
	JSONResponse(w, http.StatusUnprocessableEntity, ErrorBody{
		Error:  "validation failed",
		Fields: fields,
	})
}

// IDParam parses the chi URL parameter name as an integer id. Only a value
// that is not an integer is an error. Integers that cannot name a row (zero,
// negative, out of range) come back as 0, which no lookup resolves.
func IDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	if id <= 0 {
		return 0, nil
	}
	return uint(id), nil
}
