// Package api binds HTTP verbs and paths to {schema, roles, operation}
// triples and normalizes every outcome into one of a small set of response
// envelopes.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/signalytics/pokedex/internal/server"
	"github.com/signalytics/pokedex/pkg/schema"
	"github.com/signalytics/pokedex/pkg/store"
)

// Error codes surfaced in the error envelope.
const (
	codeValidation   = "validation_error"
	codeUnauthorized = "unauthorized"
	codeNotFound     = "not_found"
	codeInternal     = "internal_error"
)

// errorBody is the single error envelope. Its shape never varies by
// operation.
type errorBody struct {
	Error   bool              `json:"error"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// pageBody is the success-page envelope.
type pageBody struct {
	Items    any   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

// deletedBody confirms a delete with no content beyond a success indicator.
type deletedBody struct {
	Success bool `json:"success"`
}

func respondJSON(srv server.Server, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		srv.Logger.Error("error encoding response", "error", err)
	}
}

func respondError(
	srv server.Server, w http.ResponseWriter, status int, code, message string,
) {
	respondJSON(srv, w, status, errorBody{
		Error:   true,
		Code:    code,
		Message: message,
	})
}

// respondValidation shapes a schema failure as a 400 with per-field detail.
func respondValidation(srv server.Server, w http.ResponseWriter, err error) {
	respondJSON(srv, w, http.StatusBadRequest, errorBody{
		Error:   true,
		Code:    codeValidation,
		Message: "invalid request payload",
		Fields:  schema.FieldErrors(err),
	})
}

// respondUnauthorized is the one generic unauthorized response. It carries
// no detail about which check failed.
func respondUnauthorized(srv server.Server, w http.ResponseWriter) {
	respondError(srv, w, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
}

// respondOpError derives the HTTP status deterministically from the
// operation failure kind. Store-internal detail never reaches the caller.
func respondOpError(srv server.Server, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(srv, w, http.StatusNotFound, codeNotFound, "resource not found")
	case errors.Is(err, store.ErrEmptyFilter),
		errors.Is(err, store.ErrFieldNotAllowed):
		respondError(srv, w, http.StatusBadRequest, codeValidation, err.Error())
	default:
		respondError(srv, w, http.StatusInternalServerError,
			codeInternal, "internal server error")
	}
}

// decodeBody decodes a JSON request body into a raw payload map. An empty
// body decodes to an empty map so required-field violations are reported
// per field rather than as a decode failure.
func decodeBody(r *http.Request) (map[string]any, error) {
	raw := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	return raw, nil
}
