// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package api is the HTTP surface: a thin role-gated mapping from REST
// requests to the ticket manager, the store, and the notification
// dispatcher. Every response uses the uniform envelope
// {success, message, data}.
package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/propkeep/propkeep/internal/logging"
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/validation"
)

// Envelope is the uniform response shape.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logging.Err(err).Msg("encoding response failed")
	}
}

// WriteSuccess writes a 200 envelope with data.
func WriteSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// WriteCreated writes a 201 envelope with data.
func WriteCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// WriteBadRequest writes a 400 envelope.
func WriteBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: message})
}

// WriteUnauthorized writes a 401 envelope.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: message})
}

// WriteForbidden writes a 403 envelope.
func WriteForbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, Envelope{Success: false, Message: message})
}

// WriteError maps a domain error to the envelope and status code.
// Validation 400, permission 403, not-found 404, conflict 409, anything
// else a generic 500 with the detail kept in the logs.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *models.ValidationError
		requestErr    *validation.RequestError
		permissionErr *models.PermissionError
		notFoundErr   *models.NotFoundError
		conflictErr   *models.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: validationErr.Error()})
	case errors.As(err, &requestErr):
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: requestErr.Error()})
	case errors.As(err, &permissionErr):
		writeJSON(w, http.StatusForbidden, Envelope{Success: false, Message: permissionErr.Error()})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, Envelope{Success: false, Message: notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, Envelope{Success: false, Message: conflictErr.Error()})
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, Envelope{Success: false, Message: "internal server error"})
	}
}

// decodeJSON decodes the request body into dst, rejecting malformed JSON.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("", "invalid JSON body")
	}
	return nil
}
