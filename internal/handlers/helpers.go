// Package handlers exposes the JSON API. Every response uses the same
// envelope so clients switch on code instead of parsing error strings.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"it-library-portal/internal/service"
	"it-library-portal/internal/store"
	"it-library-portal/internal/validate"
)

type response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, msg string, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response{Code: status, Msg: msg, Data: data}); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func ok(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, "ok", data)
}

func created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, "created", data)
}

// fail maps service and store errors to HTTP statuses. Field validation
// errors carry the per-field messages in data.
func fail(w http.ResponseWriter, err error) {
	var fieldErrs validate.FieldErrors
	if errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusBadRequest, "validation failed", fieldErrs)
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, store.ErrIdentifierTaken),
		errors.Is(err, store.ErrYearTaken),
		errors.Is(err, service.ErrCodeAlreadyIssued),
		errors.Is(err, service.ErrAlreadyReturned),
		errors.Is(err, service.ErrLibrarianExists):
		writeJSON(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountNotFound):
		writeJSON(w, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, service.ErrAccountPending),
		errors.Is(err, service.ErrAccountRejected):
		writeJSON(w, http.StatusForbidden, err.Error(), nil)
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, "malformed request body", nil)
		return false
	}
	return true
}
