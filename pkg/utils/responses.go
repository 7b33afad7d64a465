package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every JSON body the API writes.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes the envelope with the given status code. Bodies may
// carry per-user data, so they are never cached.
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ResponseError writes a failed envelope; errs is usually a field → message map.
func ResponseError(w http.ResponseWriter, code int, message string, errs any) {
	if message == "" {
		message = http.StatusText(code)
	}
	ResponseJSON(w, code, false, message, nil, errs)
}

func ResponseBadRequest(w http.ResponseWriter, message string, errs any) {
	ResponseError(w, http.StatusBadRequest, message, errs)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, message, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message, nil)
}

func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusConflict, message, nil)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message, nil)
}

func ResponseBadGateway(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusBadGateway, message, nil)
}

func ResponseServiceUnavailable(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusServiceUnavailable, message, nil)
}
