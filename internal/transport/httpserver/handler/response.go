package handler

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope is the single error shape every failure response uses.
type errorEnvelope struct {
	Detail string  `json:"detail"`
	Code   *string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorEnvelope{Detail: detail})
}

// writeValidationError hides field-level detail from the client; reach for
// it through Handlers.validationError so the specifics get logged.
func writeValidationError(w http.ResponseWriter) {
	code := "VALIDATION_ERROR"
	writeJSON(w, http.StatusUnprocessableEntity, errorEnvelope{Detail: "Validation error", Code: &code})
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
