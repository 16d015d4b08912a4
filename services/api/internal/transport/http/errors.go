package http

import (
	"encoding/json"
	"net/http"
)

// Stable machine-readable codes carried next to the human message, so
// clients can branch without parsing error text.
const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeUserIDRequired       = "user_id_required"
	codeMachineNotFound      = "machine_not_found"
	codeMachineLocked        = "machine_locked"
	codeMachineBooked        = "machine_booked"
	codeInvalidOrExpiredLock = "invalid_or_expired_lock"
	codeLockNotFound         = "lock_not_found"
	codeBookingNotFound      = "booking_not_found"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, Code: code})
}
