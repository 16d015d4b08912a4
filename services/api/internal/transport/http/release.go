package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

// LockReleaser is the minimal interface needed to release a lock.
type LockReleaser interface {
	ReleaseLock(ctx context.Context, machineID int, token string) error
}

// HandleReleaseLock returns an HTTP handler for POST /machines/{id}/release.
// The token is the only credential; whoever holds it may release the lock.
func HandleReleaseLock(svc LockReleaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		machineID, action, ok := splitMachinePath(r.URL.Path)
		if !ok || action != "release" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req releaseLockRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.LockToken == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, "lock_token is required")
			return
		}

		if err := svc.ReleaseLock(r.Context(), machineID, req.LockToken); err != nil {
			switch err {
			case domain.ErrLockNotFound:
				writeError(w, http.StatusNotFound, codeLockNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type releaseLockRequest struct {
	LockToken string `json:"lock_token"`
}
