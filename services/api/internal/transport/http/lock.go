package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/app"
	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

// MachineLocker is the minimal interface needed to acquire a lock.
type MachineLocker interface {
	AcquireLock(ctx context.Context, in app.AcquireLockInput) (domain.Lock, error)
}

// HandleLockMachine returns an HTTP handler for POST /machines/{id}/lock.
func HandleLockMachine(svc MachineLocker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		machineID, action, ok := splitMachinePath(r.URL.Path)
		if !ok || action != "lock" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req lockMachineRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.UserID == "" {
			writeError(w, http.StatusBadRequest, codeUserIDRequired, domain.ErrUserIDRequired.Error())
			return
		}

		lock, err := svc.AcquireLock(r.Context(), app.AcquireLockInput{
			MachineID: machineID,
			UserID:    req.UserID,
			ClassID:   req.ClassID,
		})
		if err != nil {
			switch err {
			case domain.ErrUserIDRequired:
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
			case domain.ErrMachineNotFound:
				writeError(w, http.StatusNotFound, codeMachineNotFound, err.Error())
			case domain.ErrMachineLocked:
				writeError(w, http.StatusConflict, codeMachineLocked, err.Error())
			case domain.ErrMachineBooked:
				writeError(w, http.StatusConflict, codeMachineBooked, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := lockMachineResponse{
			LockToken: lock.Token,
			ExpiresAt: lock.ExpiresAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type lockMachineRequest struct {
	UserID  string `json:"user_id"`
	ClassID string `json:"class_id"`
}

type lockMachineResponse struct {
	LockToken string    `json:"lock_token"`
	ExpiresAt time.Time `json:"expires_at"`
}
