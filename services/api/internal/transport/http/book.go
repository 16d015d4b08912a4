package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/app"
	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

// MachineBooker is the minimal interface needed to confirm a booking.
type MachineBooker interface {
	ConfirmBooking(ctx context.Context, in app.ConfirmBookingInput) (domain.Booking, error)
}

// HandleBookMachine returns an HTTP handler for POST /machines/{id}/book.
func HandleBookMachine(svc MachineBooker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		machineID, action, ok := splitMachinePath(r.URL.Path)
		if !ok || action != "book" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req bookMachineRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, err.Error())
			return
		}

		booking, err := svc.ConfirmBooking(r.Context(), app.ConfirmBookingInput{
			MachineID: machineID,
			UserID:    req.UserID,
			Token:     req.LockToken,
			ClassID:   req.ClassID,
		})
		if err != nil {
			switch err {
			case domain.ErrInvalidOrExpiredLock:
				writeError(w, http.StatusConflict, codeInvalidOrExpiredLock, err.Error())
			case domain.ErrMachineBooked:
				writeError(w, http.StatusConflict, codeMachineBooked, err.Error())
			case domain.ErrUserIDRequired:
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := bookMachineResponse{
			ID:        booking.ID,
			MachineID: booking.MachineID,
			UserID:    booking.UserID,
			ClassID:   booking.ClassID,
			CreatedAt: booking.CreatedAt,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type bookMachineRequest struct {
	UserID    string `json:"user_id"`
	LockToken string `json:"lock_token"`
	ClassID   string `json:"class_id"`
}

func (r bookMachineRequest) validate() error {
	if r.UserID == "" || r.LockToken == "" {
		return errors.New("user_id and lock_token are required")
	}
	return nil
}

type bookMachineResponse struct {
	ID        string    `json:"id"`
	MachineID int       `json:"machine_id"`
	UserID    string    `json:"user_id"`
	ClassID   string    `json:"class_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
