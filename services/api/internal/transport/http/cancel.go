package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

// BookingCanceller is the minimal interface needed to cancel a booking.
type BookingCanceller interface {
	CancelBooking(ctx context.Context, machineID int, userID, classID string) error
}

// HandleCancelBooking returns an HTTP handler for POST /machines/{id}/cancel.
// Only the user recorded at booking time can cancel; anyone else sees 404.
func HandleCancelBooking(svc BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		machineID, action, ok := splitMachinePath(r.URL.Path)
		if !ok || action != "cancel" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req cancelBookingRequest
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

		if err := svc.CancelBooking(r.Context(), machineID, req.UserID, req.ClassID); err != nil {
			switch err {
			case domain.ErrBookingNotFound:
				writeError(w, http.StatusNotFound, codeBookingNotFound, err.Error())
			case domain.ErrUserIDRequired:
				writeError(w, http.StatusBadRequest, codeUserIDRequired, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type cancelBookingRequest struct {
	UserID  string `json:"user_id"`
	ClassID string `json:"class_id"`
}
