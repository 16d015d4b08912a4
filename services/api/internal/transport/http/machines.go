package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

// MachineLister is the minimal interface needed to list machine state.
type MachineLister interface {
	ListMachines(ctx context.Context, classID string) ([]domain.MachineView, error)
}

// HandleListMachines returns an HTTP handler for the grid view.
func HandleListMachines(svc MachineLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		views, err := svc.ListMachines(r.Context(), r.URL.Query().Get("class_id"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := make([]machineResponse, 0, len(views))
		for _, v := range views {
			resp = append(resp, machineResponse{
				ID:            v.ID,
				Row:           v.Row,
				Column:        v.Column,
				Name:          v.Name,
				Status:        string(v.Status),
				LockedBy:      v.LockedBy,
				BookedBy:      v.BookedBy,
				LockExpiresAt: v.LockExpiresAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type machineResponse struct {
	ID            int        `json:"id"`
	Row           int        `json:"row"`
	Column        int        `json:"column"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	LockedBy      string     `json:"locked_by,omitempty"`
	BookedBy      string     `json:"booked_by,omitempty"`
	LockExpiresAt *time.Time `json:"lock_expires_at,omitempty"`
}

// splitMachinePath parses "/machines/{id}/{action}" paths.
func splitMachinePath(path string) (machineID int, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "machines" {
		return 0, "", false
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil || id <= 0 {
		return 0, "", false
	}
	return id, parts[2], true
}
