package api

import "time"

type Machine struct {
	ID            int        `json:"id"`
	Row           int        `json:"row"`
	Column        int        `json:"column"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	LockedBy      string     `json:"locked_by,omitempty"`
	BookedBy      string     `json:"booked_by,omitempty"`
	LockExpiresAt *time.Time `json:"lock_expires_at,omitempty"`
}

type Lock struct {
	LockToken string    `json:"lock_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Booking struct {
	ID        string    `json:"id"`
	MachineID int       `json:"machine_id"`
	UserID    string    `json:"user_id"`
	ClassID   string    `json:"class_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type apiError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
