package domain

import "time"

// Booking is a confirmed claim on one machine by one user within one
// class scope. It is created only by confirming a live lock and removed
// only by an explicit cancel from the same user.
type Booking struct {
	ID        string
	MachineID int
	UserID    string
	ClassID   string
	CreatedAt time.Time
}
