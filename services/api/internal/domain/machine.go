package domain

import "time"

// Machine is one bookable unit on the gym floor. The pool is fixed at
// setup time; rows and columns only describe where the machine sits.
type Machine struct {
	ID     int
	Row    int
	Column int
	Name   string
}

type MachineStatus string

const (
	StatusAvailable MachineStatus = "available"
	StatusLocked    MachineStatus = "locked"
	StatusBooked    MachineStatus = "booked"
)

// MachineView is a machine annotated with its derived status within one
// class scope. Status is computed, never stored: booked wins over locked,
// and an expired lock counts as absent.
type MachineView struct {
	Machine
	Status        MachineStatus
	LockedBy      string
	BookedBy      string
	LockExpiresAt *time.Time
}
