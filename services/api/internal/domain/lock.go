package domain

import "time"

// Lock is a short-lived exclusive claim on one machine by one user,
// pending confirmation. The token is the capability to confirm or
// release it. At most one live lock may exist per (machine, class) pair.
type Lock struct {
	ID        string
	MachineID int
	UserID    string
	Token     string
	ClassID   string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Live reports whether the lock is still alive at the given instant.
// A lock whose expiry has passed is dead even if its row still exists.
func (l Lock) Live(now time.Time) bool {
	return l.ExpiresAt.After(now)
}
