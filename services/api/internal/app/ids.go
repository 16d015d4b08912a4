package app

import "github.com/google/uuid"

func newID() string {
	return uuid.NewString()
}

// newLockToken mints the capability string for a lock. A v4 UUID gives
// 122 bits of randomness, which is the unguessability the token relies on.
func newLockToken() string {
	return uuid.NewString()
}
