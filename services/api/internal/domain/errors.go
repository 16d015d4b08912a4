package domain

import "errors"

var (
	ErrMachineNotFound      = errors.New("machine not found")
	ErrUserIDRequired       = errors.New("user_id required")
	ErrMachineLocked        = errors.New("machine is already locked")
	ErrMachineBooked        = errors.New("machine is already booked")
	ErrInvalidOrExpiredLock = errors.New("invalid or expired lock token")
	ErrLockNotFound         = errors.New("lock not found or already expired")
	ErrBookingNotFound      = errors.New("booking not found")
)
