package app

import (
	"context"

	"github.com/cimillas/gym-slots/services/api/internal/clock"
	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	FindLockByTokenForUpdate(ctx context.Context, machineID int, token string) (*domain.Lock, error)
	CreateBooking(ctx context.Context, booking domain.Booking) error
	DeleteLock(ctx context.Context, lockID string) error
	DeleteBooking(ctx context.Context, machineID int, userID, classID string) (bool, error)
}

// BookingService implements the durable side of the state machine:
// promoting a live lock into a booking and cancelling a booking.
type BookingService struct {
	repo  BookingRepository
	clock clock.Clock
}

func NewBookingService(repo BookingRepository, clk clock.Clock) *BookingService {
	return &BookingService{
		repo:  repo,
		clock: clk,
	}
}

type ConfirmBookingInput struct {
	MachineID int
	UserID    string
	Token     string
	ClassID   string
}

// ConfirmBooking verifies the presented lock, writes the booking, and
// deletes the lock in one transaction. The lock row is taken FOR UPDATE,
// so a racing confirm or purge cannot interleave and leave two bookings
// or a booking with a surviving lock.
func (s *BookingService) ConfirmBooking(ctx context.Context, in ConfirmBookingInput) (domain.Booking, error) {
	if in.UserID == "" {
		return domain.Booking{}, domain.ErrUserIDRequired
	}
	if in.Token == "" {
		return domain.Booking{}, domain.ErrInvalidOrExpiredLock
	}

	now := s.clock.Now()
	var result domain.Booking

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		lock, err := s.repo.FindLockByTokenForUpdate(txCtx, in.MachineID, in.Token)
		if err != nil {
			return err
		}
		if lock == nil || lock.UserID != in.UserID || lock.ClassID != in.ClassID || !lock.Live(now) {
			return domain.ErrInvalidOrExpiredLock
		}

		booking := domain.Booking{
			ID:        newID(),
			MachineID: in.MachineID,
			UserID:    in.UserID,
			ClassID:   in.ClassID,
			CreatedAt: now,
		}
		if err := s.repo.CreateBooking(txCtx, booking); err != nil {
			return err
		}
		if err := s.repo.DeleteLock(txCtx, lock.ID); err != nil {
			return err
		}

		result = booking
		return nil
	})
	if err != nil {
		return domain.Booking{}, err
	}
	return result, nil
}

// CancelBooking deletes the booking matching machine, user, and class.
// Requiring the user recorded at confirm time doubles as the
// authorization check: anyone else gets ErrBookingNotFound.
func (s *BookingService) CancelBooking(ctx context.Context, machineID int, userID, classID string) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}
	deleted, err := s.repo.DeleteBooking(ctx, machineID, userID, classID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrBookingNotFound
	}
	return nil
}
