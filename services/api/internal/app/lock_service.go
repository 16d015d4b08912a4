package app

import (
	"context"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/clock"
	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

type LockRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetMachine(ctx context.Context, machineID int) (domain.Machine, error)
	DeleteExpiredLocks(ctx context.Context, machineID int, classID string, now time.Time) error
	FindBooking(ctx context.Context, machineID int, classID string) (*domain.Booking, error)
	FindLiveLock(ctx context.Context, machineID int, classID string, now time.Time) (*domain.Lock, error)
	CreateLock(ctx context.Context, lock domain.Lock) error
	DeleteLockByToken(ctx context.Context, machineID int, token string) (bool, error)
}

// LockService implements the provisional side of the state machine:
// acquiring a time-bounded lock on a machine and releasing it before
// confirmation.
type LockService struct {
	repo    LockRepository
	clock   clock.Clock
	lockTTL time.Duration
}

const defaultLockTTL = 2 * time.Minute

func NewLockService(repo LockRepository, clk clock.Clock, opts ...LockServiceOption) *LockService {
	svc := &LockService{
		repo:    repo,
		clock:   clk,
		lockTTL: defaultLockTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type LockServiceOption func(*LockService)

// WithLockTTL overrides the default lifetime of new locks.
func WithLockTTL(d time.Duration) LockServiceOption {
	return func(s *LockService) {
		if d > 0 {
			s.lockTTL = d
		}
	}
}

type AcquireLockInput struct {
	MachineID int
	UserID    string
	ClassID   string
}

// AcquireLock claims a machine for the caller within one class scope.
// The whole check-then-act sequence runs in a single transaction, so of
// any set of concurrent acquires on the same (machine, class) pair
// exactly one wins; the rest observe the fresh lock or booking and fail.
func (s *LockService) AcquireLock(ctx context.Context, in AcquireLockInput) (domain.Lock, error) {
	if in.UserID == "" {
		return domain.Lock{}, domain.ErrUserIDRequired
	}

	now := s.clock.Now()
	var result domain.Lock

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetMachine(txCtx, in.MachineID); err != nil {
			return err
		}

		// A dead lock row would trip the (machine_id, class_id) unique
		// constraint, so clear it before checking the pair.
		if err := s.repo.DeleteExpiredLocks(txCtx, in.MachineID, in.ClassID, now); err != nil {
			return err
		}

		booking, err := s.repo.FindBooking(txCtx, in.MachineID, in.ClassID)
		if err != nil {
			return err
		}
		if booking != nil {
			return domain.ErrMachineBooked
		}

		lock, err := s.repo.FindLiveLock(txCtx, in.MachineID, in.ClassID, now)
		if err != nil {
			return err
		}
		if lock != nil {
			return domain.ErrMachineLocked
		}

		fresh := domain.Lock{
			ID:        newID(),
			MachineID: in.MachineID,
			UserID:    in.UserID,
			Token:     newLockToken(),
			ClassID:   in.ClassID,
			ExpiresAt: now.Add(s.lockTTL),
			CreatedAt: now,
		}
		if err := s.repo.CreateLock(txCtx, fresh); err != nil {
			return err
		}

		result = fresh
		return nil
	})
	if err != nil {
		return domain.Lock{}, err
	}
	return result, nil
}

// ReleaseLock deletes the lock matching the machine and token, expired or
// not. The token alone is the capability; no user check is performed. A
// lock already consumed by a confirm is gone, so the caller cannot tell
// "expired", "confirmed", and "never existed" apart.
func (s *LockService) ReleaseLock(ctx context.Context, machineID int, token string) error {
	if token == "" {
		return domain.ErrLockNotFound
	}
	deleted, err := s.repo.DeleteLockByToken(ctx, machineID, token)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrLockNotFound
	}
	return nil
}
