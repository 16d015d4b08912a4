package app

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/clock"
	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

// fakeStore backs all three services with one shared state, so whole
// lifecycles can be exercised the way they run against Postgres.
type fakeStore struct {
	machines *fakeLockRepo
}

func newFakeStore(machines []domain.Machine) *fakeStore {
	return &fakeStore{machines: newFakeLockRepo(machines)}
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *fakeStore) GetMachine(ctx context.Context, machineID int) (domain.Machine, error) {
	return s.machines.GetMachine(ctx, machineID)
}

func (s *fakeStore) DeleteExpiredLocks(ctx context.Context, machineID int, classID string, now time.Time) error {
	return s.machines.DeleteExpiredLocks(ctx, machineID, classID, now)
}

func (s *fakeStore) FindBooking(ctx context.Context, machineID int, classID string) (*domain.Booking, error) {
	return s.machines.FindBooking(ctx, machineID, classID)
}

func (s *fakeStore) FindLiveLock(ctx context.Context, machineID int, classID string, now time.Time) (*domain.Lock, error) {
	return s.machines.FindLiveLock(ctx, machineID, classID, now)
}

func (s *fakeStore) CreateLock(ctx context.Context, lock domain.Lock) error {
	return s.machines.CreateLock(ctx, lock)
}

func (s *fakeStore) DeleteLockByToken(ctx context.Context, machineID int, token string) (bool, error) {
	return s.machines.DeleteLockByToken(ctx, machineID, token)
}

func (s *fakeStore) FindLockByTokenForUpdate(_ context.Context, machineID int, token string) (*domain.Lock, error) {
	for i := range s.machines.locks {
		l := s.machines.locks[i]
		if l.MachineID == machineID && l.Token == token {
			return &l, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateBooking(_ context.Context, booking domain.Booking) error {
	for _, b := range s.machines.bookings {
		if b.MachineID == booking.MachineID && b.ClassID == booking.ClassID {
			return domain.ErrMachineBooked
		}
	}
	s.machines.bookings = append(s.machines.bookings, booking)
	return nil
}

func (s *fakeStore) DeleteLock(_ context.Context, lockID string) error {
	for i, l := range s.machines.locks {
		if l.ID == lockID {
			s.machines.locks = append(s.machines.locks[:i], s.machines.locks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeStore) DeleteBooking(_ context.Context, machineID int, userID, classID string) (bool, error) {
	for i, b := range s.machines.bookings {
		if b.MachineID == machineID && b.UserID == userID && b.ClassID == classID {
			s.machines.bookings = append(s.machines.bookings[:i], s.machines.bookings[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) PurgeExpiredLocks(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	kept := s.machines.locks[:0]
	for _, l := range s.machines.locks {
		if !l.Live(now) {
			purged++
			continue
		}
		kept = append(kept, l)
	}
	s.machines.locks = kept
	return purged, nil
}

func (s *fakeStore) ListMachines(_ context.Context, classID string, now time.Time) ([]domain.MachineView, error) {
	var ordered []domain.Machine
	for _, m := range s.machines.machines {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Row != ordered[j].Row {
			return ordered[i].Row < ordered[j].Row
		}
		return ordered[i].Column < ordered[j].Column
	})

	views := make([]domain.MachineView, 0, len(ordered))
	for _, m := range ordered {
		v := domain.MachineView{Machine: m, Status: domain.StatusAvailable}
		for _, b := range s.machines.bookings {
			if b.MachineID == m.ID && b.ClassID == classID {
				v.Status = domain.StatusBooked
				v.BookedBy = b.UserID
			}
		}
		if v.Status == domain.StatusAvailable {
			for i := range s.machines.locks {
				l := s.machines.locks[i]
				if l.MachineID == m.ID && l.ClassID == classID && l.Live(now) {
					v.Status = domain.StatusLocked
					v.LockedBy = l.UserID
					v.LockExpiresAt = &l.ExpiresAt
				}
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func TestBookingLifecycle(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 7, 0, 0, 0, time.UTC)
	ctx := context.Background()

	store := newFakeStore([]domain.Machine{{ID: 1, Row: 1, Column: 1, Name: "Machine 1"}})
	lockSvc := NewLockService(store, clock.NewFixed(now))
	bookingSvc := NewBookingService(store, clock.NewFixed(now))
	gridSvc := NewGridService(store, clock.NewFixed(now))

	status := func() domain.MachineView {
		views, err := gridSvc.ListMachines(ctx, "")
		if err != nil {
			t.Fatalf("list machines: %v", err)
		}
		return views[0]
	}

	lock, err := lockSvc.AcquireLock(ctx, AcquireLockInput{MachineID: 1, UserID: "u1"})
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if v := status(); v.Status != domain.StatusLocked || v.LockedBy != "u1" {
		t.Fatalf("expected locked by u1, got %+v", v)
	}

	if _, err := lockSvc.AcquireLock(ctx, AcquireLockInput{MachineID: 1, UserID: "u2"}); err != domain.ErrMachineLocked {
		t.Fatalf("expected ErrMachineLocked for u2, got %v", err)
	}

	if _, err := bookingSvc.ConfirmBooking(ctx, ConfirmBookingInput{MachineID: 1, UserID: "u1", Token: lock.Token}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if v := status(); v.Status != domain.StatusBooked || v.BookedBy != "u1" {
		t.Fatalf("expected booked by u1, got %+v", v)
	}

	// The consumed token opens nothing anymore, for confirm or release.
	if _, err := bookingSvc.ConfirmBooking(ctx, ConfirmBookingInput{MachineID: 1, UserID: "u1", Token: lock.Token}); err != domain.ErrInvalidOrExpiredLock {
		t.Fatalf("expected ErrInvalidOrExpiredLock on token reuse, got %v", err)
	}
	if err := lockSvc.ReleaseLock(ctx, 1, lock.Token); err != domain.ErrLockNotFound {
		t.Fatalf("expected ErrLockNotFound on consumed token, got %v", err)
	}

	if _, err := lockSvc.AcquireLock(ctx, AcquireLockInput{MachineID: 1, UserID: "u2"}); err != domain.ErrMachineBooked {
		t.Fatalf("expected ErrMachineBooked for u2, got %v", err)
	}

	if err := bookingSvc.CancelBooking(ctx, 1, "u1", ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if v := status(); v.Status != domain.StatusAvailable {
		t.Fatalf("expected available after cancel, got %+v", v)
	}

	if _, err := lockSvc.AcquireLock(ctx, AcquireLockInput{MachineID: 1, UserID: "u2"}); err != nil {
		t.Fatalf("expected u2 to acquire after cancel, got %v", err)
	}
}

func TestBookingLifecycle_Expiry(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2025, 3, 4, 7, 0, 0, 0, time.UTC)
	t1 := t0.Add(121 * time.Second)
	ctx := context.Background()

	store := newFakeStore([]domain.Machine{{ID: 2, Row: 1, Column: 2, Name: "Machine 2"}})
	early := NewLockService(store, clock.NewFixed(t0))
	late := NewLockService(store, clock.NewFixed(t1))
	confirmLate := NewBookingService(store, clock.NewFixed(t1))

	first, err := early.AcquireLock(ctx, AcquireLockInput{MachineID: 2, UserID: "u1"})
	if err != nil {
		t.Fatalf("acquire at t0: %v", err)
	}

	// 121s later the first lock is dead; a new acquire wins without any
	// write having happened in between.
	second, err := late.AcquireLock(ctx, AcquireLockInput{MachineID: 2, UserID: "u2"})
	if err != nil {
		t.Fatalf("acquire at t1: %v", err)
	}
	if second.Token == first.Token {
		t.Fatalf("expected a fresh token after expiry")
	}

	if _, err := confirmLate.ConfirmBooking(ctx, ConfirmBookingInput{MachineID: 2, UserID: "u1", Token: first.Token}); err != domain.ErrInvalidOrExpiredLock {
		t.Fatalf("expected ErrInvalidOrExpiredLock for stale token, got %v", err)
	}
	if _, err := confirmLate.ConfirmBooking(ctx, ConfirmBookingInput{MachineID: 2, UserID: "u2", Token: second.Token}); err != nil {
		t.Fatalf("expected fresh token to confirm, got %v", err)
	}
}
