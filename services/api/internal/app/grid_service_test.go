package app

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/clock"
	"github.com/cimillas/gym-slots/services/api/internal/domain"
)

func TestGridService_ListMachines(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

	machines := []domain.Machine{
		{ID: 1, Row: 1, Column: 1, Name: "Machine 1"},
		{ID: 2, Row: 1, Column: 2, Name: "Machine 2"},
		{ID: 3, Row: 2, Column: 1, Name: "Machine 3"},
	}

	t.Run("derives status per machine", func(t *testing.T) {
		repo := newFakeGridRepo(machines)
		repo.bookings = append(repo.bookings, domain.Booking{ID: "b1", MachineID: 1, UserID: "u1"})
		repo.locks = append(repo.locks, domain.Lock{ID: "l1", MachineID: 2, UserID: "u2", Token: "t", ExpiresAt: now.Add(time.Minute)})
		svc := NewGridService(repo, clock.NewFixed(now))

		views, err := svc.ListMachines(context.Background(), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(views) != 3 {
			t.Fatalf("expected 3 machines, got %d", len(views))
		}
		if views[0].Status != domain.StatusBooked || views[0].BookedBy != "u1" {
			t.Fatalf("expected machine 1 booked by u1, got %+v", views[0])
		}
		if views[1].Status != domain.StatusLocked || views[1].LockedBy != "u2" {
			t.Fatalf("expected machine 2 locked by u2, got %+v", views[1])
		}
		if views[2].Status != domain.StatusAvailable {
			t.Fatalf("expected machine 3 available, got %+v", views[2])
		}
	})

	t.Run("expired lock reads as available with no intervening write", func(t *testing.T) {
		repo := newFakeGridRepo(machines)
		repo.locks = append(repo.locks, domain.Lock{ID: "l1", MachineID: 2, UserID: "u2", Token: "t", ExpiresAt: now.Add(120 * time.Second)})

		late := NewGridService(repo, clock.NewFixed(now.Add(121*time.Second)))
		views, err := late.ListMachines(context.Background(), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if views[1].Status != domain.StatusAvailable {
			t.Fatalf("expected machine 2 available after expiry, got %s", views[1].Status)
		}
		if len(repo.locks) != 0 {
			t.Fatalf("expected expired lock purged on read, got %d", len(repo.locks))
		}
	})

	t.Run("scope filters locks and bookings", func(t *testing.T) {
		repo := newFakeGridRepo(machines)
		repo.bookings = append(repo.bookings, domain.Booking{ID: "b1", MachineID: 1, UserID: "u1", ClassID: "yoga"})
		svc := NewGridService(repo, clock.NewFixed(now))

		views, err := svc.ListMachines(context.Background(), "spin")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if views[0].Status != domain.StatusAvailable {
			t.Fatalf("expected machine 1 available in other scope, got %s", views[0].Status)
		}

		views, err = svc.ListMachines(context.Background(), "yoga")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if views[0].Status != domain.StatusBooked {
			t.Fatalf("expected machine 1 booked in its scope, got %s", views[0].Status)
		}
	})

	t.Run("ordered by grid position", func(t *testing.T) {
		shuffled := []domain.Machine{machines[2], machines[0], machines[1]}
		repo := newFakeGridRepo(shuffled)
		svc := NewGridService(repo, clock.NewFixed(now))

		views, err := svc.ListMachines(context.Background(), "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for i, want := range []int{1, 2, 3} {
			if views[i].ID != want {
				t.Fatalf("expected machine %d at index %d, got %d", want, i, views[i].ID)
			}
		}
	})
}

type fakeGridRepo struct {
	machines []domain.Machine
	locks    []domain.Lock
	bookings []domain.Booking
}

func newFakeGridRepo(machines []domain.Machine) *fakeGridRepo {
	return &fakeGridRepo{machines: append([]domain.Machine{}, machines...)}
}

func (f *fakeGridRepo) PurgeExpiredLocks(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	kept := f.locks[:0]
	for _, l := range f.locks {
		if !l.Live(now) {
			purged++
			continue
		}
		kept = append(kept, l)
	}
	f.locks = kept
	return purged, nil
}

func (f *fakeGridRepo) ListMachines(_ context.Context, classID string, now time.Time) ([]domain.MachineView, error) {
	ordered := append([]domain.Machine{}, f.machines...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Row != ordered[j].Row {
			return ordered[i].Row < ordered[j].Row
		}
		return ordered[i].Column < ordered[j].Column
	})

	views := make([]domain.MachineView, 0, len(ordered))
	for _, m := range ordered {
		v := domain.MachineView{Machine: m, Status: domain.StatusAvailable}
		for _, b := range f.bookings {
			if b.MachineID == m.ID && b.ClassID == classID {
				v.Status = domain.StatusBooked
				v.BookedBy = b.UserID
			}
		}
		if v.Status == domain.StatusAvailable {
			for i := range f.locks {
				l := f.locks[i]
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
