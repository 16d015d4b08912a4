package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/gym-slots/services/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// FindLockByTokenForUpdate loads the lock row and locks it for the rest
// of the transaction, regardless of expiry; liveness is judged by the
// service against its own clock.
func (r *BookingRepository) FindLockByTokenForUpdate(ctx context.Context, machineID int, token string) (*domain.Lock, error) {
	const query = `
SELECT id, machine_id, user_id, lock_token, class_id, expires_at, created_at
FROM locks
WHERE machine_id = $1 AND lock_token = $2
FOR UPDATE`

	var l domain.Lock
	err := r.queryRow(ctx, query, machineID, token).
		Scan(&l.ID, &l.MachineID, &l.UserID, &l.Token, &l.ClassID, &l.ExpiresAt, &l.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find lock by token: %w", err)
	}
	return &l, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, machine_id, user_id, class_id, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.exec(ctx, stmt,
		booking.ID,
		booking.MachineID,
		booking.UserID,
		booking.ClassID,
		booking.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMachineBooked
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) DeleteLock(ctx context.Context, lockID string) error {
	const stmt = `DELETE FROM locks WHERE id = $1`

	if _, err := r.exec(ctx, stmt, lockID); err != nil {
		return fmt.Errorf("delete lock: %w", err)
	}
	return nil
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, machineID int, userID, classID string) (bool, error) {
	const stmt = `DELETE FROM bookings WHERE machine_id = $1 AND user_id = $2 AND class_id = $3`

	tag, err := r.exec(ctx, stmt, machineID, userID, classID)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
