package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LockRepository struct {
	pool *pgxpool.Pool
}

func NewLockRepository(pool *pgxpool.Pool) *LockRepository {
	return &LockRepository{pool: pool}
}

func (r *LockRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *LockRepository) GetMachine(ctx context.Context, machineID int) (domain.Machine, error) {
	const query = `SELECT id, row_number, column_number, name FROM machines WHERE id = $1`

	var m domain.Machine
	err := r.queryRow(ctx, query, machineID).Scan(&m.ID, &m.Row, &m.Column, &m.Name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Machine{}, domain.ErrMachineNotFound
		}
		return domain.Machine{}, fmt.Errorf("get machine: %w", err)
	}
	return m, nil
}

func (r *LockRepository) DeleteExpiredLocks(ctx context.Context, machineID int, classID string, now time.Time) error {
	const stmt = `DELETE FROM locks WHERE machine_id = $1 AND class_id = $2 AND expires_at <= $3`

	if _, err := r.exec(ctx, stmt, machineID, classID, now); err != nil {
		return fmt.Errorf("delete expired locks: %w", err)
	}
	return nil
}

func (r *LockRepository) FindBooking(ctx context.Context, machineID int, classID string) (*domain.Booking, error) {
	const query = `
SELECT id, machine_id, user_id, class_id, created_at
FROM bookings
WHERE machine_id = $1 AND class_id = $2`

	var b domain.Booking
	err := r.queryRow(ctx, query, machineID, classID).
		Scan(&b.ID, &b.MachineID, &b.UserID, &b.ClassID, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &b, nil
}

func (r *LockRepository) FindLiveLock(ctx context.Context, machineID int, classID string, now time.Time) (*domain.Lock, error) {
	const query = `
SELECT id, machine_id, user_id, lock_token, class_id, expires_at, created_at
FROM locks
WHERE machine_id = $1 AND class_id = $2 AND expires_at > $3`

	var l domain.Lock
	err := r.queryRow(ctx, query, machineID, classID, now).
		Scan(&l.ID, &l.MachineID, &l.UserID, &l.Token, &l.ClassID, &l.ExpiresAt, &l.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find live lock: %w", err)
	}
	return &l, nil
}

func (r *LockRepository) CreateLock(ctx context.Context, lock domain.Lock) error {
	const stmt = `
INSERT INTO locks (id, machine_id, user_id, lock_token, class_id, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		lock.ID,
		lock.MachineID,
		lock.UserID,
		lock.Token,
		lock.ClassID,
		lock.ExpiresAt,
		lock.CreatedAt,
	)
	if err != nil {
		// The (machine_id, class_id) unique constraint backstops the
		// in-transaction check when two acquires race.
		if isUniqueViolation(err) {
			return domain.ErrMachineLocked
		}
		return fmt.Errorf("create lock: %w", err)
	}
	return nil
}

func (r *LockRepository) DeleteLockByToken(ctx context.Context, machineID int, token string) (bool, error) {
	const stmt = `DELETE FROM locks WHERE machine_id = $1 AND lock_token = $2`

	tag, err := r.exec(ctx, stmt, machineID, token)
	if err != nil {
		return false, fmt.Errorf("delete lock by token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *LockRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LockRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
