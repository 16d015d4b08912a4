package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/cimillas/gym-slots/services/api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GridRepository struct {
	pool *pgxpool.Pool
}

func NewGridRepository(pool *pgxpool.Pool) *GridRepository {
	return &GridRepository{pool: pool}
}

func (r *GridRepository) PurgeExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	const stmt = `DELETE FROM locks WHERE expires_at <= $1`

	tag, err := r.pool.Exec(ctx, stmt, now)
	if err != nil {
		return 0, fmt.Errorf("purge expired locks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListMachines returns every machine with its derived status for one
// class scope, ordered by grid position. The expiry filter on the lock
// join keeps a dead lock invisible even if it has not been purged yet.
func (r *GridRepository) ListMachines(ctx context.Context, classID string, now time.Time) ([]domain.MachineView, error) {
	const query = `
SELECT m.id, m.row_number, m.column_number, m.name,
       b.user_id, l.user_id, l.expires_at
FROM machines m
LEFT JOIN bookings b ON b.machine_id = m.id AND b.class_id = $1
LEFT JOIN locks l ON l.machine_id = m.id AND l.class_id = $1 AND l.expires_at > $2
ORDER BY m.row_number, m.column_number`

	rows, err := r.pool.Query(ctx, query, classID, now)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()

	var views []domain.MachineView
	for rows.Next() {
		var (
			v         domain.MachineView
			bookedBy  *string
			lockedBy  *string
			expiresAt *time.Time
		)
		if err := rows.Scan(&v.ID, &v.Row, &v.Column, &v.Name, &bookedBy, &lockedBy, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}

		switch {
		case bookedBy != nil:
			v.Status = domain.StatusBooked
			v.BookedBy = *bookedBy
		case lockedBy != nil:
			v.Status = domain.StatusLocked
			v.LockedBy = *lockedBy
			v.LockExpiresAt = expiresAt
		default:
			v.Status = domain.StatusAvailable
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	return views, nil
}
