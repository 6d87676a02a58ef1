package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
)

const purchaseColumns = `id, user_id, course_id, amount, status, COALESCE(session_id, ''), created_at, updated_at`

func scanPurchase(row pgx.Row) (*model.Purchase, error) {
	var p model.Purchase
	err := row.Scan(&p.ID, &p.UserID, &p.CourseID, &p.Amount, &p.Status, &p.SessionID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepository) CreatePending(ctx context.Context, userID string, courseID, amount int64, sessionID string) (*model.Purchase, bool, error) {
	// The partial unique index on (user_id, course_id) WHERE status='pending'
	// linearizes concurrent initiations: losers fall through to the
	// winner's row instead of creating a second session record.
	const query = `INSERT INTO purchases (user_id, course_id, amount, status, session_id)
                   VALUES ($1, $2, $3, 'pending', $4)
                   ON CONFLICT (user_id, course_id) WHERE status = 'pending' DO NOTHING
                   RETURNING id, created_at, updated_at`
	p := model.Purchase{
		UserID:    userID,
		CourseID:  courseID,
		Amount:    amount,
		Status:    model.PurchaseStatusPending,
		SessionID: sessionID,
	}
	err := r.storage.pool.QueryRow(ctx, query, userID, courseID, amount, sessionID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.GetPending(ctx, userID, courseID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &p, true, nil
}

func (r *purchaseRepository) GetPending(ctx context.Context, userID string, courseID int64) (*model.Purchase, error) {
	const query = `SELECT ` + purchaseColumns + ` FROM purchases
                   WHERE user_id=$1 AND course_id=$2 AND status='pending'`
	purchase, err := scanPurchase(r.storage.pool.QueryRow(ctx, query, userID, courseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return purchase, nil
}

func (r *purchaseRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Purchase, error) {
	const query = `SELECT ` + purchaseColumns + ` FROM purchases WHERE session_id=$1`
	purchase, err := scanPurchase(r.storage.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return purchase, nil
}

func (r *purchaseRepository) HasCompleted(ctx context.Context, userID string, courseID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM purchases WHERE user_id=$1 AND course_id=$2 AND status='completed')`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *purchaseRepository) Transition(ctx context.Context, purchaseID int64, from, to model.PurchaseStatus) (bool, error) {
	// Conditional update: only the first writer observing the expected
	// status moves the row, duplicate webhook deliveries affect zero rows.
	const query = `UPDATE purchases SET status=$3, updated_at=NOW() WHERE id=$1 AND status=$2`
	tag, err := r.storage.pool.Exec(ctx, query, purchaseID, from, to)
	if err != nil {
		// The partial unique index on completed purchases rejects a second
		// row reaching 'completed' for the same (user, course).
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, domainErrors.ErrAlreadyExists
		}
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *purchaseRepository) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	const query = `SELECT ` + purchaseColumns + ` FROM purchases
                   WHERE status='pending' AND created_at < $1
                   ORDER BY created_at
                   LIMIT $2
                   FOR UPDATE SKIP LOCKED`

	cutoff := time.Now().Add(-olderThan)
	var purchases []model.Purchase
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, cutoff, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanPurchase(rows)
			if err != nil {
				return err
			}
			purchases = append(purchases, *p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepository) SumCompletedByEducator(ctx context.Context, educatorID string) (int64, error) {
	const query = `SELECT COALESCE(SUM(p.amount), 0)
                   FROM purchases p
                   JOIN courses c ON c.id = p.course_id
                   WHERE c.educator_id=$1 AND p.status='completed'`
	var sum int64
	if err := r.storage.pool.QueryRow(ctx, query, educatorID).Scan(&sum); err != nil {
		return 0, err
	}
	return sum, nil
}

func (r *purchaseRepository) RecentEnrollmentsByEducator(ctx context.Context, educatorID string, limit int) ([]model.RecentEnrollment, error) {
	const query = `SELECT u.id, u.name, c.title, p.updated_at
                   FROM purchases p
                   JOIN courses c ON c.id = p.course_id
                   JOIN users u ON u.id = p.user_id
                   WHERE c.educator_id=$1 AND p.status='completed'
                   ORDER BY p.updated_at DESC
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, educatorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RecentEnrollment
	for rows.Next() {
		var e model.RecentEnrollment
		if err := rows.Scan(&e.StudentID, &e.StudentName, &e.CourseTitle, &e.EnrolledAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
