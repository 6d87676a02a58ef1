package repository

import (
	"context"
	"time"

	"github.com/edumart/edumart/internal/domain/model"
)

// PurchaseRepository owns the purchase lifecycle records.
//
// Creation and terminal transitions are conditional writes: the store
// linearizes concurrent attempts so callers converge on a single winner.
type PurchaseRepository interface {
	// CreatePending inserts a pending purchase unless one already exists
	// for the (user, course) pair. Returns the stored row and whether it
	// was newly created; losers receive the winner's row.
	CreatePending(ctx context.Context, userID string, courseID, amount int64, sessionID string) (*model.Purchase, bool, error)
	GetPending(ctx context.Context, userID string, courseID int64) (*model.Purchase, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Purchase, error)
	HasCompleted(ctx context.Context, userID string, courseID int64) (bool, error)
	// Transition flips status from one state to another, succeeding only
	// when the current status matches. Returns whether the row moved.
	Transition(ctx context.Context, purchaseID int64, from, to model.PurchaseStatus) (bool, error)
	// SelectStalePending claims pending purchases older than the cutoff
	// for reconciliation, skipping rows locked by concurrent instances.
	SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error)
	SumCompletedByEducator(ctx context.Context, educatorID string) (int64, error)
	RecentEnrollmentsByEducator(ctx context.Context, educatorID string, limit int) ([]model.RecentEnrollment, error)
}
