package model

import "time"

// PurchaseStatus describes purchase lifecycle state.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusFailed    PurchaseStatus = "failed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

// Terminal reports whether no further automatic transition may occur.
func (s PurchaseStatus) Terminal() bool {
	return s != PurchaseStatusPending
}

// Purchase links a user to a course through a checkout session.
// Amount snapshots the course price at initiation time in minor units.
type Purchase struct {
	ID        int64
	UserID    string
	CourseID  int64
	Amount    int64
	Status    PurchaseStatus
	SessionID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
