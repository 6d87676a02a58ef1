package repository

import (
	"context"

	"github.com/edumart/edumart/internal/domain/model"
)

// EnrollmentRepository maintains the user-course enrollment set.
type EnrollmentRepository interface {
	// Enroll adds the link if absent. Calling it twice for the same pair
	// has the same effect as once.
	Enroll(ctx context.Context, userID string, courseID int64) error
	IsEnrolled(ctx context.Context, userID string, courseID int64) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.EnrolledCourse, error)
	// UpdateProgress fails with ErrNotEnrolled when the pair is absent.
	UpdateProgress(ctx context.Context, userID string, courseID int64, progress int) error
	GetProgress(ctx context.Context, userID string, courseID int64) (int, error)
	CountByEducator(ctx context.Context, educatorID string) (int64, error)
}
