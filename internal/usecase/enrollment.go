package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/domain/repository"
)

// EnrollmentUseCase maintains course access and learning progress.
type EnrollmentUseCase struct {
	enrollments repository.EnrollmentRepository
}

// NewEnrollmentUseCase constructs EnrollmentUseCase.
func NewEnrollmentUseCase(enrollments repository.EnrollmentRepository) *EnrollmentUseCase {
	return &EnrollmentUseCase{enrollments: enrollments}
}

// Enroll grants course access. Repeated calls are no-ops.
func (u *EnrollmentUseCase) Enroll(ctx context.Context, userID string, courseID int64) error {
	return u.enrollments.Enroll(ctx, userID, courseID)
}

// IsEnrolled reports whether the user has access to the course.
func (u *EnrollmentUseCase) IsEnrolled(ctx context.Context, userID string, courseID int64) (bool, error) {
	return u.enrollments.IsEnrolled(ctx, userID, courseID)
}

// Courses returns the user's enrolled courses with progress.
func (u *EnrollmentUseCase) Courses(ctx context.Context, userID string) ([]model.EnrolledCourse, error) {
	return u.enrollments.ListByUser(ctx, userID)
}

// UpdateProgress stores completion percentage for an enrolled course.
func (u *EnrollmentUseCase) UpdateProgress(ctx context.Context, userID string, courseID int64, progress int) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("%w: progress must be between 0 and 100", domainErrors.ErrValidation)
	}
	return u.enrollments.UpdateProgress(ctx, userID, courseID, progress)
}

// Progress returns stored completion percentage.
func (u *EnrollmentUseCase) Progress(ctx context.Context, userID string, courseID int64) (int, error) {
	return u.enrollments.GetProgress(ctx, userID, courseID)
}
