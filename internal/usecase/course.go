package usecase

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/domain/repository"
)

const recentEnrollmentsLimit = 5

// CourseUseCase covers the public catalog and educator operations.
type CourseUseCase struct {
	courses     repository.CourseRepository
	purchases   repository.PurchaseRepository
	enrollments repository.EnrollmentRepository
}

// NewCourseUseCase constructs CourseUseCase.
func NewCourseUseCase(
	courses repository.CourseRepository,
	purchases repository.PurchaseRepository,
	enrollments repository.EnrollmentRepository,
) *CourseUseCase {
	return &CourseUseCase{courses: courses, purchases: purchases, enrollments: enrollments}
}

// Create publishes a new course for the educator.
func (u *CourseUseCase) Create(ctx context.Context, course model.Course) (*model.Course, error) {
	if strings.TrimSpace(course.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domainErrors.ErrValidation)
	}
	if course.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", domainErrors.ErrValidation)
	}
	return u.courses.Create(ctx, course)
}

// Get returns a single catalog entry.
func (u *CourseUseCase) Get(ctx context.Context, id int64) (*model.Course, error) {
	return u.courses.GetByID(ctx, id)
}

// List returns the full public catalog.
func (u *CourseUseCase) List(ctx context.Context) ([]model.Course, error) {
	return u.courses.List(ctx)
}

// ListByEducator returns courses published by the educator.
func (u *CourseUseCase) ListByEducator(ctx context.Context, educatorID string) ([]model.Course, error) {
	return u.courses.ListByEducator(ctx, educatorID)
}

// Rate records a review. Only users who completed a purchase of the
// course may review it, and only once.
func (u *CourseUseCase) Rate(ctx context.Context, rating model.Rating) error {
	if rating.Rating < 1 || rating.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domainErrors.ErrValidation)
	}
	completed, err := u.purchases.HasCompleted(ctx, rating.UserID, rating.CourseID)
	if err != nil {
		return err
	}
	if !completed {
		return domainErrors.ErrNotEnrolled
	}
	return u.courses.AddRating(ctx, rating)
}

// Dashboard aggregates catalog performance for the educator.
func (u *CourseUseCase) Dashboard(ctx context.Context, educatorID string) (*model.EducatorDashboard, error) {
	courses, err := u.courses.ListByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}
	students, err := u.enrollments.CountByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}
	earnings, err := u.purchases.SumCompletedByEducator(ctx, educatorID)
	if err != nil {
		return nil, err
	}
	recent, err := u.purchases.RecentEnrollmentsByEducator(ctx, educatorID, recentEnrollmentsLimit)
	if err != nil {
		return nil, err
	}
	return &model.EducatorDashboard{
		TotalCourses:      int64(len(courses)),
		TotalStudents:     students,
		TotalEarnings:     earnings,
		RecentEnrollments: recent,
	}, nil
}
