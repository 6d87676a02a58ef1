package handlers

import (
	"context"

	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/usecase"
)

// UserFacade describes account capabilities required by handlers.
type UserFacade interface {
	EnsureUser(ctx context.Context, user model.User) (*model.User, error)
	ApplyUserCreated(ctx context.Context, user model.User) error
	ApplyUserUpdated(ctx context.Context, user model.User) error
	Educators(ctx context.Context) ([]model.User, error)
}

// CourseFacade encapsulates catalog operations exposed via HTTP.
type CourseFacade interface {
	CreateCourse(ctx context.Context, course model.Course) (*model.Course, error)
	Course(ctx context.Context, id int64) (*model.Course, error)
	Courses(ctx context.Context) ([]model.Course, error)
	EducatorCourses(ctx context.Context, educatorID string) ([]model.Course, error)
	EducatorDashboard(ctx context.Context, educatorID string) (*model.EducatorDashboard, error)
	RateCourse(ctx context.Context, rating model.Rating) error
}

// EnrollmentFacade provides enrollment and progress operations.
type EnrollmentFacade interface {
	EnrolledCourses(ctx context.Context, userID string) ([]model.EnrolledCourse, error)
	UpdateProgress(ctx context.Context, userID string, courseID int64, progress int) error
	Progress(ctx context.Context, userID string, courseID int64) (int, error)
}

// PurchaseFacade provides checkout and settlement operations.
type PurchaseFacade interface {
	InitiateCheckout(ctx context.Context, userID string, courseID int64) (*model.CheckoutIntent, error)
	ConfirmPayment(ctx context.Context, sessionID string, outcome usecase.Outcome) error
}

// PlatformFacade aggregates the full set of operations used across handlers.
type PlatformFacade interface {
	UserFacade
	CourseFacade
	EnrollmentFacade
	PurchaseFacade
}
