package test

import (
	"context"
	"time"

	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/usecase"
)

// PlatformFacadeStub aggregates facade dependencies for HTTP layer and
// worker tests. Unset overrides fall back to benign defaults.
type PlatformFacadeStub struct {
	EnsureUserFn        func(context.Context, model.User) (*model.User, error)
	ApplyUserCreatedFn  func(context.Context, model.User) error
	ApplyUserUpdatedFn  func(context.Context, model.User) error
	EducatorsFn         func(context.Context) ([]model.User, error)
	CreateCourseFn      func(context.Context, model.Course) (*model.Course, error)
	CourseFn            func(context.Context, int64) (*model.Course, error)
	CoursesFn           func(context.Context) ([]model.Course, error)
	EducatorCoursesFn   func(context.Context, string) ([]model.Course, error)
	EducatorDashboardFn func(context.Context, string) (*model.EducatorDashboard, error)
	RateCourseFn        func(context.Context, model.Rating) error
	EnrolledCoursesFn   func(context.Context, string) ([]model.EnrolledCourse, error)
	UpdateProgressFn    func(context.Context, string, int64, int) error
	ProgressFn          func(context.Context, string, int64) (int, error)
	InitiateCheckoutFn  func(context.Context, string, int64) (*model.CheckoutIntent, error)
	ConfirmPaymentFn    func(context.Context, string, usecase.Outcome) error
	StalePurchasesFn    func(context.Context, time.Duration, int) ([]model.Purchase, error)
	SessionByIDFn       func(context.Context, string) (*model.CheckoutSession, error)
}

func (s *PlatformFacadeStub) EnsureUser(ctx context.Context, user model.User) (*model.User, error) {
	if s.EnsureUserFn != nil {
		return s.EnsureUserFn(ctx, user)
	}
	return &user, nil
}

func (s *PlatformFacadeStub) ApplyUserCreated(ctx context.Context, user model.User) error {
	if s.ApplyUserCreatedFn != nil {
		return s.ApplyUserCreatedFn(ctx, user)
	}
	return nil
}

func (s *PlatformFacadeStub) ApplyUserUpdated(ctx context.Context, user model.User) error {
	if s.ApplyUserUpdatedFn != nil {
		return s.ApplyUserUpdatedFn(ctx, user)
	}
	return nil
}

func (s *PlatformFacadeStub) Educators(ctx context.Context) ([]model.User, error) {
	if s.EducatorsFn != nil {
		return s.EducatorsFn(ctx)
	}
	return nil, nil
}

func (s *PlatformFacadeStub) CreateCourse(ctx context.Context, course model.Course) (*model.Course, error) {
	if s.CreateCourseFn != nil {
		return s.CreateCourseFn(ctx, course)
	}
	return &course, nil
}

func (s *PlatformFacadeStub) Course(ctx context.Context, id int64) (*model.Course, error) {
	if s.CourseFn != nil {
		return s.CourseFn(ctx, id)
	}
	return &model.Course{ID: id}, nil
}

func (s *PlatformFacadeStub) Courses(ctx context.Context) ([]model.Course, error) {
	if s.CoursesFn != nil {
		return s.CoursesFn(ctx)
	}
	return nil, nil
}

func (s *PlatformFacadeStub) EducatorCourses(ctx context.Context, educatorID string) ([]model.Course, error) {
	if s.EducatorCoursesFn != nil {
		return s.EducatorCoursesFn(ctx, educatorID)
	}
	return nil, nil
}

func (s *PlatformFacadeStub) EducatorDashboard(ctx context.Context, educatorID string) (*model.EducatorDashboard, error) {
	if s.EducatorDashboardFn != nil {
		return s.EducatorDashboardFn(ctx, educatorID)
	}
	return &model.EducatorDashboard{}, nil
}

func (s *PlatformFacadeStub) RateCourse(ctx context.Context, rating model.Rating) error {
	if s.RateCourseFn != nil {
		return s.RateCourseFn(ctx, rating)
	}
	return nil
}

func (s *PlatformFacadeStub) EnrolledCourses(ctx context.Context, userID string) ([]model.EnrolledCourse, error) {
	if s.EnrolledCoursesFn != nil {
		return s.EnrolledCoursesFn(ctx, userID)
	}
	return nil, nil
}

func (s *PlatformFacadeStub) UpdateProgress(ctx context.Context, userID string, courseID int64, progress int) error {
	if s.UpdateProgressFn != nil {
		return s.UpdateProgressFn(ctx, userID, courseID, progress)
	}
	return nil
}

func (s *PlatformFacadeStub) Progress(ctx context.Context, userID string, courseID int64) (int, error) {
	if s.ProgressFn != nil {
		return s.ProgressFn(ctx, userID, courseID)
	}
	return 0, nil
}

func (s *PlatformFacadeStub) InitiateCheckout(ctx context.Context, userID string, courseID int64) (*model.CheckoutIntent, error) {
	if s.InitiateCheckoutFn != nil {
		return s.InitiateCheckoutFn(ctx, userID, courseID)
	}
	return &model.CheckoutIntent{SessionURL: "https://pay.example/session"}, nil
}

func (s *PlatformFacadeStub) ConfirmPayment(ctx context.Context, sessionID string, outcome usecase.Outcome) error {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, sessionID, outcome)
	}
	return nil
}

func (s *PlatformFacadeStub) StalePurchases(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	if s.StalePurchasesFn != nil {
		return s.StalePurchasesFn(ctx, olderThan, limit)
	}
	return nil, nil
}

func (s *PlatformFacadeStub) SessionByID(ctx context.Context, id string) (*model.CheckoutSession, error) {
	if s.SessionByIDFn != nil {
		return s.SessionByIDFn(ctx, id)
	}
	return &model.CheckoutSession{ID: id, Status: model.SessionStatusOpen}, nil
}
