package app

import (
	"context"
	"time"

	"github.com/edumart/edumart/internal/adapter/payment"
	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/usecase"
)

// SessionProvider exposes read access to gateway checkout sessions.
type SessionProvider interface {
	GetSession(ctx context.Context, id string) (*model.CheckoutSession, error)
}

// PlatformFacade is the single entry point handlers and workers use.
type PlatformFacade struct {
	users       *usecase.UserUseCase
	courses     *usecase.CourseUseCase
	enrollments *usecase.EnrollmentUseCase
	purchases   *usecase.PurchaseUseCase
	sessions    SessionProvider
}

// NewPlatformFacade constructs PlatformFacade.
func NewPlatformFacade(
	users *usecase.UserUseCase,
	courses *usecase.CourseUseCase,
	enrollments *usecase.EnrollmentUseCase,
	purchases *usecase.PurchaseUseCase,
	gateway payment.Client,
) *PlatformFacade {
	return &PlatformFacade{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		purchases:   purchases,
		sessions:    gateway,
	}
}

func (f *PlatformFacade) EnsureUser(ctx context.Context, user model.User) (*model.User, error) {
	return f.users.Ensure(ctx, user)
}

func (f *PlatformFacade) ApplyUserCreated(ctx context.Context, user model.User) error {
	return f.users.ApplyUserCreated(ctx, user)
}

func (f *PlatformFacade) ApplyUserUpdated(ctx context.Context, user model.User) error {
	return f.users.ApplyUserUpdated(ctx, user)
}

func (f *PlatformFacade) Educators(ctx context.Context) ([]model.User, error) {
	return f.users.Educators(ctx)
}

func (f *PlatformFacade) CreateCourse(ctx context.Context, course model.Course) (*model.Course, error) {
	return f.courses.Create(ctx, course)
}

func (f *PlatformFacade) Course(ctx context.Context, id int64) (*model.Course, error) {
	return f.courses.Get(ctx, id)
}

func (f *PlatformFacade) Courses(ctx context.Context) ([]model.Course, error) {
	return f.courses.List(ctx)
}

func (f *PlatformFacade) EducatorCourses(ctx context.Context, educatorID string) ([]model.Course, error) {
	return f.courses.ListByEducator(ctx, educatorID)
}

func (f *PlatformFacade) EducatorDashboard(ctx context.Context, educatorID string) (*model.EducatorDashboard, error) {
	return f.courses.Dashboard(ctx, educatorID)
}

func (f *PlatformFacade) RateCourse(ctx context.Context, rating model.Rating) error {
	return f.courses.Rate(ctx, rating)
}

func (f *PlatformFacade) EnrolledCourses(ctx context.Context, userID string) ([]model.EnrolledCourse, error) {
	return f.enrollments.Courses(ctx, userID)
}

func (f *PlatformFacade) UpdateProgress(ctx context.Context, userID string, courseID int64, progress int) error {
	return f.enrollments.UpdateProgress(ctx, userID, courseID, progress)
}

func (f *PlatformFacade) Progress(ctx context.Context, userID string, courseID int64) (int, error) {
	return f.enrollments.Progress(ctx, userID, courseID)
}

func (f *PlatformFacade) InitiateCheckout(ctx context.Context, userID string, courseID int64) (*model.CheckoutIntent, error) {
	return f.purchases.Initiate(ctx, userID, courseID)
}

func (f *PlatformFacade) ConfirmPayment(ctx context.Context, sessionID string, outcome usecase.Outcome) error {
	return f.purchases.Confirm(ctx, sessionID, outcome)
}

func (f *PlatformFacade) RefundPurchase(ctx context.Context, purchaseID int64) error {
	return f.purchases.Refund(ctx, purchaseID)
}

func (f *PlatformFacade) SessionByID(ctx context.Context, id string) (*model.CheckoutSession, error) {
	return f.sessions.GetSession(ctx, id)
}

func (f *PlatformFacade) StalePurchases(ctx context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	return f.purchases.SelectStalePending(ctx, olderThan, limit)
}
