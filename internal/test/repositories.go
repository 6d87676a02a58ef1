package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{Users: make(map[string]*model.User)}
}

func (s *UserRepositoryStub) Upsert(_ context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.Users[user.ID]; ok {
		existing.Name = user.Name
		existing.Email = user.Email
		existing.AvatarURL = user.AvatarURL
		copied := *existing
		return &copied, nil
	}
	stored := user
	s.Users[user.ID] = &stored
	copied := stored
	return &copied, nil
}

func (s *UserRepositoryStub) UpdateProfile(_ context.Context, id, name, email, avatarURL string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.Users[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Name = name
	user.Email = email
	user.AvatarURL = avatarURL
	return nil
}

func (s *UserRepositoryStub) GetByID(_ context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.Users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) ListEducators(context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, user := range s.Users {
		if user.Role == model.RoleEducator {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CourseRepositoryStub stores catalog entries in-memory for tests.
type CourseRepositoryStub struct {
	mu      sync.Mutex
	Courses map[int64]*model.Course
	Ratings map[string]bool
	Next    int64
	Err     error
}

// NewCourseRepositoryStub constructs stub repository with initialized maps.
func NewCourseRepositoryStub() *CourseRepositoryStub {
	return &CourseRepositoryStub{
		Courses: make(map[int64]*model.Course),
		Ratings: make(map[string]bool),
		Next:    1,
	}
}

func (s *CourseRepositoryStub) Create(_ context.Context, course model.Course) (*model.Course, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	course.ID = s.Next
	s.Next++
	stored := course
	s.Courses[course.ID] = &stored
	copied := stored
	return &copied, nil
}

func (s *CourseRepositoryStub) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if course, ok := s.Courses[id]; ok {
		copied := *course
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CourseRepositoryStub) List(context.Context) ([]model.Course, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Course, 0, len(s.Courses))
	for _, course := range s.Courses {
		out = append(out, *course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CourseRepositoryStub) ListByEducator(_ context.Context, educatorID string) ([]model.Course, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Course
	for _, course := range s.Courses {
		if course.EducatorID == educatorID {
			out = append(out, *course)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *CourseRepositoryStub) AddRating(_ context.Context, rating model.Rating) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.Courses[rating.CourseID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	key := fmt.Sprintf("%d:%s", rating.CourseID, rating.UserID)
	if s.Ratings[key] {
		return domainErrors.ErrAlreadyExists
	}
	s.Ratings[key] = true
	course.TotalRatings++
	return nil
}

// PurchaseRepositoryStub stores purchases in-memory for tests and
// mimics the store's conditional-write semantics.
type PurchaseRepositoryStub struct {
	mu        sync.Mutex
	Purchases map[int64]*model.Purchase
	Next      int64
	Err       error
}

// NewPurchaseRepositoryStub constructs stub repository with initialized maps.
func NewPurchaseRepositoryStub() *PurchaseRepositoryStub {
	return &PurchaseRepositoryStub{Purchases: make(map[int64]*model.Purchase), Next: 1}
}

func (s *PurchaseRepositoryStub) CreatePending(_ context.Context, userID string, courseID, amount int64, sessionID string) (*model.Purchase, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Purchases {
		if p.UserID == userID && p.CourseID == courseID && p.Status == model.PurchaseStatusPending {
			copied := *p
			return &copied, false, nil
		}
	}
	purchase := &model.Purchase{
		ID:        s.Next,
		UserID:    userID,
		CourseID:  courseID,
		Amount:    amount,
		Status:    model.PurchaseStatusPending,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}
	s.Next++
	s.Purchases[purchase.ID] = purchase
	copied := *purchase
	return &copied, true, nil
}

func (s *PurchaseRepositoryStub) GetPending(_ context.Context, userID string, courseID int64) (*model.Purchase, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Purchases {
		if p.UserID == userID && p.CourseID == courseID && p.Status == model.PurchaseStatusPending {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PurchaseRepositoryStub) GetBySessionID(_ context.Context, sessionID string) (*model.Purchase, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Purchases {
		if p.SessionID == sessionID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PurchaseRepositoryStub) HasCompleted(_ context.Context, userID string, courseID int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Purchases {
		if p.UserID == userID && p.CourseID == courseID && p.Status == model.PurchaseStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (s *PurchaseRepositoryStub) Transition(_ context.Context, purchaseID int64, from, to model.PurchaseStatus) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.Purchases[purchaseID]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	p.UpdatedAt = time.Now()
	return true, nil
}

func (s *PurchaseRepositoryStub) SelectStalePending(_ context.Context, olderThan time.Duration, limit int) ([]model.Purchase, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	var out []model.Purchase
	for _, p := range s.Purchases {
		if p.Status == model.PurchaseStatusPending && p.CreatedAt.Before(cutoff) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *PurchaseRepositoryStub) SumCompletedByEducator(context.Context, string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return 0, nil
}

func (s *PurchaseRepositoryStub) RecentEnrollmentsByEducator(context.Context, string, int) ([]model.RecentEnrollment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return nil, nil
}

// EnrollmentRepositoryStub stores enrollments in-memory for tests.
type EnrollmentRepositoryStub struct {
	mu       sync.Mutex
	Progress map[string]int
	Err      error
}

// NewEnrollmentRepositoryStub constructs stub repository with initialized maps.
func NewEnrollmentRepositoryStub() *EnrollmentRepositoryStub {
	return &EnrollmentRepositoryStub{Progress: make(map[string]int)}
}

func enrollmentKey(userID string, courseID int64) string {
	return fmt.Sprintf("%s:%d", userID, courseID)
}

func (s *EnrollmentRepositoryStub) Enroll(_ context.Context, userID string, courseID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := enrollmentKey(userID, courseID)
	if _, ok := s.Progress[key]; !ok {
		s.Progress[key] = 0
	}
	return nil
}

func (s *EnrollmentRepositoryStub) IsEnrolled(_ context.Context, userID string, courseID int64) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Progress[enrollmentKey(userID, courseID)]
	return ok, nil
}

func (s *EnrollmentRepositoryStub) ListByUser(context.Context, string) ([]model.EnrolledCourse, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return nil, nil
}

func (s *EnrollmentRepositoryStub) UpdateProgress(_ context.Context, userID string, courseID int64, progress int) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := enrollmentKey(userID, courseID)
	if _, ok := s.Progress[key]; !ok {
		return domainErrors.ErrNotEnrolled
	}
	s.Progress[key] = progress
	return nil
}

func (s *EnrollmentRepositoryStub) GetProgress(_ context.Context, userID string, courseID int64) (int, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	progress, ok := s.Progress[enrollmentKey(userID, courseID)]
	if !ok {
		return 0, domainErrors.ErrNotEnrolled
	}
	return progress, nil
}

func (s *EnrollmentRepositoryStub) CountByEducator(context.Context, string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return 0, nil
}
