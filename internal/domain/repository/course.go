package repository

import (
	"context"

	"github.com/edumart/edumart/internal/domain/model"
)

// CourseRepository describes persistence operations for the catalog.
type CourseRepository interface {
	Create(ctx context.Context, course model.Course) (*model.Course, error)
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByEducator(ctx context.Context, educatorID string) ([]model.Course, error)
	// AddRating inserts the rating and bumps the course counter in one
	// transaction. A duplicate rating by the same user fails with
	// ErrAlreadyExists.
	AddRating(ctx context.Context, rating model.Rating) error
}
