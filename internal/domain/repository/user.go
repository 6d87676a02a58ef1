package repository

import (
	"context"

	"github.com/edumart/edumart/internal/domain/model"
)

// UserRepository describes persistence operations for platform accounts.
type UserRepository interface {
	// Upsert creates the user or refreshes profile fields when the row
	// already exists. Role is only written on first insert.
	Upsert(ctx context.Context, user model.User) (*model.User, error)
	// UpdateProfile patches mutable profile fields only.
	UpdateProfile(ctx context.Context, id, name, email, avatarURL string) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	ListEducators(ctx context.Context) ([]model.User, error)
}
