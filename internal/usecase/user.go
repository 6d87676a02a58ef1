package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/domain/repository"
)

// UserUseCase keeps local accounts in sync with the identity provider.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase constructs UserUseCase.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Ensure creates or refreshes the account row from authenticated token
// claims. Identity rows arrive lazily: the first authenticated request
// may precede the provider webhook.
func (u *UserUseCase) Ensure(ctx context.Context, user model.User) (*model.User, error) {
	if strings.TrimSpace(user.ID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domainErrors.ErrValidation)
	}
	if user.Role == "" {
		user.Role = model.RoleStudent
	}
	return u.users.Upsert(ctx, user)
}

// ApplyUserCreated handles a provider user.created event.
func (u *UserUseCase) ApplyUserCreated(ctx context.Context, user model.User) error {
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("%w: user id is required", domainErrors.ErrValidation)
	}
	if user.Role == "" {
		user.Role = model.RoleStudent
	}
	_, err := u.users.Upsert(ctx, user)
	return err
}

// ApplyUserUpdated handles a provider user.updated event. Events may be
// delivered out of order, so an update for an unseen user creates it.
func (u *UserUseCase) ApplyUserUpdated(ctx context.Context, user model.User) error {
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("%w: user id is required", domainErrors.ErrValidation)
	}
	err := u.users.UpdateProfile(ctx, user.ID, user.Name, user.Email, user.AvatarURL)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return u.ApplyUserCreated(ctx, user)
	}
	return err
}

// Get returns the stored account.
func (u *UserUseCase) Get(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// Educators lists all educator accounts.
func (u *UserUseCase) Educators(ctx context.Context) ([]model.User, error) {
	return u.users.ListEducators(ctx)
}
