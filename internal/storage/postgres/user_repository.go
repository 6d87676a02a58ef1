package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
)

func (r *userRepository) Upsert(ctx context.Context, user model.User) (*model.User, error) {
	// Role is written on insert only: identity update events must not be
	// able to escalate an existing account.
	const query = `INSERT INTO users (id, name, email, avatar_url, role)
                   VALUES ($1, $2, $3, $4, $5)
                   ON CONFLICT (id) DO UPDATE
                   SET name = EXCLUDED.name,
                       email = EXCLUDED.email,
                       avatar_url = EXCLUDED.avatar_url,
                       updated_at = NOW()
                   RETURNING id, name, email, avatar_url, role, created_at, updated_at`
	role := user.Role
	if role == "" {
		role = model.RoleStudent
	}
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.AvatarURL, role).
		Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id, name, email, avatarURL string) error {
	const query = `UPDATE users SET name=$2, email=$3, avatar_url=$4, updated_at=NOW() WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, name, email, avatarURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, name, email, avatar_url, role, created_at, updated_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) ListEducators(ctx context.Context) ([]model.User, error) {
	const query = `SELECT id, name, email, avatar_url, role, created_at, updated_at
                   FROM users WHERE role='educator' ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
