package model

import "time"

// Role describes the platform role carried by the identity provider.
type Role string

const (
	RoleStudent  Role = "student"
	RoleEducator Role = "educator"
)

// User represents a platform account keyed by the externally issued identity.
type User struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
