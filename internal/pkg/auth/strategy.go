package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Claims carries the identity-provider assertions the platform trusts.
type Claims struct {
	UserID    string
	Name      string
	Email     string
	AvatarURL string
	Role      string
}

// Strategy verifies access tokens issued by the identity provider.
// Issue exists for tooling and tests; the service itself never mints
// production tokens.
type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (*Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
