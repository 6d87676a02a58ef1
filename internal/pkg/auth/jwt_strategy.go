package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTStrategy validates identity-provider tokens signed with a shared
// HS256 secret.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
}

type tokenClaims struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl}
}

// IssueToken generates a signed token carrying the provided claims.
func (s *JWTStrategy) IssueToken(claims Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Name:      claims.Name,
		Email:     claims.Email,
		AvatarURL: claims.AvatarURL,
		Role:      claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	return token.SignedString(s.secret)
}

// ParseToken validates the token signature and expiry and returns claims.
func (s *JWTStrategy) ParseToken(token string) (*Claims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &Claims{
		UserID:    claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		AvatarURL: claims.AvatarURL,
		Role:      claims.Role,
	}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
