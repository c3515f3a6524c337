package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

// ParseRole accepts the role names carried in tokens and the database.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

const DefaultTokenTTL = 24 * time.Hour

var (
	ErrSecretNotSet = errors.New("JWT secret is not set")
	ErrInvalidToken = errors.New("invalid token")
)

type Claims struct {
	UserID int64    `json:"userId"`
	Roles  []string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) HasRole(r Role) bool {
	return slices.Contains(c.Roles, string(r))
}

// Email is the token subject.
func (c *Claims) Email() string {
	return c.Subject
}

// TokenManager issues and validates HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *TokenManager) Generate(userID int64, email string, roles []Role) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSecretNotSet
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}

	now := m.now()
	claims := Claims{
		UserID: userID,
		Roles:  names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies signature and expiry and returns the claims.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	if len(m.secret) == 0 {
		return nil, ErrSecretNotSet
	}

	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return m.secret, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
