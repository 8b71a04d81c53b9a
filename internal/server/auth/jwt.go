// Package auth contains password hashing and the class-scoped token service.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Class separates the two kinds of principals. Each class signs with its own
// secret, so a user token never verifies as an admin token and vice versa.
type Class string

const (
	ClassUser  Class = "user"
	ClassAdmin Class = "admin"
)

// Title is the capitalized class name used in client-facing messages.
func (c Class) Title() string {
	switch c {
	case ClassAdmin:
		return "Admin"
	case ClassUser:
		return "User"
	default:
		return string(c)
	}
}

// Claims are the registered claims plus the principal class.
type Claims struct {
	jwt.RegisteredClaims
	Class Class `json:"cls"`
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	secrets  map[Class][]byte
	validity time.Duration
	now      func() time.Time
}

// NewTokenService builds a TokenService from the per-class secrets. Both
// secrets are required and must differ. A zero validity issues tokens without
// an expiry claim.
func NewTokenService(userSecret, adminSecret []byte, validity time.Duration) (*TokenService, error) {
	if len(userSecret) == 0 || len(adminSecret) == 0 {
		return nil, errors.New("token secrets must not be empty")
	}
	if string(userSecret) == string(adminSecret) {
		return nil, errors.New("user and admin token secrets must differ")
	}
	if validity < 0 {
		return nil, fmt.Errorf("negative token validity %s", validity)
	}

	return &TokenService{
		secrets: map[Class][]byte{
			ClassUser:  userSecret,
			ClassAdmin: adminSecret,
		},
		validity: validity,
		now:      time.Now,
	}, nil
}

// Issue signs a token binding subjectID to class.
func (s *TokenService) Issue(subjectID string, class Class) (string, error) {
	secret, ok := s.secrets[class]
	if !ok {
		return "", fmt.Errorf("unknown principal class %q", class)
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subjectID,
			Audience: jwt.ClaimStrings{string(class)},
			IssuedAt: jwt.NewNumericDate(now),
		},
		Class: class,
	}
	if s.validity > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.validity))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks tokenString against the secret of class and returns the
// subject. Expired tokens yield common.ErrTokenExpired; every other failure
// yields common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string, class Class) (string, error) {
	secret, ok := s.secrets[class]
	if !ok || tokenString == "" {
		return "", common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(string(class)),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Class != class || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
