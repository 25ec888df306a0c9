// Package auth validates the external identity provider's ID tokens. The
// application never handles credentials itself; it only extracts the opaque
// user identifier and email the provider asserts.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("identity token required")
)

// Identity is what the rest of the application knows about a user.
type Identity struct {
	UID   string
	Email string
}

// Claims are the provider claims this client reads.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Validator checks provider ID tokens against a shared signing secret.
type Validator struct {
	secretKey []byte
}

func NewValidator(secretKey string) *Validator {
	return &Validator{secretKey: []byte(secretKey)}
}

// Validate parses and verifies an ID token, returning the asserted identity.
func (v *Validator) Validate(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secretKey, nil
		},
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UID: claims.UID, Email: claims.Email}, nil
}
