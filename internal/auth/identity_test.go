package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidate(t *testing.T) {
	v := NewValidator(testSecret)
	tok := signToken(t, testSecret, Claims{
		UID:   "u1",
		Email: "asha@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	ident, err := v.Validate(tok)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if ident.UID != "u1" || ident.Email != "asha@example.com" {
		t.Fatalf("wrong identity: %+v", ident)
	}
}

func TestValidateRejects(t *testing.T) {
	v := NewValidator(testSecret)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty token", "", ErrMissingToken},
		{"garbage", "not.a.token", ErrInvalidToken},
		{
			"wrong secret",
			signToken(t, "other-secret", Claims{UID: "u1"}),
			ErrInvalidToken,
		},
		{
			"expired",
			signToken(t, testSecret, Claims{
				UID: "u1",
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}),
			ErrInvalidToken,
		},
		{
			"missing uid claim",
			signToken(t, testSecret, Claims{Email: "asha@example.com"}),
			ErrInvalidToken,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Validate(tc.token); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
