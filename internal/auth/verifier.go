// Package auth verifies tokens issued by the external identity service.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const roleAdmin = "admin"

// Identity is what the storefront learns from a verified token.
type Identity struct {
	UserID string
	Admin  bool
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks an HS256 token and reads the "id" and "role" claims.
// Expiry is enforced when the token carries "exp".
func (v *Verifier) Verify(raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, fmt.Errorf("empty token: %w", ErrInvalidToken)
	}
	if len(v.secret) == 0 {
		return Identity{}, fmt.Errorf("no signing secret configured: %w", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, _ := claims["id"].(string)
	if strings.TrimSpace(id) == "" {
		return Identity{}, fmt.Errorf("missing id claim: %w", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)
	return Identity{UserID: id, Admin: strings.EqualFold(role, roleAdmin)}, nil
}
