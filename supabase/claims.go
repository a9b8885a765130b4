package supabase

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"stallion/errors"
)

const (
	RoleAnon        = "anon"
	RoleServiceRole = "service_role"
)

// KeyClaims is the payload of a legacy Supabase API key.
type KeyClaims struct {
	Role string `json:"role"`
	Ref  string `json:"ref"`
	jwt.RegisteredClaims
}

// KeyRole decodes the role of a JWT API key without verifying its signature, the project secret
// is not known to the client. Opaque keys such as sb_publishable_... return an empty role.
func KeyRole(key string) (string, error) {
	if strings.Count(key, ".") != 2 {
		return "", nil
	}
	claims := &KeyClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return "", fmt.Errorf("decode api key: %w", err)
	}
	return claims.Role, nil
}

// CheckKeyRole fails when key is a JWT whose role differs from want.
func CheckKeyRole(key, want string) error {
	role, err := KeyRole(key)
	if err != nil {
		return err
	}
	if role != "" && role != want {
		return fmt.Errorf("%w: got %q, want %q", errors.ErrKeyRoleMismatch, role, want)
	}
	return nil
}
