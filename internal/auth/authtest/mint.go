// Package authtest mints credentials shaped like the backend's for tests.
package authtest

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Secret signs minted credentials. The console never verifies it.
const Secret = "authtest-secret"

// Credential describes the payload to mint.
type Credential struct {
	ID         int64
	Username   string
	NomComplet string
	Roles      []string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Mint signs c as an HS256 token.
func Mint(t testing.TB, c Credential) string {
	t.Helper()

	if c.IssuedAt.IsZero() {
		c.IssuedAt = c.ExpiresAt.Add(-time.Hour)
	}
	claims := jwt.MapClaims{
		"id":       c.ID,
		"username": c.Username,
		"roles":    c.Roles,
		"iat":      c.IssuedAt.Unix(),
		"exp":      c.ExpiresAt.Unix(),
	}
	if c.NomComplet != "" {
		claims["nomComplet"] = c.NomComplet
	}
	return MintClaims(t, claims)
}

// MintClaims signs arbitrary claims, for payloads Mint cannot express.
func MintClaims(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		t.Fatalf("mint credential: %v", err)
	}
	return token
}
