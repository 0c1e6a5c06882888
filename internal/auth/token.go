package auth

import (
	"slices"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/hospital-console/internal/domain"
	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

// Claims describes the credential payload issued by the hospital backend.
type Claims struct {
	UserID     *int64   `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email,omitempty"`
	NomComplet string   `json:"nomComplet,omitempty"`
	Roles      []string `json:"roles"`
	jwt.RegisteredClaims
}

// Decoder turns a credential into an Identity.
//
// The signature is not checked: the console never holds the signing key and
// the backend remains the authority on every call it serves.
type Decoder struct {
	parser *jwt.Parser
}

// NewDecoder builds a decoder.
func NewDecoder() *Decoder {
	return &Decoder{parser: jwt.NewParser()}
}

// Decode parses credential and extracts the identity. It does not look at
// expiry; callers compare ExpiresAt with their clock.
func (d *Decoder) Decode(credential string) (*domain.Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, apperrors.NewDecodeError("empty credential", nil)
	}

	var claims Claims
	if _, _, err := d.parser.ParseUnverified(credential, &claims); err != nil {
		return nil, apperrors.NewDecodeError("not a structured token", err)
	}

	switch {
	case claims.UserID == nil:
		return nil, apperrors.NewDecodeError("missing id", nil)
	case claims.Username == "":
		return nil, apperrors.NewDecodeError("missing username", nil)
	case claims.Roles == nil:
		return nil, apperrors.NewDecodeError("missing roles", nil)
	case claims.ExpiresAt == nil:
		return nil, apperrors.NewDecodeError("missing exp", nil)
	}

	identity := &domain.Identity{
		ID:          *claims.UserID,
		Username:    claims.Username,
		DisplayName: claims.NomComplet,
		Email:       claims.Email,
		Roles:       slices.Clone(claims.Roles),
		ExpiresAt:   claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	return identity, nil
}
