package dto

import (
	"time"

	"github.com/spec-kit/hospital-console/internal/domain"
)

// LoginRequest is accepted as JSON or as a form post.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=50"`
	Password string `json:"password" form:"password" validate:"required"`
}

// IdentityResponse describes the signed-in operator.
type IdentityResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Roles       []string  `json:"roles"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SessionResponse mirrors the session state.
type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	Loading       bool              `json:"loading"`
	User          *IdentityResponse `json:"user"`
}

// NewIdentityResponse returns nil for a nil identity.
func NewIdentityResponse(identity *domain.Identity) *IdentityResponse {
	if identity == nil {
		return nil
	}
	name := identity.DisplayName
	if name == "" {
		name = identity.Username
	}
	return &IdentityResponse{
		ID:          identity.ID,
		Username:    identity.Username,
		DisplayName: name,
		Email:       identity.Email,
		Roles:       append([]string(nil), identity.Roles...),
		ExpiresAt:   identity.ExpiresAt,
	}
}

func NewSessionResponse(state domain.SessionState) SessionResponse {
	return SessionResponse{
		Authenticated: state.Authenticated,
		Loading:       state.Loading,
		User:          NewIdentityResponse(state.Identity),
	}
}
