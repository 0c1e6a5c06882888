package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-console/internal/api/dto"
	"github.com/spec-kit/hospital-console/internal/domain"
	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

// SessionManager is the session API the console routes drive.
type SessionManager interface {
	Login(ctx context.Context, username, password string) (*domain.Identity, error)
	Logout(ctx context.Context)
	State() domain.SessionState
}

// SessionHandler serves login, logout and session inspection.
type SessionHandler struct {
	sessions  SessionManager
	homePath  string
	loginPath string
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions SessionManager, homePath, loginPath string) *SessionHandler {
	return &SessionHandler{sessions: sessions, homePath: homePath, loginPath: loginPath}
}

// ShowLogin GET /login. A signed-in operator is sent home.
func (h *SessionHandler) ShowLogin(c *fiber.Ctx) error {
	state := h.sessions.State()
	if state.Authenticated && !state.Loading {
		return c.Redirect(h.homePath, http.StatusSeeOther)
	}
	return c.JSON(fiber.Map{
		"data":   dto.NewSessionResponse(state),
		"fields": []string{"username", "password"},
	})
}

// Login POST /login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if h.sessions.State().Loading {
		return apperrors.NewDomainError(apperrors.CodeConflict, "authentication already in progress", http.StatusConflict, nil)
	}

	identity, err := h.sessions.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	if !c.Is("json") {
		return c.Redirect(h.homePath, http.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"data": dto.NewIdentityResponse(identity)})
}

// Logout POST /logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.UserContext())
	if !c.Is("json") {
		return c.Redirect(h.loginPath, http.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(h.sessions.State())})
}

// Session GET /session.
func (h *SessionHandler) Session(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(h.sessions.State())})
}

// Unauthorized GET /unauthorized.
func (h *SessionHandler) Unauthorized(c *fiber.Ctx) error {
	return c.Status(http.StatusForbidden).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    apperrors.CodeForbidden,
			"message": "You do not have permission to access this page.",
		},
	})
}
