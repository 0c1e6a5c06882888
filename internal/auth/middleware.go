package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-console/internal/domain"
)

const identityKey = "auth_identity"

// LoadingPlaceholder is rendered while the session is still being restored.
const LoadingPlaceholder = "Loading authentication..."

// Decision is the outcome of evaluating a protected navigation.
type Decision int

const (
	// DecisionPending defers the decision until loading completes.
	DecisionPending Decision = iota
	// DecisionLogin sends the caller to the login route.
	DecisionLogin
	// DecisionUnauthorized sends the caller to the unauthorized route.
	DecisionUnauthorized
	// DecisionAllow renders the requested content.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionLogin:
		return "login"
	case DecisionUnauthorized:
		return "unauthorized"
	case DecisionAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Evaluate decides a navigation from the session state and the roles the
// target requires. No roles means any authenticated user.
func Evaluate(state domain.SessionState, required RoleSet) Decision {
	switch {
	case state.Loading:
		return DecisionPending
	case !state.Authenticated || state.Identity == nil:
		return DecisionLogin
	case !required.Admits(state.Identity):
		return DecisionUnauthorized
	default:
		return DecisionAllow
	}
}

// SessionReader exposes the current session state.
type SessionReader interface {
	State() domain.SessionState
}

// ExpiryEnforcer signs out an identity whose credential has expired.
type ExpiryEnforcer interface {
	EnforceExpiry(ctx context.Context) bool
}

// GuardConfig configures redirect targets.
type GuardConfig struct {
	LoginPath        string
	UnauthorizedPath string
	// Expiry, when set, is consulted before every decision.
	Expiry ExpiryEnforcer
}

// Guard gates console routes on the session held by the process.
type Guard struct {
	sessions SessionReader
	cfg      GuardConfig
}

// NewGuard constructs the guard. The session manager must exist first.
func NewGuard(sessions SessionReader, cfg GuardConfig) *Guard {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.UnauthorizedPath == "" {
		cfg.UnauthorizedPath = "/unauthorized"
	}
	return &Guard{sessions: sessions, cfg: cfg}
}

// Require returns a handler admitting authenticated callers holding at least
// one of roles.
func (g *Guard) Require(roles ...string) fiber.Handler {
	required := NewRoleSet(roles...)

	return func(c *fiber.Ctx) error {
		if g.cfg.Expiry != nil {
			g.cfg.Expiry.EnforceExpiry(c.UserContext())
		}

		state := g.sessions.State()
		switch Evaluate(state, required) {
		case DecisionPending:
			c.Set(fiber.HeaderRetryAfter, "1")
			c.Set("Refresh", "1")
			return c.Status(fiber.StatusServiceUnavailable).SendString(LoadingPlaceholder)
		case DecisionLogin:
			return c.Redirect(g.cfg.LoginPath, fiber.StatusSeeOther)
		case DecisionUnauthorized:
			return c.Redirect(g.cfg.UnauthorizedPath, fiber.StatusSeeOther)
		}

		c.Locals(identityKey, state.Identity)
		return c.Next()
	}
}

// IdentityFromContext retrieves the identity admitted by the guard.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok && identity != nil
}
