package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/hospital-console/internal/api/http/handlers"
	"github.com/spec-kit/hospital-console/internal/auth"
	"github.com/spec-kit/hospital-console/internal/domain"
	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Session    *handlers.SessionHandler
	Patients   *handlers.PatientsHandler
	Admissions *handlers.AdmissionsHandler
	Users      *handlers.UsersHandler
	Reports    *handlers.ReportsHandler
	Guard      *auth.Guard

	LoginPath           string
	UnauthorizedPath    string
	LoginAttemptsPerMin int
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.UnauthorizedPath == "" {
		cfg.UnauthorizedPath = "/unauthorized"
	}

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get(cfg.LoginPath, cfg.Session.ShowLogin)
	app.Post(cfg.LoginPath, loginLimiter(cfg.LoginAttemptsPerMin), cfg.Session.Login)
	app.Post("/logout", cfg.Session.Logout)
	app.Get("/session", cfg.Session.Session)
	app.Get(cfg.UnauthorizedPath, cfg.Session.Unauthorized)

	signedIn := cfg.Guard.Require()
	app.Get("/", signedIn, cfg.Reports.Dashboard)

	patients := app.Group("/patients", signedIn)
	patients.Get("/", cfg.Patients.List)
	patients.Post("/", cfg.Patients.Create)
	patients.Get("/:id", cfg.Patients.Get)
	patients.Put("/:id", cfg.Patients.Update)
	patients.Delete("/:id", cfg.Patients.Delete)
	patients.Get("/:id/admissions", cfg.Patients.Admissions)

	admissions := app.Group("/admissions", signedIn)
	admissions.Get("/", cfg.Admissions.List)
	admissions.Post("/", cfg.Admissions.Create)
	admissions.Get("/:id", cfg.Admissions.Get)
	admissions.Put("/:id", cfg.Admissions.Update)
	admissions.Delete("/:id", cfg.Admissions.Delete)

	app.Get("/departments", signedIn, cfg.Admissions.Departments)

	users := app.Group("/users", cfg.Guard.Require(domain.RoleAdmin.String()))
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Get("/roles", cfg.Users.Roles)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	reports := app.Group("/reports", cfg.Guard.Require(domain.RoleAdmin.String(), domain.RoleMedecin.String()))
	reports.Get("/", cfg.Reports.Overview)
	reports.Get("/admissions/between", cfg.Reports.AdmissionsBetween)
}

func loginLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewDomainError(apperrors.CodeRateLimited, "too many login attempts", http.StatusTooManyRequests, nil)
		},
	})
}
