package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-console/internal/api/dto"
	"github.com/spec-kit/hospital-console/internal/apiclient"
	"github.com/spec-kit/hospital-console/internal/domain"
)

// UsersHandler serves account administration. Mounted behind ROLE_ADMIN.
type UsersHandler struct {
	users *apiclient.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *apiclient.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	page, err := h.users.List(c.UserContext(), q.Request())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(page))
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req domain.UserCreateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": user})
}

// Update PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req domain.UserUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	user, err := h.users.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Delete DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Roles GET /users/roles.
func (h *UsersHandler) Roles(c *fiber.Ctx) error {
	roles, err := h.users.Roles(c.UserContext())
	if err != nil {
		return err
	}
	if roles == nil {
		roles = []string{}
	}
	return c.JSON(fiber.Map{"data": roles})
}
