package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-console/internal/api/dto"
	"github.com/spec-kit/hospital-console/internal/apiclient"
	"github.com/spec-kit/hospital-console/internal/domain"
)

// AdmissionsHandler serves the admission and department routes.
type AdmissionsHandler struct {
	admissions *apiclient.AdmissionService
}

// NewAdmissionsHandler constructs handler.
func NewAdmissionsHandler(admissions *apiclient.AdmissionService) *AdmissionsHandler {
	return &AdmissionsHandler{admissions: admissions}
}

// List GET /admissions.
func (h *AdmissionsHandler) List(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	page, err := h.admissions.List(c.UserContext(), q.Request())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(page))
}

// Get GET /admissions/:id.
func (h *AdmissionsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	admission, err := h.admissions.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": admission})
}

// Create POST /admissions.
func (h *AdmissionsHandler) Create(c *fiber.Ctx) error {
	var req domain.AdmissionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	admission, err := h.admissions.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": admission})
}

// Update PUT /admissions/:id.
func (h *AdmissionsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req domain.AdmissionRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	admission, err := h.admissions.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": admission})
}

// Delete DELETE /admissions/:id.
func (h *AdmissionsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.admissions.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Departments GET /departments.
func (h *AdmissionsHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.admissions.Departments(c.UserContext())
	if err != nil {
		return err
	}
	if departments == nil {
		departments = []domain.Department{}
	}
	return c.JSON(fiber.Map{"data": departments})
}
