package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-console/internal/api/dto"
	"github.com/spec-kit/hospital-console/internal/apiclient"
	"github.com/spec-kit/hospital-console/internal/domain"
)

// PatientsHandler serves the patient routes.
type PatientsHandler struct {
	patients   *apiclient.PatientService
	admissions *apiclient.AdmissionService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patients *apiclient.PatientService, admissions *apiclient.AdmissionService) *PatientsHandler {
	return &PatientsHandler{patients: patients, admissions: admissions}
}

// List GET /patients. With ?query= it searches instead of paging.
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	if query := strings.TrimSpace(c.Query("query")); query != "" {
		found, err := h.patients.Search(c.UserContext(), query)
		if err != nil {
			return err
		}
		if found == nil {
			found = []domain.Patient{}
		}
		return c.JSON(fiber.Map{"data": found})
	}

	var q dto.PageQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	page, err := h.patients.List(c.UserContext(), q.Request())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(page))
}

// Get GET /patients/:id.
func (h *PatientsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	patient, err := h.patients.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patient})
}

// Admissions GET /patients/:id/admissions.
func (h *PatientsHandler) Admissions(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	admissions, err := h.admissions.ByPatient(c.UserContext(), id)
	if err != nil {
		return err
	}
	if admissions == nil {
		admissions = []domain.Admission{}
	}
	return c.JSON(fiber.Map{"data": admissions})
}

// Create POST /patients.
func (h *PatientsHandler) Create(c *fiber.Ctx) error {
	var req domain.PatientRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	patient, err := h.patients.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": patient})
}

// Update PUT /patients/:id.
func (h *PatientsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req domain.PatientRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	patient, err := h.patients.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": patient})
}

// Delete DELETE /patients/:id.
func (h *PatientsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.patients.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
