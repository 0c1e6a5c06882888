package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-console/internal/api/dto"
	"github.com/spec-kit/hospital-console/internal/apiclient"
	"github.com/spec-kit/hospital-console/internal/auth"
	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

const backendDateTime = "2006-01-02T15:04:05"

// ReportsHandler serves the statistics routes and the dashboard.
type ReportsHandler struct {
	reports *apiclient.ReportService
	now     func() time.Time
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *apiclient.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports, now: time.Now}
}

// Dashboard GET /.
func (h *ReportsHandler) Dashboard(c *fiber.Ctx) error {
	identity, _ := auth.IdentityFromContext(c)
	stats, err := h.reports.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{User: dto.NewIdentityResponse(identity), Stats: stats}})
}

// Overview GET /reports: every report the page shows, for the year in
// ?year (default current).
func (h *ReportsHandler) Overview(c *fiber.Ctx) error {
	year, err := h.year(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	patients, err := h.reports.PatientCount(ctx)
	if err != nil {
		return err
	}
	admissions, err := h.reports.AdmissionCount(ctx)
	if err != nil {
		return err
	}
	genders, err := h.reports.GenderDistribution(ctx)
	if err != nil {
		return err
	}
	departments, err := h.reports.AdmissionsByDepartment(ctx)
	if err != nil {
		return err
	}
	monthly, err := h.reports.MonthlyAdmissions(ctx, year)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"total_patients":           patients,
		"total_admissions":         admissions,
		"gender_distribution":      genders,
		"admissions_by_department": departments,
		"monthly_admissions":       fiber.Map{"year": year, "months": monthly},
	}})
}

// AdmissionsBetween GET /reports/admissions/between?startDate&endDate.
func (h *ReportsHandler) AdmissionsBetween(c *fiber.Ctx) error {
	start, end := c.Query("startDate"), c.Query("endDate")
	startAt, err := time.Parse(backendDateTime, start)
	if err != nil {
		return apperrors.NewValidationError("invalid startDate", map[string]any{"startDate": start})
	}
	endAt, err := time.Parse(backendDateTime, end)
	if err != nil {
		return apperrors.NewValidationError("invalid endDate", map[string]any{"endDate": end})
	}
	if endAt.Before(startAt) {
		return apperrors.NewValidationError("endDate precedes startDate", nil)
	}

	count, err := h.reports.AdmissionCountBetween(c.UserContext(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"startDate": start, "endDate": end, "count": count}})
}

func (h *ReportsHandler) year(c *fiber.Ctx) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return h.now().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 9999 {
		return 0, apperrors.NewValidationError("invalid year", map[string]any{"year": raw})
	}
	return year, nil
}
