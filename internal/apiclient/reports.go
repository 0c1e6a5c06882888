package apiclient

import (
	"context"
	"net/url"
	"strconv"

	"github.com/spec-kit/hospital-console/internal/domain"
)

const reportsPath = "/reports"

// ReportService wraps the statistics endpoints.
type ReportService struct {
	client *Client
}

func NewReportService(client *Client) *ReportService {
	return &ReportService{client: client}
}

func (s *ReportService) PatientCount(ctx context.Context) (int64, error) {
	return get[int64](ctx, s.client, reportsPath+"/patients/count", nil)
}

func (s *ReportService) GenderDistribution(ctx context.Context) ([]domain.GenderCount, error) {
	return get[[]domain.GenderCount](ctx, s.client, reportsPath+"/patients/gender-distribution", nil)
}

func (s *ReportService) AdmissionCount(ctx context.Context) (int64, error) {
	return get[int64](ctx, s.client, reportsPath+"/admissions/count", nil)
}

// AdmissionCountBetween counts admissions in [start, end]. Dates use the
// backend's local date-time form.
func (s *ReportService) AdmissionCountBetween(ctx context.Context, start, end string) (int64, error) {
	query := url.Values{"startDate": {start}, "endDate": {end}}
	return get[int64](ctx, s.client, reportsPath+"/admissions/count-between-dates", query)
}

func (s *ReportService) AdmissionsByDepartment(ctx context.Context) ([]domain.DepartmentAdmissionCount, error) {
	return get[[]domain.DepartmentAdmissionCount](ctx, s.client, reportsPath+"/admissions/count-by-department", nil)
}

func (s *ReportService) MonthlyAdmissions(ctx context.Context, year int) ([]domain.MonthlyAdmissionCount, error) {
	query := url.Values{"year": {strconv.Itoa(year)}}
	return get[[]domain.MonthlyAdmissionCount](ctx, s.client, reportsPath+"/admissions/monthly-count-by-year", query)
}

// Dashboard gathers the headline counts shown on the home route.
func (s *ReportService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	patients, err := s.PatientCount(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	admissions, err := s.AdmissionCount(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.Dashboard{TotalPatients: patients, TotalAdmissions: admissions}, nil
}
