package apiclient

import (
	"context"
	"net/http"

	"github.com/spec-kit/hospital-console/internal/domain"
)

const (
	admissionsPath       = "/admissions"
	admissionDefaultSort = "admissionDate,desc"
)

// AdmissionService wraps the admission and department endpoints.
type AdmissionService struct {
	client *Client
}

func NewAdmissionService(client *Client) *AdmissionService {
	return &AdmissionService{client: client}
}

func (s *AdmissionService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Admission], error) {
	return get[domain.Page[domain.Admission]](ctx, s.client, admissionsPath, pageQuery(page, admissionDefaultSort))
}

func (s *AdmissionService) Get(ctx context.Context, id int64) (domain.Admission, error) {
	return get[domain.Admission](ctx, s.client, idPath(admissionsPath, id), nil)
}

// ByPatient lists every admission of one patient.
func (s *AdmissionService) ByPatient(ctx context.Context, patientID int64) ([]domain.Admission, error) {
	return get[[]domain.Admission](ctx, s.client, idPath(admissionsPath+"/patient", patientID), nil)
}

func (s *AdmissionService) Create(ctx context.Context, req domain.AdmissionRequest) (domain.Admission, error) {
	return send[domain.Admission](ctx, s.client, http.MethodPost, admissionsPath, req)
}

func (s *AdmissionService) Update(ctx context.Context, id int64, req domain.AdmissionRequest) (domain.Admission, error) {
	return send[domain.Admission](ctx, s.client, http.MethodPut, idPath(admissionsPath, id), req)
}

func (s *AdmissionService) Delete(ctx context.Context, id int64) error {
	return s.client.Do(ctx, http.MethodDelete, idPath(admissionsPath, id), nil, nil, nil)
}

// Departments lists the units an admission can be assigned to.
func (s *AdmissionService) Departments(ctx context.Context) ([]domain.Department, error) {
	return get[[]domain.Department](ctx, s.client, "/departments", nil)
}
