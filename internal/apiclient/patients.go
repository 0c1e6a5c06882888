package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/spec-kit/hospital-console/internal/domain"
)

const (
	patientsPath       = "/patients"
	patientDefaultSort = "lastName,asc"
)

// PatientService wraps the patient endpoints.
type PatientService struct {
	client *Client
}

func NewPatientService(client *Client) *PatientService {
	return &PatientService{client: client}
}

func (s *PatientService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Patient], error) {
	return get[domain.Page[domain.Patient]](ctx, s.client, patientsPath, pageQuery(page, patientDefaultSort))
}

func (s *PatientService) Get(ctx context.Context, id int64) (domain.Patient, error) {
	return get[domain.Patient](ctx, s.client, idPath(patientsPath, id), nil)
}

// Search matches patients by name or record number.
func (s *PatientService) Search(ctx context.Context, query string) ([]domain.Patient, error) {
	return get[[]domain.Patient](ctx, s.client, patientsPath+"/search", url.Values{"query": {query}})
}

func (s *PatientService) Create(ctx context.Context, req domain.PatientRequest) (domain.Patient, error) {
	return send[domain.Patient](ctx, s.client, http.MethodPost, patientsPath, req)
}

func (s *PatientService) Update(ctx context.Context, id int64, req domain.PatientRequest) (domain.Patient, error) {
	return send[domain.Patient](ctx, s.client, http.MethodPut, idPath(patientsPath, id), req)
}

func (s *PatientService) Delete(ctx context.Context, id int64) error {
	return s.client.Do(ctx, http.MethodDelete, idPath(patientsPath, id), nil, nil, nil)
}
