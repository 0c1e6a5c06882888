package domain

// AdmissionStatus enumerates admission lifecycle states.
type AdmissionStatus string

const (
	AdmissionStatusActive      AdmissionStatus = "ACTIVE"
	AdmissionStatusDischarged  AdmissionStatus = "DISCHARGED"
	AdmissionStatusTransferred AdmissionStatus = "TRANSFERRED"
)

// Admission is an admission as returned by the backend.
type Admission struct {
	ID                 int64           `json:"id"`
	AdmissionDate      string          `json:"admissionDate"`
	ReasonForAdmission string          `json:"reasonForAdmission"`
	AssignedDepartment Department      `json:"assignedDepartment"`
	RoomNumber         string          `json:"roomNumber"`
	BedNumber          string          `json:"bedNumber"`
	Status             AdmissionStatus `json:"status"`
	DischargeDate      string          `json:"dischargeDate,omitempty"`
	Patient            PatientSummary  `json:"patient"`
}

// AdmissionRequest is the create/update payload. Dates use the backend's
// local date-time form (YYYY-MM-DDTHH:MM:SS).
type AdmissionRequest struct {
	PatientID          int64           `json:"patientId" validate:"required,gt=0"`
	AdmissionDate      string          `json:"admissionDate" validate:"required,datetime=2006-01-02T15:04:05"`
	ReasonForAdmission string          `json:"reasonForAdmission" validate:"required,max=500"`
	DepartmentID       int64           `json:"departmentId" validate:"required,gt=0"`
	RoomNumber         string          `json:"roomNumber" validate:"omitempty,max=16"`
	BedNumber          string          `json:"bedNumber" validate:"omitempty,max=16"`
	Status             AdmissionStatus `json:"status" validate:"required,oneof=ACTIVE DISCHARGED TRANSFERRED"`
	DischargeDate      string          `json:"dischargeDate,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05"`
}
