package domain

// GenderCount is one bucket of the patient gender distribution.
type GenderCount struct {
	Gender Gender `json:"gender"`
	Count  int64  `json:"count"`
}

// DepartmentAdmissionCount counts admissions per department.
type DepartmentAdmissionCount struct {
	DepartmentName string `json:"departmentName"`
	AdmissionCount int64  `json:"admissionCount"`
}

// MonthlyAdmissionCount counts admissions per month of a year.
type MonthlyAdmissionCount struct {
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// Dashboard aggregates the headline figures shown on the home route.
type Dashboard struct {
	TotalPatients   int64 `json:"totalPatients"`
	TotalAdmissions int64 `json:"totalAdmissions"`
}
