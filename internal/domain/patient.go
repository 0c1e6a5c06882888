package domain

// Gender values accepted by the backend.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Patient is a patient record as returned by the backend.
type Patient struct {
	ID            int64  `json:"id"`
	RecordNumber  string `json:"recordNumber"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	DateOfBirth   string `json:"dateOfBirth"`
	Gender        Gender `json:"gender"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
}

// PatientRequest is the create/update payload. DateOfBirth is YYYY-MM-DD.
type PatientRequest struct {
	RecordNumber  string `json:"recordNumber" validate:"required,max=64"`
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	DateOfBirth   string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender        Gender `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	ContactNumber string `json:"contactNumber" validate:"omitempty,max=32"`
	Address       string `json:"address" validate:"omitempty,max=255"`
}

// PatientSummary is the short form embedded in admissions.
type PatientSummary struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	RecordNumber string `json:"recordNumber"`
}
