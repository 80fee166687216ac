package requests

type AdmitPatient struct {
	PatientType string `json:"patientType" validate:"required"`
	PatientID   string `json:"patientId" validate:"required"`
	Category    string `json:"category" validate:"required"`
	WalkIn      bool   `json:"walkIn"`
	ReferredBy  string `json:"referredBy,omitempty"`
	AdmittedBy  string
}

type MarkCleared struct {
	AdmissionID string
	ClearedBy   string
}

type CompleteDischarge struct {
	Notes        string `json:"notes,omitempty"`
	AdmissionID  string
	DischargedBy string
}

type AssignDischargeNurse struct {
	DischargeBy string `json:"dischargeBy" validate:"required"`
	AdmissionID string
}
