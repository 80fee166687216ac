package requests

import "mime/multipart"

type SubmitPromissory struct {
	PatientID       string  `json:"patientId" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentExpected string  `json:"paymentExpected,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes           string  `json:"notes,omitempty"`
	Evidence        multipart.File
	EvidenceName    string
}

type UpdatePromissoryStatus struct {
	Status          string `json:"status" validate:"required,oneof=Approved Rejected Overdue"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	PromissoryID    string
	ActedBy         string
}

type UpdatePromissoryAmount struct {
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	PromissoryID string
}
