package requests

type ChargeServiceLine struct {
	Type            string   `json:"type"`
	Description     string   `json:"description"`
	ProcedureAmount *float64 `json:"procedureAmount,omitempty"`
	ItemUsed        string   `json:"itemUsed,omitempty"`
	ItemAmount      *float64 `json:"itemAmount,omitempty"`
	Qty             int      `json:"qty"`
	Amount          float64  `json:"amount"`
}

type CreateChargeSlip struct {
	PatientID   string              `json:"patientId" validate:"required"`
	AdmissionID string              `json:"admissionId" validate:"required"`
	CategoryID  string              `json:"categoryId" validate:"required"`
	Services    []ChargeServiceLine `json:"services" validate:"required,min=1"`
}

type VoidService struct {
	Reason        string `json:"reason" validate:"required"`
	Department    string `json:"department,omitempty"`
	TransactionID string
	ServiceID     string
	VoidedBy      string
}

type VoidServiceSelection struct {
	TransactionID string `json:"transactionId" validate:"required"`
	ServiceIndex  int    `json:"serviceIndex" validate:"min=0"`
}

type VoidServices struct {
	Services   []VoidServiceSelection `json:"services" validate:"required,min=1,dive"`
	Reason     string                 `json:"reason" validate:"required"`
	Department string                 `json:"department,omitempty"`
	PatientID  string
	VoidedBy   string
}
