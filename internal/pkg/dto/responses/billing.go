package responses

import "hims-service/internal/app/models"

// InvoiceLine is one ref-numbered row on the printable bill.
type InvoiceLine struct {
	Ref             int     `json:"ref"`
	TransactionID   string  `json:"transactionId"`
	TransactionType string  `json:"transactionType"`
	Description     string  `json:"description"`
	Qty             int     `json:"qty"`
	UnitPrice       float64 `json:"unitPrice"`
	Amount          float64 `json:"amount"`
}

type Invoice struct {
	PatientID        string        `json:"patientId"`
	PatientName      string        `json:"patientName"`
	AdmittingID      string        `json:"admittingId,omitempty"`
	BillNumber       string        `json:"billNumber"`
	Lines            []InvoiceLine `json:"lines"`
	Subtotal         float64       `json:"subtotal"`
	PromissoryAmount float64       `json:"promissoryAmount"`
	HasPendingBill   bool          `json:"hasPendingBill"`
}

// WorklistEntry is one patient with unpaid charges awaiting confirmation.
type WorklistEntry struct {
	PatientID        string                  `json:"patientId"`
	PatientName      string                  `json:"patientName"`
	AdmittingID      string                  `json:"admittingId,omitempty"`
	Transactions     []models.Transaction    `json:"transactions"`
	Subtotal         float64                 `json:"subtotal"`
	PromissoryStatus models.PromissoryStatus `json:"promissoryStatus,omitempty"`
}
