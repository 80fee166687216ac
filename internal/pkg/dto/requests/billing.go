package requests

type ConfirmForBilling struct {
	PatientID        string   `json:"patientId" validate:"required"`
	TransactionIDs   []string `json:"transactionIds" validate:"required,min=1"`
	Subtotal         float64  `json:"subtotal" validate:"gte=0"`
	DiscountTypes    []string `json:"discountTypes,omitempty"`
	DiscountRate     float64  `json:"discountRate" validate:"gte=0,lte=100"`
	DiscountAmount   float64  `json:"discountAmount" validate:"gte=0"`
	PromissoryAmount float64  `json:"promissoryAmount" validate:"gte=0"`
	FinalTotal       float64  `json:"finalTotal" validate:"gte=0"`
	BillNumber       string   `json:"billNumber,omitempty"`
	ProcessedBy      string
}

type CancelConfirmation struct {
	PatientID      string   `json:"patientId" validate:"required"`
	TransactionIDs []string `json:"transactionIds" validate:"required,min=1"`
}
