package requests

type VerifyPayment struct {
	PaymentID       string  `json:"paymentId" validate:"required"`
	AmountReceived  float64 `json:"amountReceived" validate:"required,gt=0"`
	PaymentMethod   string  `json:"paymentMethod,omitempty"`
	ReferenceNumber string  `json:"referenceNumber,omitempty"`
	ORNumber        string  `json:"orNumber,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	ProcessedBy     string
}
