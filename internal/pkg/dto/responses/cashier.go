package responses

import "hims-service/internal/app/models"

type PendingPayments struct {
	Pending []models.Payment        `json:"pending"`
	Recent  []models.CashierPayment `json:"recent"`
}

// ReceiptPreview is what the cashier sees before verifying: the saved bill
// plus the OR number the next verification would consume.
type ReceiptPreview struct {
	Payment       *models.Payment         `json:"payment"`
	Transactions  []models.Transaction    `json:"transactions"`
	Services      []models.ReceiptService `json:"services"`
	NextORNumber  string                  `json:"nextOrNumber"`
	PatientName   string                  `json:"patientName"`
	PatientHRN    string                  `json:"patientHRN"`
}

type VerifiedPayment struct {
	Receipt        *models.Receipt        `json:"receipt"`
	CashierPayment *models.CashierPayment `json:"cashierPayment"`
	ChangeGiven    float64                `json:"changeGiven"`
}
