package responses

import "hims-service/internal/app/models"

// PromissoryDetail pairs a promissory with the balance still owed on the
// transactions it covers.
type PromissoryDetail struct {
	Promissory  models.Promissory `json:"promissory"`
	Outstanding float64           `json:"outstanding"`
	PatientName string            `json:"patientName,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
}
