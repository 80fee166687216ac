package contracts

import (
	"context"

	"hims-service/internal/app/models"
)

// PatientDirectory is the read-only surface over the registration system's
// patient registry.
type PatientDirectory interface {
	FindByPatientID(ctx context.Context, patientID string) (*models.Patient, error)
}
