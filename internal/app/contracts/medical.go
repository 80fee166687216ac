package contracts

import (
	"context"
	"time"

	"hims-service/internal/app/models"
)

type MedicalRepository interface {
	FindByPatientID(ctx context.Context, patientID string) (*models.Medical, error)
	HasRecord(ctx context.Context, patientID string) (bool, error)
	FindDiagnosesSince(ctx context.Context, patientID string, since time.Time) ([]models.Diagnosis, error)
	RemoveDiagnosesSince(ctx context.Context, patientID string, since time.Time) error
}
