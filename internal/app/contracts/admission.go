package contracts

import (
	"context"
	"time"

	"hims-service/internal/app/models"
	"hims-service/internal/pkg/dto/requests"
)

type AdmissionUsecase interface {
	Admit(ctx context.Context, request *requests.AdmitPatient) (*models.Admission, error)
	MarkCleared(ctx context.Context, request *requests.MarkCleared) (*models.Admission, error)
	CompleteDischarge(ctx context.Context, request *requests.CompleteDischarge) (*models.DischargedPatient, error)
	CancelAdmission(ctx context.Context, admissionID string) error
	AssignDischargeNurse(ctx context.Context, request *requests.AssignDischargeNurse) (*models.Admission, error)
	ListAdmitted(ctx context.Context) ([]models.Admission, error)
	ListDischarged(ctx context.Context, page, pageSize int) ([]models.DischargedPatient, int64, error)
}

type AdmissionRepository interface {
	Insert(ctx context.Context, admission *models.Admission) (*models.Admission, error)
	FindByID(ctx context.Context, admissionID string) (*models.Admission, error)
	FindCurrentByPatient(ctx context.Context, patientID string) (*models.Admission, error)
	FindAdmitted(ctx context.Context) ([]models.Admission, error)
	MarkCleared(ctx context.Context, admissionID, clearedBy string, at time.Time) (bool, error)
	SetDischargeNurse(ctx context.Context, admissionID, dischargeBy string) (bool, error)
	Delete(ctx context.Context, admissionID string) error
}

type DischargedPatientRepository interface {
	Insert(ctx context.Context, discharged *models.DischargedPatient) (*models.DischargedPatient, error)
	FindPage(ctx context.Context, page, pageSize int) ([]models.DischargedPatient, int64, error)
}

type ProcessedPatientRepository interface {
	MarkProcessed(ctx context.Context, patientID string) error
	ClearProcessed(ctx context.Context, patientID string) error
	IsProcessed(ctx context.Context, patientID string) (bool, error)
}
