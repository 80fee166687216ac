package contracts

import (
	"context"

	"hims-service/internal/app/models"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/dto/responses"
)

type PromissoryUsecase interface {
	Submit(ctx context.Context, request *requests.SubmitPromissory) (*models.Promissory, error)
	UpdateStatus(ctx context.Context, request *requests.UpdatePromissoryStatus) (*models.Promissory, error)
	UpdateAmount(ctx context.Context, request *requests.UpdatePromissoryAmount) (*models.Promissory, error)
	FindAll(ctx context.Context) ([]models.Promissory, error)
	FindByID(ctx context.Context, promissoryID string) (*responses.PromissoryDetail, error)
	// FindApprovedByAdmission resolves the promissory billing may apply:
	// the most recently approved one scoped to the admission.
	FindApprovedByAdmission(ctx context.Context, patientID, admissionNumber string) (*models.Promissory, error)
}

type PromissoryRepository interface {
	Insert(ctx context.Context, promissory *models.Promissory) (*models.Promissory, error)
	FindAll(ctx context.Context) ([]models.Promissory, error)
	FindByID(ctx context.Context, promissoryID string) (*models.Promissory, error)
	FindByStatusForAdmission(ctx context.Context, patientID, admissionNumber string, status models.PromissoryStatus) ([]models.Promissory, error)
	FindOpenByAdmission(ctx context.Context, patientID, admissionNumber string) (*models.Promissory, error)
	// UpdateIfStatus overwrites the mutable fields of a promissory, guarded
	// on its current status; reports false when the guard did not match.
	UpdateIfStatus(ctx context.Context, promissoryID string, requiredStatus models.PromissoryStatus, promissory *models.Promissory) (bool, error)
	// Settle flips an approved or overdue promissory to Settled.
	Settle(ctx context.Context, promissoryID string) (bool, error)
}
