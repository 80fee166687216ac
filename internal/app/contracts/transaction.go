package contracts

import (
	"context"

	"hims-service/internal/app/models"
	"hims-service/internal/pkg/dto/requests"
)

type ChargeUsecase interface {
	CreateChargeSlip(ctx context.Context, request *requests.CreateChargeSlip) (*models.Transaction, error)
	VoidService(ctx context.Context, request *requests.VoidService) (*models.Transaction, error)
	VoidServices(ctx context.Context, request *requests.VoidServices) ([]models.Transaction, error)
	ListVoided(ctx context.Context, department string) ([]models.VoidedTransaction, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Transaction, error)
}

type TransactionRepository interface {
	Insert(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Transaction, error)
	FindByTransactionIDs(ctx context.Context, transactionIDs []string) ([]models.Transaction, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Transaction, error)
	FindUnpaidByPatient(ctx context.Context, patientID string) ([]models.Transaction, error)
	FindUnpaidGroupedByPatient(ctx context.Context) (map[string][]models.Transaction, error)
	CountByAdmission(ctx context.Context, admissionID string) (int64, error)
	CountByAdmissionNotInStatus(ctx context.Context, admissionID string, status models.TransactionStatus) (int64, error)
	FindByAdmission(ctx context.Context, admissionID string) ([]models.Transaction, error)
	// ReplaceServices swaps the service lines of a slip, guarded on its
	// current status; reports false when the guard did not match.
	ReplaceServices(ctx context.Context, transactionID string, requiredStatus models.TransactionStatus, services []models.ServiceLine) (bool, error)
	// TransitionStatus applies a status change guarded on the expected
	// current status; reports false when the guard did not match.
	TransitionStatus(ctx context.Context, transactionID string, from, to models.TransactionStatus) (bool, error)
	DeleteIfStatus(ctx context.Context, transactionID string, requiredStatus models.TransactionStatus) (bool, error)
	DeleteByAdmission(ctx context.Context, admissionID string) error
}
