package contracts

import (
	"context"

	"hims-service/internal/app/models"
)

type VoidedTransactionRepository interface {
	Insert(ctx context.Context, voided *models.VoidedTransaction) error
	InsertMany(ctx context.Context, voided []models.VoidedTransaction) error
	FindAll(ctx context.Context) ([]models.VoidedTransaction, error)
	FindByDepartment(ctx context.Context, department string) ([]models.VoidedTransaction, error)
}
