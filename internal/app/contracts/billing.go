package contracts

import (
	"context"

	"hims-service/internal/app/models"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/dto/responses"
)

type BillingUsecase interface {
	BuildInvoice(ctx context.Context, patientID string) (*responses.Invoice, error)
	ListWorklist(ctx context.Context) ([]responses.WorklistEntry, error)
	ConfirmForBilling(ctx context.Context, request *requests.ConfirmForBilling) (*models.Payment, error)
	CancelConfirmation(ctx context.Context, request *requests.CancelConfirmation) error
	ListPayments(ctx context.Context) ([]models.Payment, error)
}

type PaymentRepository interface {
	Insert(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
	FindAll(ctx context.Context) ([]models.Payment, error)
	FindPending(ctx context.Context) ([]models.Payment, error)
	FindPendingByPatient(ctx context.Context, patientID string) (*models.Payment, error)
	// MarkPaid flips a pending payment to Paid, guarded on its current
	// status; reports false when the guard did not match.
	MarkPaid(ctx context.Context, paymentID, processedBy string) (bool, error)
	DeletePendingByTransactionIDs(ctx context.Context, patientID string, transactionIDs []string) (int64, error)
}
