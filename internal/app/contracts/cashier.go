package contracts

import (
	"context"

	"hims-service/internal/app/models"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/dto/responses"
)

type CashierUsecase interface {
	ListPending(ctx context.Context) (*responses.PendingPayments, error)
	PreviewReceipt(ctx context.Context, patientID string) (*responses.ReceiptPreview, error)
	VerifyPayment(ctx context.Context, request *requests.VerifyPayment) (*responses.VerifiedPayment, error)
}

type CashierPaymentRepository interface {
	Insert(ctx context.Context, payment *models.CashierPayment) (*models.CashierPayment, error)
	FindRecent(ctx context.Context, limit int64) ([]models.CashierPayment, error)
}

type ReceiptRepository interface {
	Insert(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error)
	ExistsORNumber(ctx context.Context, orNumber string) (bool, error)
	// HighestORSequence scans receipts of the given year and returns the
	// largest sequence already issued, for seeding the counter.
	HighestORSequence(ctx context.Context, year int) (int64, error)
}
