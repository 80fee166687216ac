package cashier

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"hims-service/internal/app/config"
	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/dto/responses"
	"hims-service/internal/pkg/exceptions"
	"hims-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type cashierUsecase struct {
	PaymentRepository        contracts.PaymentRepository
	TransactionRepository    contracts.TransactionRepository
	CashierPaymentRepository contracts.CashierPaymentRepository
	ReceiptRepository        contracts.ReceiptRepository
	PromissoryRepository     contracts.PromissoryRepository
	RedisRepository          contracts.RedisRepository
	NotificationSink         contracts.NotificationSink
	AuditSink                contracts.AuditSink
	TransactionManager       contracts.TransactionManager
	InternalConfig           *config.InternalConfig
	Log                      *zap.Logger
}

var (
	cashierUsecaseInstance contracts.CashierUsecase
	onceCashierUsecase     sync.Once
)

func NewCashierUsecase(
	paymentRepository contracts.PaymentRepository,
	transactionRepository contracts.TransactionRepository,
	cashierPaymentRepository contracts.CashierPaymentRepository,
	receiptRepository contracts.ReceiptRepository,
	promissoryRepository contracts.PromissoryRepository,
	redisRepository contracts.RedisRepository,
	notificationSink contracts.NotificationSink,
	auditSink contracts.AuditSink,
	transactionManager contracts.TransactionManager,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CashierUsecase {
	onceCashierUsecase.Do(func() {
		cashierUsecaseInstance = &cashierUsecase{
			PaymentRepository:        paymentRepository,
			TransactionRepository:    transactionRepository,
			CashierPaymentRepository: cashierPaymentRepository,
			ReceiptRepository:        receiptRepository,
			PromissoryRepository:     promissoryRepository,
			RedisRepository:          redisRepository,
			NotificationSink:         notificationSink,
			AuditSink:                auditSink,
			TransactionManager:       transactionManager,
			InternalConfig:           internalConfig,
			Log:                      logger,
		}
	})
	return cashierUsecaseInstance
}

func (uc *cashierUsecase) ListPending(ctx context.Context) (*responses.PendingPayments, error) {
	pending, err := uc.PaymentRepository.FindPending(ctx)
	if err != nil {
		return nil, err
	}

	limit := int64(uc.InternalConfig.Billing.RecentCashierPaymentsLimit)
	recent, err := uc.CashierPaymentRepository.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	return &responses.PendingPayments{Pending: pending, Recent: recent}, nil
}

func (uc *cashierUsecase) PreviewReceipt(ctx context.Context, patientID string) (*responses.ReceiptPreview, error) {
	payment, err := uc.PaymentRepository.FindPendingByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil)
	}

	transactions, err := uc.TransactionRepository.FindByTransactionIDs(ctx, payment.TransactionIDs)
	if err != nil {
		return nil, err
	}

	nextORNumber, err := uc.peekNextORNumber(ctx, time.Now().Year())
	if err != nil {
		return nil, err
	}

	return &responses.ReceiptPreview{
		Payment:      payment,
		Transactions: transactions,
		Services:     models.BuildReceiptServices(transactions),
		NextORNumber: nextORNumber,
		PatientName:  payment.PatientName,
		PatientHRN:   payment.PatientHRN,
	}, nil
}

func (uc *cashierUsecase) VerifyPayment(ctx context.Context, request *requests.VerifyPayment) (*responses.VerifiedPayment, error) {
	if request.PaymentID == "" || request.AmountReceived <= 0 {
		return nil, exceptions.ErrMissingReceiptInfo(nil)
	}

	payment, err := uc.PaymentRepository.FindByID(ctx, request.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil)
	}
	if payment.Status != models.PaymentPending {
		return nil, exceptions.ErrStateConflict(nil)
	}

	transactions, err := uc.TransactionRepository.FindByTransactionIDs(ctx, payment.TransactionIDs)
	if err != nil {
		return nil, err
	}

	orNumber := request.ORNumber
	if orNumber == "" {
		orNumber, err = uc.allocateORNumber(ctx, time.Now().Year())
		if err != nil {
			return nil, err
		}
	}

	processedBy := request.ProcessedBy
	if processedBy == "" {
		processedBy = constvars.DefaultProcessedBy
	}
	paymentMethod := request.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = constvars.PaymentMethodCash
	}

	changeGiven := request.AmountReceived - payment.FinalTotal
	if changeGiven < 0 {
		changeGiven = 0
	}

	now := time.Now()
	cashierPayment := &models.CashierPayment{
		PaymentID:        payment.ID,
		PatientID:        payment.PatientID,
		TransactionIDs:   payment.TransactionIDs,
		Subtotal:         payment.Subtotal,
		DiscountTypes:    payment.DiscountTypes,
		DiscountRate:     payment.DiscountRate,
		DiscountAmount:   payment.DiscountAmount,
		PromissoryAmount: payment.PromissoryAmount,
		FinalTotal:       payment.FinalTotal,
		BillNumber:       payment.BillNumber,
		PaymentDate:      now,
		ProcessedBy:      processedBy,
		PatientName:      payment.PatientName,
		PatientHRN:       payment.PatientHRN,
		PaymentMethod:    paymentMethod,
		ReferenceNumber:  request.ReferenceNumber,
		AmountReceived:   request.AmountReceived,
		ChangeGiven:      changeGiven,
		Notes:            request.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	receipt := &models.Receipt{
		ORNumber:         orNumber,
		PaymentID:        payment.ID,
		PatientID:        payment.PatientID,
		PatientHRN:       payment.PatientHRN,
		PatientName:      payment.PatientName,
		TransactionIDs:   payment.TransactionIDs,
		BillNumber:       payment.BillNumber,
		Subtotal:         payment.Subtotal,
		DiscountTypes:    payment.DiscountTypes,
		DiscountRate:     payment.DiscountRate,
		DiscountAmount:   payment.DiscountAmount,
		PromissoryAmount: payment.PromissoryAmount,
		FinalTotal:       payment.FinalTotal,
		AmountReceived:   request.AmountReceived,
		ChangeGiven:      changeGiven,
		ProcessedBy:      processedBy,
		ReceiptDate:      now,
		Services:         models.BuildReceiptServices(transactions),
		AdmissionNumber:  payment.AdmissionNumber,
		CreatedAt:        now,
	}

	err = utils.LogOperation(uc.Log, "cashier.verify_payment", utils.GetRequestID(ctx), func() error {
		return uc.TransactionManager.WithTransaction(ctx, func(sessCtx context.Context) error {
			for _, transactionID := range payment.TransactionIDs {
				ok, err := uc.TransactionRepository.TransitionStatus(sessCtx, transactionID, models.TransactionBillingConfirmed, models.TransactionPaymentVerified)
				if err != nil {
					return err
				}
				if !ok {
					return exceptions.ErrStateConflict(nil)
				}
			}

			ok, err := uc.PaymentRepository.MarkPaid(sessCtx, request.PaymentID, processedBy)
			if err != nil {
				return err
			}
			if !ok {
				return exceptions.ErrStateConflict(nil)
			}

			if payment.PromissoryID != nil {
				settled, err := uc.PromissoryRepository.Settle(sessCtx, payment.PromissoryID.Hex())
				if err != nil {
					return err
				}
				if !settled {
					// the promissory moved out of Approved between billing
					// confirmation and now; the receipt still stands
					uc.Log.Warn("promissory could not be settled during verification",
						zap.String(constvars.LoggingPromissoryIDKey, payment.PromissoryID.Hex()),
						zap.String(constvars.LoggingPaymentIDKey, request.PaymentID),
					)
				}
			}

			created, err := uc.CashierPaymentRepository.Insert(sessCtx, cashierPayment)
			if err != nil {
				return err
			}
			receipt.CashierPaymentID = created.ID

			_, err = uc.ReceiptRepository.Insert(sessCtx, receipt)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	uc.AuditSink.Record(ctx, &models.AuditLog{
		Action:    "cashier.verify",
		Resource:  constvars.ResourceCashier,
		RefID:     receipt.ORNumber,
		PatientID: payment.PatientID,
		Actor:     processedBy,
		Before:    map[string]any{"paymentStatus": models.PaymentPending},
		After: map[string]any{
			"paymentStatus":  models.PaymentPaid,
			"orNumber":       receipt.ORNumber,
			"amountReceived": request.AmountReceived,
		},
	})

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: constvars.DepartmentBilling,
		Event:      "PaymentVerified",
		Message:    fmt.Sprintf("payment verified for patient %s, receipt %s", payment.PatientID, receipt.ORNumber),
		PatientID:  payment.PatientID,
		RefID:      receipt.ORNumber,
	})

	utils.LogBusinessEvent(uc.Log, "PaymentVerified", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPaymentIDKey, request.PaymentID),
		zap.String(constvars.LoggingPatientIDKey, payment.PatientID),
		zap.String(constvars.LoggingORNumberKey, receipt.ORNumber),
		zap.Float64("final_total", payment.FinalTotal),
	)

	return &responses.VerifiedPayment{
		Receipt:        receipt,
		CashierPayment: cashierPayment,
		ChangeGiven:    changeGiven,
	}, nil
}

// allocateORNumber draws the next receipt number from the per-year counter,
// seeding it from existing receipts on first use. A collision with an
// already-issued number consumes another draw, up to three attempts.
func (uc *cashierUsecase) allocateORNumber(ctx context.Context, year int) (string, error) {
	key := fmt.Sprintf(constvars.ORSequenceKeyFormat, year)
	if err := uc.ensureSequenceSeeded(ctx, key, year); err != nil {
		return "", err
	}

	for attempt := 0; attempt < constvars.IdentifierGenerationMaxAttempts; attempt++ {
		seq, err := uc.RedisRepository.NextSequence(ctx, key)
		if err != nil {
			return "", err
		}

		orNumber := utils.FormatORNumber(year, seq)
		exists, err := uc.ReceiptRepository.ExistsORNumber(ctx, orNumber)
		if err != nil {
			return "", err
		}
		if !exists {
			return orNumber, nil
		}

		uc.Log.Warn("allocated receipt number already issued",
			zap.String(constvars.LoggingORNumberKey, orNumber),
		)
	}
	return "", exceptions.ErrORSequenceExhausted(nil)
}

func (uc *cashierUsecase) peekNextORNumber(ctx context.Context, year int) (string, error) {
	key := fmt.Sprintf(constvars.ORSequenceKeyFormat, year)
	if err := uc.ensureSequenceSeeded(ctx, key, year); err != nil {
		return "", err
	}

	val, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		return "", err
	}
	current, err := strconv.ParseInt(strings.Trim(val, `"`), 10, 64)
	if err != nil {
		current = 0
	}
	return utils.FormatORNumber(year, current+1), nil
}

func (uc *cashierUsecase) ensureSequenceSeeded(ctx context.Context, key string, year int) error {
	val, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		return err
	}
	if val != "" {
		return nil
	}

	highest, err := uc.ReceiptRepository.HighestORSequence(ctx, year)
	if err != nil {
		return err
	}
	return uc.RedisRepository.SeedSequence(ctx, key, highest)
}
