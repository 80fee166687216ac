package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/dto/responses"
	"hims-service/internal/pkg/exceptions"
	"hims-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type billingUsecase struct {
	PaymentRepository     contracts.PaymentRepository
	TransactionRepository contracts.TransactionRepository
	PatientDirectory      contracts.PatientDirectory
	AdmissionRepository   contracts.AdmissionRepository
	PromissoryUsecase     contracts.PromissoryUsecase
	NotificationSink      contracts.NotificationSink
	AuditSink             contracts.AuditSink
	TransactionManager    contracts.TransactionManager
	Log                   *zap.Logger
}

var (
	billingUsecaseInstance contracts.BillingUsecase
	onceBillingUsecase     sync.Once
)

func NewBillingUsecase(
	paymentRepository contracts.PaymentRepository,
	transactionRepository contracts.TransactionRepository,
	patientDirectory contracts.PatientDirectory,
	admissionRepository contracts.AdmissionRepository,
	promissoryUsecase contracts.PromissoryUsecase,
	notificationSink contracts.NotificationSink,
	auditSink contracts.AuditSink,
	transactionManager contracts.TransactionManager,
	logger *zap.Logger,
) contracts.BillingUsecase {
	onceBillingUsecase.Do(func() {
		billingUsecaseInstance = &billingUsecase{
			PaymentRepository:     paymentRepository,
			TransactionRepository: transactionRepository,
			PatientDirectory:      patientDirectory,
			AdmissionRepository:   admissionRepository,
			PromissoryUsecase:     promissoryUsecase,
			NotificationSink:      notificationSink,
			AuditSink:             auditSink,
			TransactionManager:    transactionManager,
			Log:                   logger,
		}
	})
	return billingUsecaseInstance
}

func (uc *billingUsecase) BuildInvoice(ctx context.Context, patientID string) (*responses.Invoice, error) {
	patient, err := uc.PatientDirectory.FindByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	unpaid, err := uc.TransactionRepository.FindUnpaidByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	invoice := &responses.Invoice{
		PatientID:   patientID,
		PatientName: patient.FullName(),
	}

	ref := 1
	for _, tx := range unpaid {
		for _, s := range tx.Services {
			qty := s.Qty
			if qty <= 0 {
				qty = 1
			}
			invoice.Lines = append(invoice.Lines, responses.InvoiceLine{
				Ref:             ref,
				TransactionID:   tx.TransactionID,
				TransactionType: s.Type,
				Description:     s.Description,
				Qty:             qty,
				UnitPrice:       s.Amount / float64(qty),
				Amount:          s.Amount,
			})
			invoice.Subtotal += s.Amount
			ref++
		}
	}

	admission, err := uc.AdmissionRepository.FindCurrentByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if admission != nil {
		invoice.AdmittingID = admission.AdmittingID

		promissory, err := uc.PromissoryUsecase.FindApprovedByAdmission(ctx, patientID, admission.AdmittingID)
		if err != nil {
			return nil, err
		}
		if promissory != nil {
			invoice.PromissoryAmount = promissory.Amount
		}
	}

	pending, err := uc.PaymentRepository.FindPendingByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		invoice.BillNumber = pending.BillNumber
		invoice.HasPendingBill = true
	} else {
		billNumber, err := utils.GenerateBillNumber(time.Now().Year())
		if err != nil {
			return nil, exceptions.ErrServerProcess(err)
		}
		invoice.BillNumber = billNumber
	}

	return invoice, nil
}

func (uc *billingUsecase) ListWorklist(ctx context.Context) ([]responses.WorklistEntry, error) {
	grouped, err := uc.TransactionRepository.FindUnpaidGroupedByPatient(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]responses.WorklistEntry, 0, len(grouped))
	for patientID, transactions := range grouped {
		entry := responses.WorklistEntry{
			PatientID:    patientID,
			Transactions: transactions,
		}
		for _, tx := range transactions {
			entry.Subtotal += tx.TotalAmount()
		}

		patient, err := uc.PatientDirectory.FindByPatientID(ctx, patientID)
		if err != nil {
			return nil, err
		}
		if patient != nil {
			entry.PatientName = patient.FullName()
		}

		admission, err := uc.AdmissionRepository.FindCurrentByPatient(ctx, patientID)
		if err != nil {
			return nil, err
		}
		if admission != nil {
			entry.AdmittingID = admission.AdmittingID

			promissory, err := uc.PromissoryUsecase.FindApprovedByAdmission(ctx, patientID, admission.AdmittingID)
			if err != nil {
				return nil, err
			}
			if promissory != nil {
				entry.PromissoryStatus = promissory.Status
			}
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

func (uc *billingUsecase) ConfirmForBilling(ctx context.Context, request *requests.ConfirmForBilling) (*models.Payment, error) {
	if len(request.TransactionIDs) == 0 {
		return nil, exceptions.ErrNoTransactionsProvided(nil)
	}

	patient, err := uc.PatientDirectory.FindByPatientID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}
	if patient.Archived {
		return nil, exceptions.ErrPatientArchived(nil)
	}

	admissionNumber := ""
	admission, err := uc.AdmissionRepository.FindCurrentByPatient(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if admission != nil {
		admissionNumber = admission.AdmittingID
	}

	var promissory *models.Promissory
	if admissionNumber != "" {
		promissory, err = uc.PromissoryUsecase.FindApprovedByAdmission(ctx, request.PatientID, admissionNumber)
		if err != nil {
			return nil, err
		}
	}

	billNumber := request.BillNumber
	if billNumber == "" {
		billNumber, err = utils.GenerateBillNumber(time.Now().Year())
		if err != nil {
			return nil, exceptions.ErrServerProcess(err)
		}
	}

	processedBy := request.ProcessedBy
	if processedBy == "" {
		processedBy = utils.GetStaffName(ctx)
	}

	now := time.Now()
	payment := &models.Payment{
		PatientID:        request.PatientID,
		TransactionIDs:   request.TransactionIDs,
		AdmissionNumber:  admissionNumber,
		Subtotal:         request.Subtotal,
		DiscountTypes:    request.DiscountTypes,
		DiscountRate:     request.DiscountRate,
		DiscountAmount:   request.DiscountAmount,
		PromissoryAmount: request.PromissoryAmount,
		FinalTotal:       request.FinalTotal,
		BillNumber:       billNumber,
		ProcessedBy:      processedBy,
		Status:           models.PaymentPending,
		PatientName:      patient.FullName(),
		PatientHRN:       patient.PatientID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if promissory != nil {
		id := promissory.ID
		payment.PromissoryID = &id
	}

	err = uc.TransactionManager.WithTransaction(ctx, func(sessCtx context.Context) error {
		for _, transactionID := range request.TransactionIDs {
			ok, err := uc.TransactionRepository.TransitionStatus(sessCtx, transactionID, models.TransactionForBilling, models.TransactionBillingConfirmed)
			if err != nil {
				return err
			}
			if !ok {
				return exceptions.ErrStateConflict(nil)
			}
		}

		_, err := uc.PaymentRepository.Insert(sessCtx, payment)
		return err
	})
	if err != nil {
		return nil, err
	}

	// pricing is persisted as supplied; an unbalanced breakdown is a data
	// quality signal, not a rejection
	if !payment.BalancedTotals() {
		uc.Log.Warn("payment totals do not balance",
			zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
			zap.String(constvars.LoggingBillNumberKey, payment.BillNumber),
			zap.Float64("subtotal", payment.Subtotal),
			zap.Float64("discount_amount", payment.DiscountAmount),
			zap.Float64("promissory_amount", payment.PromissoryAmount),
			zap.Float64("final_total", payment.FinalTotal),
		)
	}

	uc.AuditSink.Record(ctx, &models.AuditLog{
		Action:    "billing.confirm",
		Resource:  constvars.ResourceBilling,
		RefID:     payment.ID.Hex(),
		PatientID: request.PatientID,
		Actor:     processedBy,
		After: map[string]any{
			"transactionIds": request.TransactionIDs,
			"billNumber":     billNumber,
			"finalTotal":     request.FinalTotal,
		},
	})

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: constvars.DepartmentCashier,
		Event:      "BillingConfirmed",
		Message:    fmt.Sprintf("bill %s ready for payment, patient %s", billNumber, request.PatientID),
		PatientID:  request.PatientID,
		RefID:      payment.ID.Hex(),
	})

	utils.LogBusinessEvent(uc.Log, "BillingConfirmed", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPaymentIDKey, payment.ID.Hex()),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingBillNumberKey, billNumber),
		zap.Int("transaction_count", len(request.TransactionIDs)),
	)

	return payment, nil
}

func (uc *billingUsecase) CancelConfirmation(ctx context.Context, request *requests.CancelConfirmation) error {
	if len(request.TransactionIDs) == 0 {
		return exceptions.ErrNoTransactionsProvided(nil)
	}

	transactions, err := uc.TransactionRepository.FindByTransactionIDs(ctx, request.TransactionIDs)
	if err != nil {
		return err
	}
	for _, tx := range transactions {
		if tx.Status == models.TransactionPaymentVerified {
			return exceptions.ErrCancelAfterVerified(nil)
		}
	}

	err = uc.TransactionManager.WithTransaction(ctx, func(sessCtx context.Context) error {
		_, err := uc.PaymentRepository.DeletePendingByTransactionIDs(sessCtx, request.PatientID, request.TransactionIDs)
		if err != nil {
			return err
		}

		// reverting an already-reverted slip is a no-op
		for _, tx := range transactions {
			if tx.Status != models.TransactionBillingConfirmed {
				continue
			}
			_, err := uc.TransactionRepository.TransitionStatus(sessCtx, tx.TransactionID, models.TransactionBillingConfirmed, models.TransactionForBilling)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	err = uc.NotificationSink.ClearUnread(ctx, request.PatientID, constvars.DepartmentCashier)
	if err != nil {
		uc.Log.Warn("failed to clear cashier notifications",
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
			zap.Error(err),
		)
	}

	uc.AuditSink.Record(ctx, &models.AuditLog{
		Action:    "billing.cancel",
		Resource:  constvars.ResourceBilling,
		PatientID: request.PatientID,
		Actor:     utils.GetStaffName(ctx),
		Before:    map[string]any{"transactionIds": request.TransactionIDs},
	})

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: constvars.DepartmentBilling,
		Event:      "PaymentCancelled",
		Message:    fmt.Sprintf("billing confirmation cancelled for patient %s", request.PatientID),
		PatientID:  request.PatientID,
	})

	return nil
}

func (uc *billingUsecase) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return uc.PaymentRepository.FindAll(ctx)
}
