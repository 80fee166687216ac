package promissories

import (
	"context"
	"fmt"
	"path/filepath"
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

type promissoryUsecase struct {
	PromissoryRepository  contracts.PromissoryRepository
	PatientDirectory      contracts.PatientDirectory
	AdmissionRepository   contracts.AdmissionRepository
	TransactionRepository contracts.TransactionRepository
	Storage               contracts.Storage
	NotificationSink      contracts.NotificationSink
	AuditSink             contracts.AuditSink
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	promissoryUsecaseInstance contracts.PromissoryUsecase
	oncePromissoryUsecase     sync.Once
)

func NewPromissoryUsecase(
	promissoryRepository contracts.PromissoryRepository,
	patientDirectory contracts.PatientDirectory,
	admissionRepository contracts.AdmissionRepository,
	transactionRepository contracts.TransactionRepository,
	storage contracts.Storage,
	notificationSink contracts.NotificationSink,
	auditSink contracts.AuditSink,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PromissoryUsecase {
	oncePromissoryUsecase.Do(func() {
		promissoryUsecaseInstance = &promissoryUsecase{
			PromissoryRepository:  promissoryRepository,
			PatientDirectory:      patientDirectory,
			AdmissionRepository:   admissionRepository,
			TransactionRepository: transactionRepository,
			Storage:               storage,
			NotificationSink:      notificationSink,
			AuditSink:             auditSink,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return promissoryUsecaseInstance
}

func (uc *promissoryUsecase) Submit(ctx context.Context, request *requests.SubmitPromissory) (*models.Promissory, error) {
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

	admission, err := uc.AdmissionRepository.FindCurrentByPatient(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if admission == nil {
		return nil, exceptions.ErrAdmissionNotFound(nil)
	}

	open, err := uc.PromissoryRepository.FindOpenByAdmission(ctx, request.PatientID, admission.AdmittingID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, exceptions.ErrPromissoryAlreadyOpen(nil)
	}

	unpaid, err := uc.TransactionRepository.FindUnpaidByPatient(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	transactionIDs := make([]string, 0, len(unpaid))
	for _, tx := range unpaid {
		transactionIDs = append(transactionIDs, tx.TransactionID)
	}

	now := time.Now()
	promissory := &models.Promissory{
		PatientID:       request.PatientID,
		TransactionIDs:  transactionIDs,
		AdmissionNumber: admission.AdmittingID,
		DateIssued:      now,
		Status:          models.PromissoryPending,
		Amount:          request.Amount,
		Notes:           request.Notes,
	}

	if request.PaymentExpected != "" {
		expected, err := time.Parse("2006-01-02", request.PaymentExpected)
		if err == nil {
			promissory.PaymentExpected = &expected
		}
	}

	// evidence is optional and its upload is best-effort
	if request.Evidence != nil {
		objectName := fmt.Sprintf("%s_%d%s", request.PatientID, now.Unix(), filepath.Ext(request.EvidenceName))
		stored, err := uc.Storage.UploadFile(ctx, request.Evidence, objectName, uc.InternalConfig.Billing.EvidenceBucketName)
		if err != nil {
			uc.Log.Warn("failed to store promissory evidence",
				zap.String(constvars.LoggingPatientIDKey, request.PatientID),
				zap.Error(err),
			)
		} else {
			promissory.ImagePath = stored
		}
	}

	created, err := uc.PromissoryRepository.Insert(ctx, promissory)
	if err != nil {
		return nil, err
	}

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: constvars.DepartmentPromissory,
		Event:      "PromissorySubmitted",
		Message:    fmt.Sprintf("promissory submitted for patient %s", created.PatientID),
		PatientID:  created.PatientID,
		RefID:      created.ID.Hex(),
	})

	utils.LogBusinessEvent(uc.Log, "PromissorySubmitted", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPromissoryIDKey, created.ID.Hex()),
		zap.String(constvars.LoggingPatientIDKey, created.PatientID),
		zap.Float64("amount", created.Amount),
	)

	return created, nil
}

func (uc *promissoryUsecase) UpdateStatus(ctx context.Context, request *requests.UpdatePromissoryStatus) (*models.Promissory, error) {
	promissory, err := uc.PromissoryRepository.FindByID(ctx, request.PromissoryID)
	if err != nil {
		return nil, err
	}
	if promissory == nil {
		return nil, exceptions.ErrPromissoryNotFound(nil)
	}

	target := models.PromissoryStatus(request.Status)
	if !promissory.Status.CanTransition(target) {
		return nil, exceptions.ErrPromissoryBadTransition(nil, string(promissory.Status), string(target))
	}

	actedBy := request.ActedBy
	if actedBy == "" {
		actedBy = constvars.DefaultApprovedBy
	}

	before := *promissory
	now := time.Now()
	updated := *promissory
	updated.Status = target

	switch target {
	case models.PromissoryApproved:
		updated.DateApproved = &now
		updated.ApprovedBy = actedBy
		updated.DateRejected = nil
		updated.RejectedBy = ""
		updated.RejectionReason = ""
	case models.PromissoryRejected:
		updated.DateRejected = &now
		updated.RejectedBy = actedBy
		updated.RejectionReason = request.RejectionReason
		updated.DateApproved = nil
		updated.ApprovedBy = ""
	}

	ok, err := uc.PromissoryRepository.UpdateIfStatus(ctx, request.PromissoryID, promissory.Status, &updated)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, exceptions.ErrStateConflict(nil)
	}

	uc.AuditSink.Record(ctx, &models.AuditLog{
		Action:    "promissory.status",
		Resource:  constvars.ResourcePromissories,
		RefID:     request.PromissoryID,
		PatientID: promissory.PatientID,
		Actor:     actedBy,
		Before:    map[string]any{"status": before.Status},
		After:     map[string]any{"status": updated.Status},
	})

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: constvars.DepartmentBilling,
		Event:      "Promissory" + string(target),
		Message:    fmt.Sprintf("promissory for patient %s is now %s", promissory.PatientID, target),
		PatientID:  promissory.PatientID,
		RefID:      request.PromissoryID,
	})

	return &updated, nil
}

func (uc *promissoryUsecase) UpdateAmount(ctx context.Context, request *requests.UpdatePromissoryAmount) (*models.Promissory, error) {
	promissory, err := uc.PromissoryRepository.FindByID(ctx, request.PromissoryID)
	if err != nil {
		return nil, err
	}
	if promissory == nil {
		return nil, exceptions.ErrPromissoryNotFound(nil)
	}
	if promissory.Status != models.PromissoryPending {
		return nil, exceptions.ErrPromissoryNotPending(nil)
	}

	before := promissory.Amount
	updated := *promissory
	updated.Amount = request.Amount

	ok, err := uc.PromissoryRepository.UpdateIfStatus(ctx, request.PromissoryID, models.PromissoryPending, &updated)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, exceptions.ErrStateConflict(nil)
	}

	uc.AuditSink.Record(ctx, &models.AuditLog{
		Action:    "promissory.amount",
		Resource:  constvars.ResourcePromissories,
		RefID:     request.PromissoryID,
		PatientID: promissory.PatientID,
		Actor:     utils.GetStaffName(ctx),
		Before:    map[string]any{"amount": before},
		After:     map[string]any{"amount": request.Amount},
	})

	return &updated, nil
}

func (uc *promissoryUsecase) FindAll(ctx context.Context) ([]models.Promissory, error) {
	return uc.PromissoryRepository.FindAll(ctx)
}

func (uc *promissoryUsecase) FindByID(ctx context.Context, promissoryID string) (*responses.PromissoryDetail, error) {
	promissory, err := uc.PromissoryRepository.FindByID(ctx, promissoryID)
	if err != nil {
		return nil, err
	}
	if promissory == nil {
		return nil, exceptions.ErrPromissoryNotFound(nil)
	}

	detail := &responses.PromissoryDetail{Promissory: *promissory}

	if len(promissory.TransactionIDs) > 0 {
		transactions, err := uc.TransactionRepository.FindByTransactionIDs(ctx, promissory.TransactionIDs)
		if err != nil {
			return nil, err
		}
		for _, tx := range transactions {
			if tx.Status != models.TransactionPaymentVerified {
				detail.Outstanding += tx.TotalAmount()
			}
		}
	}

	patient, err := uc.PatientDirectory.FindByPatientID(ctx, promissory.PatientID)
	if err == nil && patient != nil {
		detail.PatientName = patient.FullName()
	}

	if promissory.ImagePath != "" {
		expiry := time.Duration(uc.InternalConfig.Billing.EvidenceUrlExpiryInMinutes) * time.Minute
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Billing.EvidenceBucketName, promissory.ImagePath, expiry)
		if err != nil {
			uc.Log.Warn("failed to presign promissory evidence", zap.Error(err))
		} else {
			detail.ImageURL = url
		}
	}

	return detail, nil
}

// FindApprovedByAdmission returns the promissory billing may apply: the most
// recently approved one for the admission. More than one approved row is a
// data fault; it is logged and the newest wins.
func (uc *promissoryUsecase) FindApprovedByAdmission(ctx context.Context, patientID, admissionNumber string) (*models.Promissory, error) {
	approved, err := uc.PromissoryRepository.FindByStatusForAdmission(ctx, patientID, admissionNumber, models.PromissoryApproved)
	if err != nil {
		return nil, err
	}
	if len(approved) == 0 {
		return nil, nil
	}

	if len(approved) > 1 {
		uc.Log.Warn("multiple approved promissories for one admission",
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.String(constvars.LoggingAdmittingIDKey, admissionNumber),
			zap.Int("count", len(approved)),
		)
	}

	newest := approved[0]
	for _, p := range approved[1:] {
		if p.DateApproved != nil && (newest.DateApproved == nil || p.DateApproved.After(*newest.DateApproved)) {
			newest = p
		}
	}
	return &newest, nil
}
