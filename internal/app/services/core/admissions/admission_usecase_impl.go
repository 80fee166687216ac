package admissions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/exceptions"
	"hims-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type admissionUsecase struct {
	AdmissionRepository         contracts.AdmissionRepository
	DischargedPatientRepository contracts.DischargedPatientRepository
	ProcessedPatientRepository  contracts.ProcessedPatientRepository
	TransactionRepository       contracts.TransactionRepository
	MedicalRepository           contracts.MedicalRepository
	PatientDirectory            contracts.PatientDirectory
	NotificationSink            contracts.NotificationSink
	AuditSink                   contracts.AuditSink
	TransactionManager          contracts.TransactionManager
	Log                         *zap.Logger
}

var (
	admissionUsecaseInstance contracts.AdmissionUsecase
	onceAdmissionUsecase     sync.Once
)

func NewAdmissionUsecase(
	admissionRepository contracts.AdmissionRepository,
	dischargedPatientRepository contracts.DischargedPatientRepository,
	processedPatientRepository contracts.ProcessedPatientRepository,
	transactionRepository contracts.TransactionRepository,
	medicalRepository contracts.MedicalRepository,
	patientDirectory contracts.PatientDirectory,
	notificationSink contracts.NotificationSink,
	auditSink contracts.AuditSink,
	transactionManager contracts.TransactionManager,
	logger *zap.Logger,
) contracts.AdmissionUsecase {
	onceAdmissionUsecase.Do(func() {
		admissionUsecaseInstance = &admissionUsecase{
			AdmissionRepository:         admissionRepository,
			DischargedPatientRepository: dischargedPatientRepository,
			ProcessedPatientRepository:  processedPatientRepository,
			TransactionRepository:       transactionRepository,
			MedicalRepository:           medicalRepository,
			PatientDirectory:            patientDirectory,
			NotificationSink:            notificationSink,
			AuditSink:                   auditSink,
			TransactionManager:          transactionManager,
			Log:                         logger,
		}
	})
	return admissionUsecaseInstance
}

func (uc *admissionUsecase) Admit(ctx context.Context, request *requests.AdmitPatient) (*models.Admission, error) {
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

	hasRecord, err := uc.MedicalRepository.HasRecord(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if !hasRecord {
		return nil, exceptions.ErrMedicalRecordNotFound(nil)
	}

	current, err := uc.AdmissionRepository.FindCurrentByPatient(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, exceptions.ErrPatientAlreadyAdmitted(nil)
	}

	// the processed flag outlives the admission document during a discharge
	// in flight; it blocks re-admission until the discharge settles
	processed, err := uc.ProcessedPatientRepository.IsProcessed(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if processed {
		return nil, exceptions.ErrPatientAlreadyAdmitted(nil)
	}

	now := time.Now()
	admission := &models.Admission{
		AdmittingID:  utils.GenerateAdmittingID(now),
		PatientType:  request.PatientType,
		PatientID:    request.PatientID,
		FullName:     patient.FullName(),
		Birthdate:    patient.Birthdate,
		Category:     request.Category,
		WalkIn:       request.WalkIn,
		ReferredBy:   request.ReferredBy,
		AdmittedBy:   request.AdmittedBy,
		DateAdmitted: now,
		AdmittedAt:   now,
	}

	admission, err = uc.AdmissionRepository.Insert(ctx, admission)
	if err != nil {
		return nil, err
	}

	if err := uc.ProcessedPatientRepository.MarkProcessed(ctx, request.PatientID); err != nil {
		uc.Log.Warn("failed to flag patient as processed",
			zap.String(constvars.LoggingPatientIDKey, request.PatientID),
			zap.Error(err),
		)
	}

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: admission.Category,
		Event:      "PatientAdmitted",
		Message:    fmt.Sprintf("patient %s admitted under %s", admission.FullName, admission.AdmittingID),
		PatientID:  admission.PatientID,
		RefID:      admission.AdmittingID,
	})

	utils.LogBusinessEvent(uc.Log, "PatientAdmitted", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPatientIDKey, admission.PatientID),
		zap.String(constvars.LoggingAdmissionIDKey, admission.AdmittingID),
		zap.String("category", admission.Category),
	)

	return admission, nil
}

func (uc *admissionUsecase) MarkCleared(ctx context.Context, request *requests.MarkCleared) (*models.Admission, error) {
	admission, err := uc.AdmissionRepository.FindByID(ctx, request.AdmissionID)
	if err != nil {
		return nil, err
	}
	if admission == nil {
		return nil, exceptions.ErrAdmissionNotFound(nil)
	}

	pending, err := uc.TransactionRepository.CountByAdmissionNotInStatus(ctx, admission.AdmittingID, models.TransactionPaymentVerified)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, exceptions.ErrUnverifiedTransactions(nil, pending)
	}

	now := time.Now()
	ok, err := uc.AdmissionRepository.MarkCleared(ctx, admission.AdmittingID, request.ClearedBy, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, exceptions.ErrStateConflict(nil)
	}

	admission.IsCleared = true
	admission.ClearedAt = &now
	admission.ClearedBy = request.ClearedBy

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: admission.Category,
		Event:      "AdmissionCleared",
		Message:    fmt.Sprintf("admission %s cleared for discharge", admission.AdmittingID),
		PatientID:  admission.PatientID,
		RefID:      admission.AdmittingID,
	})

	utils.LogBusinessEvent(uc.Log, "AdmissionCleared", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPatientIDKey, admission.PatientID),
		zap.String(constvars.LoggingAdmissionIDKey, admission.AdmittingID),
	)

	return admission, nil
}

func (uc *admissionUsecase) CompleteDischarge(ctx context.Context, request *requests.CompleteDischarge) (*models.DischargedPatient, error) {
	admission, err := uc.AdmissionRepository.FindByID(ctx, request.AdmissionID)
	if err != nil {
		return nil, err
	}
	if admission == nil {
		return nil, exceptions.ErrAdmissionNotFound(nil)
	}
	if !admission.IsCleared {
		return nil, exceptions.ErrAdmissionNotCleared(nil)
	}

	// a missing or failing medical record never blocks discharge; the
	// archive just carries no diagnoses
	diagnoses, err := uc.MedicalRepository.FindDiagnosesSince(ctx, admission.PatientID, admission.AdmittedAt)
	if err != nil {
		uc.Log.Warn("failed to load diagnoses for discharge archive",
			zap.String(constvars.LoggingPatientIDKey, admission.PatientID),
			zap.Error(err),
		)
		diagnoses = nil
	}
	diagnosisSnapshots := make([]models.DiagnosisSnapshot, 0, len(diagnoses))
	for _, d := range diagnoses {
		diagnosisSnapshots = append(diagnosisSnapshots, models.SnapshotDiagnosis(d))
	}

	now := time.Now()
	discharged := &models.DischargedPatient{
		AdmittingID:  admission.AdmittingID,
		PatientID:    admission.PatientID,
		FullName:     admission.FullName,
		Birthdate:    admission.Birthdate,
		Department:   admission.Category,
		AdmittedAt:   admission.AdmittedAt,
		DischargedAt: now,
		DischargedBy: request.DischargedBy,
		ClearedBy:    admission.ClearedBy,
		Notes:        request.Notes,
		Diagnoses:    diagnosisSnapshots,
		CreatedAt:    now,
	}

	err = utils.LogOperation(uc.Log, "admission.discharge", utils.GetRequestID(ctx), func() error {
		return uc.TransactionManager.WithTransaction(ctx, func(sessCtx context.Context) error {
			transactions, err := uc.TransactionRepository.FindByAdmission(sessCtx, admission.AdmittingID)
			if err != nil {
				return err
			}
			snapshots := make([]models.TransactionSnapshot, 0, len(transactions))
			for _, tx := range transactions {
				snapshots = append(snapshots, models.SnapshotTransaction(tx))
			}
			discharged.Transactions = snapshots

			if _, err := uc.DischargedPatientRepository.Insert(sessCtx, discharged); err != nil {
				return err
			}
			if err := uc.TransactionRepository.DeleteByAdmission(sessCtx, admission.AdmittingID); err != nil {
				return err
			}
			if err := uc.AdmissionRepository.Delete(sessCtx, admission.AdmittingID); err != nil {
				return err
			}
			return uc.ProcessedPatientRepository.ClearProcessed(sessCtx, admission.PatientID)
		})
	})
	if err != nil {
		return nil, err
	}

	// archived diagnoses are pruned from the live record; a pruning failure
	// leaves duplicates behind but never undoes the discharge
	if len(diagnosisSnapshots) > 0 {
		if err := uc.MedicalRepository.RemoveDiagnosesSince(ctx, admission.PatientID, admission.AdmittedAt); err != nil {
			uc.Log.Warn("failed to prune archived diagnoses",
				zap.String(constvars.LoggingPatientIDKey, admission.PatientID),
				zap.Error(err),
			)
		}
	}

	uc.AuditSink.Record(ctx, &models.AuditLog{
		Action:    "admission.discharge",
		Resource:  constvars.ResourceAdmissions,
		RefID:     admission.AdmittingID,
		PatientID: admission.PatientID,
		Actor:     request.DischargedBy,
		Before:    map[string]any{"discharged": false},
		After:     map[string]any{"discharged": true, "transactions": len(discharged.Transactions)},
	})

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: admission.Category,
		Event:      "PatientDischarged",
		Message:    fmt.Sprintf("patient %s discharged from %s", admission.FullName, admission.AdmittingID),
		PatientID:  admission.PatientID,
		RefID:      admission.AdmittingID,
	})

	utils.LogBusinessEvent(uc.Log, "PatientDischarged", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPatientIDKey, admission.PatientID),
		zap.String(constvars.LoggingAdmissionIDKey, admission.AdmittingID),
		zap.Int("archived_transactions", len(discharged.Transactions)),
	)

	return discharged, nil
}

func (uc *admissionUsecase) CancelAdmission(ctx context.Context, admissionID string) error {
	admission, err := uc.AdmissionRepository.FindByID(ctx, admissionID)
	if err != nil {
		return err
	}
	if admission == nil {
		return exceptions.ErrAdmissionNotFound(nil)
	}

	charges, err := uc.TransactionRepository.CountByAdmission(ctx, admission.AdmittingID)
	if err != nil {
		return err
	}
	if charges > 0 {
		return exceptions.ErrAdmissionHasProcessing(nil)
	}

	diagnoses, err := uc.MedicalRepository.FindDiagnosesSince(ctx, admission.PatientID, admission.AdmittedAt)
	if err != nil {
		return err
	}
	if len(diagnoses) > 0 {
		return exceptions.ErrAdmissionHasProcessing(nil)
	}

	if err := uc.AdmissionRepository.Delete(ctx, admission.AdmittingID); err != nil {
		return err
	}
	if err := uc.ProcessedPatientRepository.ClearProcessed(ctx, admission.PatientID); err != nil {
		uc.Log.Warn("failed to clear processed flag after cancel",
			zap.String(constvars.LoggingPatientIDKey, admission.PatientID),
			zap.Error(err),
		)
	}

	uc.AuditSink.Record(ctx, &models.AuditLog{
		Action:    "admission.cancel",
		Resource:  constvars.ResourceAdmissions,
		RefID:     admission.AdmittingID,
		PatientID: admission.PatientID,
		Actor:     utils.GetStaffName(ctx),
		Before:    map[string]any{"admittingId": admission.AdmittingID},
	})

	utils.LogBusinessEvent(uc.Log, "AdmissionCancelled", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingPatientIDKey, admission.PatientID),
		zap.String(constvars.LoggingAdmissionIDKey, admission.AdmittingID),
	)

	return nil
}

func (uc *admissionUsecase) AssignDischargeNurse(ctx context.Context, request *requests.AssignDischargeNurse) (*models.Admission, error) {
	admission, err := uc.AdmissionRepository.FindByID(ctx, request.AdmissionID)
	if err != nil {
		return nil, err
	}
	if admission == nil {
		return nil, exceptions.ErrAdmissionNotFound(nil)
	}

	ok, err := uc.AdmissionRepository.SetDischargeNurse(ctx, admission.AdmittingID, request.DischargeBy)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, exceptions.ErrStateConflict(nil)
	}

	admission.DischargeBy = request.DischargeBy
	return admission, nil
}

func (uc *admissionUsecase) ListAdmitted(ctx context.Context) ([]models.Admission, error) {
	return uc.AdmissionRepository.FindAdmitted(ctx)
}

func (uc *admissionUsecase) ListDischarged(ctx context.Context, page, pageSize int) ([]models.DischargedPatient, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = constvars.DefaultPageSize
	}
	if pageSize > constvars.MaxPageSize {
		pageSize = constvars.MaxPageSize
	}
	return uc.DischargedPatientRepository.FindPage(ctx, page, pageSize)
}
