package charges

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/exceptions"
	"hims-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type chargeUsecase struct {
	TransactionRepository contracts.TransactionRepository
	VoidedRepository      contracts.VoidedTransactionRepository
	RedisRepository       contracts.RedisRepository
	NotificationSink      contracts.NotificationSink
	TransactionManager    contracts.TransactionManager
	Log                   *zap.Logger
}

var (
	chargeUsecaseInstance contracts.ChargeUsecase
	onceChargeUsecase     sync.Once
)

func NewChargeUsecase(
	transactionRepository contracts.TransactionRepository,
	voidedRepository contracts.VoidedTransactionRepository,
	redisRepository contracts.RedisRepository,
	notificationSink contracts.NotificationSink,
	transactionManager contracts.TransactionManager,
	logger *zap.Logger,
) contracts.ChargeUsecase {
	onceChargeUsecase.Do(func() {
		chargeUsecaseInstance = &chargeUsecase{
			TransactionRepository: transactionRepository,
			VoidedRepository:      voidedRepository,
			RedisRepository:       redisRepository,
			NotificationSink:      notificationSink,
			TransactionManager:    transactionManager,
			Log:                   logger,
		}
	})
	return chargeUsecaseInstance
}

func (uc *chargeUsecase) CreateChargeSlip(ctx context.Context, request *requests.CreateChargeSlip) (*models.Transaction, error) {
	services := normalizeServiceLines(request.Services)
	if len(services) == 0 {
		return nil, exceptions.ErrEmptyChargeSlip(nil)
	}

	replayKey := uc.replayKey(request, services)
	acquired, err := uc.RedisRepository.TrySetNX(ctx, replayKey, "pending", constvars.ChargeSlipReplayWindowSeconds*time.Second)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return uc.resolveReplay(ctx, replayKey)
	}

	transaction := &models.Transaction{
		AdmissionID: request.AdmissionID,
		PatientID:   request.PatientID,
		CategoryID:  request.CategoryID,
		Services:    services,
		Status:      models.TransactionForBilling,
		CreatedAt:   time.Now(),
	}

	for attempt := 0; attempt < constvars.IdentifierGenerationMaxAttempts; attempt++ {
		transaction.TransactionID = utils.GenerateTransactionID()
		existing, err := uc.TransactionRepository.FindByTransactionID(ctx, transaction.TransactionID)
		if err != nil {
			uc.releaseReplay(ctx, replayKey)
			return nil, err
		}
		if existing == nil {
			break
		}
		transaction.TransactionID = ""
	}
	if transaction.TransactionID == "" {
		uc.releaseReplay(ctx, replayKey)
		return nil, exceptions.ErrStateConflict(nil)
	}

	created, err := uc.TransactionRepository.Insert(ctx, transaction)
	if err != nil {
		uc.releaseReplay(ctx, replayKey)
		return nil, err
	}

	// replay window now resolves to the created slip
	_ = uc.RedisRepository.Set(ctx, replayKey, created.TransactionID, constvars.ChargeSlipReplayWindowSeconds*time.Second)

	uc.NotificationSink.Notify(ctx, &models.Notification{
		Department: constvars.DepartmentBilling,
		Event:      "ChargeCreated",
		Message:    fmt.Sprintf("new charge slip %s for patient %s", created.TransactionID, created.PatientID),
		PatientID:  created.PatientID,
		RefID:      created.TransactionID,
	})

	utils.LogBusinessEvent(uc.Log, "ChargeCreated", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingTransactionIDKey, created.TransactionID),
		zap.String(constvars.LoggingPatientIDKey, created.PatientID),
		zap.Float64("amount", created.TotalAmount()),
	)

	return created, nil
}

// releaseReplay frees the replay key when the slip was not created, so a
// retry of the same content is not held hostage for the rest of the window.
func (uc *chargeUsecase) releaseReplay(ctx context.Context, replayKey string) {
	if err := uc.RedisRepository.Delete(ctx, replayKey); err != nil {
		uc.Log.Warn("failed to release charge replay key",
			zap.String("replay_key", replayKey),
			zap.Error(err),
		)
	}
}

// resolveReplay maps a duplicate submission inside the replay window to the
// slip the first submission created.
func (uc *chargeUsecase) resolveReplay(ctx context.Context, replayKey string) (*models.Transaction, error) {
	val, err := uc.RedisRepository.Get(ctx, replayKey)
	if err != nil {
		return nil, err
	}
	transactionID := strings.Trim(val, `"`)
	if transactionID == "" || transactionID == "pending" {
		return nil, exceptions.ErrStateConflict(nil)
	}

	existing, err := uc.TransactionRepository.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrStateConflict(nil)
	}
	return existing, nil
}

func (uc *chargeUsecase) replayKey(request *requests.CreateChargeSlip, services []models.ServiceLine) string {
	serviceKeys := make([]string, 0, len(services))
	for _, s := range services {
		serviceKeys = append(serviceKeys, s.Type+"|"+s.Description+"|"+strconv.FormatFloat(s.Amount, 'f', 2, 64))
	}
	fingerprint := utils.ChargeSlipFingerprint(request.PatientID+":"+request.AdmissionID, request.CategoryID, serviceKeys)
	return fmt.Sprintf(constvars.ChargeReplayKeyFormat, fingerprint)
}

func (uc *chargeUsecase) VoidService(ctx context.Context, request *requests.VoidService) (*models.Transaction, error) {
	reason := models.VoidReason(request.Reason)
	if !reason.Valid() {
		return nil, exceptions.ErrInvalidVoidReason(nil)
	}

	transaction, err := uc.findVoidableTransaction(ctx, request.TransactionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, s := range transaction.Services {
		if s.ID.Hex() == request.ServiceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, exceptions.ErrNoServicesSelected(nil)
	}

	return uc.voidByIndexes(ctx, transaction, []int{idx}, reason, request.Department, request.VoidedBy)
}

// VoidServices voids a patient-scoped selection of lines that may span
// several slips. The pairs are grouped per slip and each slip is voided with
// the same guard and descending-index removal as a single void.
func (uc *chargeUsecase) VoidServices(ctx context.Context, request *requests.VoidServices) ([]models.Transaction, error) {
	reason := models.VoidReason(request.Reason)
	if !reason.Valid() {
		return nil, exceptions.ErrInvalidVoidReason(nil)
	}
	if len(request.Services) == 0 {
		return nil, exceptions.ErrNoServicesSelected(nil)
	}

	indexesByTransaction := map[string][]int{}
	order := make([]string, 0, len(request.Services))
	for _, selection := range request.Services {
		if _, seen := indexesByTransaction[selection.TransactionID]; !seen {
			order = append(order, selection.TransactionID)
		}
		indexesByTransaction[selection.TransactionID] = append(indexesByTransaction[selection.TransactionID], selection.ServiceIndex)
	}

	// resolve and guard every slip before the first write, so a bad
	// selection does not leave half the request applied
	transactions := make([]*models.Transaction, 0, len(order))
	for _, transactionID := range order {
		transaction, err := uc.findVoidableTransaction(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		if request.PatientID != "" && transaction.PatientID != request.PatientID {
			return nil, exceptions.ErrTransactionNotFound(nil)
		}
		for _, idx := range indexesByTransaction[transactionID] {
			if idx < 0 || idx >= len(transaction.Services) {
				return nil, exceptions.ErrNoServicesSelected(nil)
			}
		}
		transactions = append(transactions, transaction)
	}

	var remaining []models.Transaction
	for _, transaction := range transactions {
		updated, err := uc.voidByIndexes(ctx, transaction, indexesByTransaction[transaction.TransactionID], reason, request.Department, request.VoidedBy)
		if err != nil {
			return nil, err
		}
		if updated != nil {
			remaining = append(remaining, *updated)
		}
	}
	return remaining, nil
}

func (uc *chargeUsecase) findVoidableTransaction(ctx context.Context, transactionID string) (*models.Transaction, error) {
	transaction, err := uc.TransactionRepository.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}

	switch transaction.Status {
	case models.TransactionPaymentVerified:
		return nil, exceptions.ErrVoidAfterPaid(nil)
	case models.TransactionBillingConfirmed:
		return nil, exceptions.ErrVoidAfterConfirmed(nil)
	}
	if !transaction.Status.Voidable() {
		return nil, exceptions.ErrStateConflict(nil)
	}
	return transaction, nil
}

// voidByIndexes removes the selected lines (highest index first, so earlier
// removals do not shift later positions), archives each as a voided record,
// and deletes the slip when no lines remain. All writes share one session.
func (uc *chargeUsecase) voidByIndexes(ctx context.Context, transaction *models.Transaction, indexes []int, reason models.VoidReason, department, voidedBy string) (*models.Transaction, error) {
	if department == "" {
		department = constvars.DepartmentOPD
	}
	if voidedBy == "" {
		voidedBy = constvars.DefaultVoidedBy
	}

	sorted := make([]int, len(indexes))
	copy(sorted, indexes)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	now := time.Now()
	remaining := make([]models.ServiceLine, len(transaction.Services))
	copy(remaining, transaction.Services)

	voided := make([]models.VoidedTransaction, 0, len(sorted))
	seen := map[int]bool{}
	for _, idx := range sorted {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		voided = append(voided, models.VoidedTransaction{
			OriginalTransactionID: transaction.TransactionID,
			AdmissionID:           transaction.AdmissionID,
			PatientID:             transaction.PatientID,
			Department:            department,
			Service:               models.ArchiveService(remaining[idx]),
			VoidReason:            reason,
			VoidedAt:              now,
			VoidedBy:              voidedBy,
		})
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	err := uc.TransactionManager.WithTransaction(ctx, func(sessCtx context.Context) error {
		if len(remaining) == 0 {
			deleted, err := uc.TransactionRepository.DeleteIfStatus(sessCtx, transaction.TransactionID, models.TransactionForBilling)
			if err != nil {
				return err
			}
			if !deleted {
				return exceptions.ErrStateConflict(nil)
			}
		} else {
			replaced, err := uc.TransactionRepository.ReplaceServices(sessCtx, transaction.TransactionID, models.TransactionForBilling, remaining)
			if err != nil {
				return err
			}
			if !replaced {
				return exceptions.ErrStateConflict(nil)
			}
		}
		return uc.VoidedRepository.InsertMany(sessCtx, voided)
	})
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "ServiceVoided", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingTransactionIDKey, transaction.TransactionID),
		zap.String(constvars.LoggingPatientIDKey, transaction.PatientID),
		zap.Int("voided_count", len(voided)),
		zap.String("reason", string(reason)),
	)

	if len(remaining) == 0 {
		return nil, nil
	}
	transaction.Services = remaining
	return transaction, nil
}

func (uc *chargeUsecase) ListVoided(ctx context.Context, department string) ([]models.VoidedTransaction, error) {
	if department == "" {
		return uc.VoidedRepository.FindAll(ctx)
	}
	return uc.VoidedRepository.FindByDepartment(ctx, department)
}

func (uc *chargeUsecase) ListByPatient(ctx context.Context, patientID string) ([]models.Transaction, error) {
	return uc.TransactionRepository.FindByPatient(ctx, patientID)
}

// normalizeServiceLines drops rows the charge capture UI submits blank:
// anything missing a type, a description, or a positive amount.
func normalizeServiceLines(lines []requests.ChargeServiceLine) []models.ServiceLine {
	var services []models.ServiceLine
	for _, line := range lines {
		if strings.TrimSpace(line.Type) == "" || strings.TrimSpace(line.Description) == "" || line.Amount <= 0 {
			continue
		}
		qty := line.Qty
		if qty <= 0 {
			qty = 1
		}
		services = append(services, models.ServiceLine{
			ID:              primitive.NewObjectID(),
			Type:            strings.TrimSpace(line.Type),
			Description:     strings.TrimSpace(line.Description),
			ProcedureAmount: line.ProcedureAmount,
			ItemUsed:        line.ItemUsed,
			ItemAmount:      line.ItemAmount,
			Qty:             qty,
			Amount:          line.Amount,
		})
	}
	return services
}
