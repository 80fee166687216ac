package charges

import (
	"context"
	"errors"
	"testing"
	"time"

	"hims-service/internal/app/contracts"
	"hims-service/internal/app/models"
	"hims-service/internal/pkg/constvars"
	"hims-service/internal/pkg/dto/requests"
	"hims-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeTransactionRepo struct {
	contracts.TransactionRepository
	byID       map[string]*models.Transaction
	inserted   []*models.Transaction
	replaced   []models.ServiceLine
	deletedIDs []string
	insertErr  error
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byID: map[string]*models.Transaction{}}
}

func (f *fakeTransactionRepo) Insert(ctx context.Context, transaction *models.Transaction) (*models.Transaction, error) {
	if f.insertErr != nil {
		err := f.insertErr
		f.insertErr = nil
		return nil, err
	}
	f.inserted = append(f.inserted, transaction)
	f.byID[transaction.TransactionID] = transaction
	return transaction, nil
}

func (f *fakeTransactionRepo) FindByTransactionID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	return f.byID[transactionID], nil
}

func (f *fakeTransactionRepo) ReplaceServices(ctx context.Context, transactionID string, requiredStatus models.TransactionStatus, services []models.ServiceLine) (bool, error) {
	tx, ok := f.byID[transactionID]
	if !ok || tx.Status != requiredStatus {
		return false, nil
	}
	f.replaced = services
	tx.Services = services
	return true, nil
}

func (f *fakeTransactionRepo) DeleteIfStatus(ctx context.Context, transactionID string, requiredStatus models.TransactionStatus) (bool, error) {
	tx, ok := f.byID[transactionID]
	if !ok || tx.Status != requiredStatus {
		return false, nil
	}
	delete(f.byID, transactionID)
	f.deletedIDs = append(f.deletedIDs, transactionID)
	return true, nil
}

type fakeVoidedRepo struct {
	contracts.VoidedTransactionRepository
	voided []models.VoidedTransaction
}

func (f *fakeVoidedRepo) InsertMany(ctx context.Context, voided []models.VoidedTransaction) error {
	f.voided = append(f.voided, voided...)
	return nil
}

type fakeRedisRepo struct {
	contracts.RedisRepository
	store      map[string]string
	nxAcquired bool
}

func newFakeRedisRepo(nxAcquired bool) *fakeRedisRepo {
	return &fakeRedisRepo{store: map[string]string{}, nxAcquired: nxAcquired}
}

func (f *fakeRedisRepo) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if !f.nxAcquired {
		return false, nil
	}
	if _, held := f.store[key]; held {
		return false, nil
	}
	f.store[key] = value.(string)
	return true, nil
}

func (f *fakeRedisRepo) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	f.store[key] = value.(string)
	return nil
}

func (f *fakeRedisRepo) Get(ctx context.Context, key string) (string, error) {
	return f.store[key], nil
}

func (f *fakeRedisRepo) Delete(ctx context.Context, key string) error {
	delete(f.store, key)
	return nil
}

type fakeNotificationSink struct {
	notified []models.Notification
}

func (f *fakeNotificationSink) Notify(ctx context.Context, notification *models.Notification) {
	f.notified = append(f.notified, *notification)
}

func (f *fakeNotificationSink) ClearUnread(ctx context.Context, patientID, department string) error {
	return nil
}

func (f *fakeNotificationSink) FindUnread(ctx context.Context, department string) ([]models.Notification, error) {
	return nil, nil
}

type fakeTxnManager struct{}

func (f *fakeTxnManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newChargeUsecaseForTest(txRepo *fakeTransactionRepo, voidedRepo *fakeVoidedRepo, redisRepo *fakeRedisRepo) (*chargeUsecase, *fakeNotificationSink) {
	sink := &fakeNotificationSink{}
	return &chargeUsecase{
		TransactionRepository: txRepo,
		VoidedRepository:      voidedRepo,
		RedisRepository:       redisRepo,
		NotificationSink:      sink,
		TransactionManager:    &fakeTxnManager{},
		Log:                   zap.NewNop(),
	}, sink
}

func validChargeSlipRequest() *requests.CreateChargeSlip {
	return &requests.CreateChargeSlip{
		PatientID:   "P0001",
		AdmissionID: "ADMT1ABC",
		CategoryID:  "LAB",
		Services: []requests.ChargeServiceLine{
			{Type: "Laboratory", Description: "CBC", Qty: 1, Amount: 150},
			{Type: "Laboratory", Description: "Urinalysis", Qty: 2, Amount: 160},
		},
	}
}

func TestCreateChargeSlip(t *testing.T) {
	t.Run("creates slip in For Billing with generated id", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		redisRepo := newFakeRedisRepo(true)
		uc, sink := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, redisRepo)

		created, err := uc.CreateChargeSlip(context.Background(), validChargeSlipRequest())
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, models.TransactionForBilling, created.Status)
		assert.Len(t, created.TransactionID, 8)
		assert.Len(t, created.Services, 2)
		assert.Equal(t, float64(310), created.TotalAmount())
		require.Len(t, sink.notified, 1)
		assert.Equal(t, constvars.DepartmentBilling, sink.notified[0].Department)
	})

	t.Run("drops blank lines and defaults qty to one", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		uc, _ := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, newFakeRedisRepo(true))

		request := validChargeSlipRequest()
		request.Services = append(request.Services,
			requests.ChargeServiceLine{Type: "", Description: "no type", Amount: 50},
			requests.ChargeServiceLine{Type: "Pharmacy", Description: "free sample", Amount: 0},
			requests.ChargeServiceLine{Type: "Pharmacy", Description: "Paracetamol", Qty: 0, Amount: 20},
		)

		created, err := uc.CreateChargeSlip(context.Background(), request)
		require.NoError(t, err)

		require.Len(t, created.Services, 3)
		assert.Equal(t, 1, created.Services[2].Qty)
	})

	t.Run("rejects slip where every line is blank", func(t *testing.T) {
		uc, _ := newChargeUsecaseForTest(newFakeTransactionRepo(), &fakeVoidedRepo{}, newFakeRedisRepo(true))

		request := validChargeSlipRequest()
		request.Services = []requests.ChargeServiceLine{
			{Type: "", Description: "", Amount: 0},
			{Type: "Laboratory", Description: "", Amount: 100},
		}

		_, err := uc.CreateChargeSlip(context.Background(), request)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("stores the created id under the replay key", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		redisRepo := newFakeRedisRepo(true)
		uc, _ := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, redisRepo)

		created, err := uc.CreateChargeSlip(context.Background(), validChargeSlipRequest())
		require.NoError(t, err)

		var stored string
		for _, v := range redisRepo.store {
			stored = v
		}
		assert.Equal(t, created.TransactionID, stored)
	})
}

func TestCreateChargeSlipReplay(t *testing.T) {
	t.Run("duplicate inside window returns the original slip", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		firstRedis := newFakeRedisRepo(true)
		uc, _ := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, firstRedis)

		original, err := uc.CreateChargeSlip(context.Background(), validChargeSlipRequest())
		require.NoError(t, err)

		replayRedis := newFakeRedisRepo(false)
		replayRedis.store = firstRedis.store
		replayUc, _ := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, replayRedis)

		replayed, err := replayUc.CreateChargeSlip(context.Background(), validChargeSlipRequest())
		require.NoError(t, err)

		assert.Equal(t, original.TransactionID, replayed.TransactionID)
		assert.Len(t, txRepo.inserted, 1, "replay should not insert a second slip")
	})

	t.Run("failed insert releases the window so a retry succeeds", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		txRepo.insertErr = errors.New("write concern error")
		redisRepo := newFakeRedisRepo(true)
		uc, _ := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, redisRepo)

		_, err := uc.CreateChargeSlip(context.Background(), validChargeSlipRequest())
		require.Error(t, err)
		assert.Empty(t, redisRepo.store, "replay key should be released when nothing was created")

		created, err := uc.CreateChargeSlip(context.Background(), validChargeSlipRequest())
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Len(t, txRepo.inserted, 1)
	})

	t.Run("duplicate while first submission is still pending conflicts", func(t *testing.T) {
		redisRepo := newFakeRedisRepo(false)
		uc, _ := newChargeUsecaseForTest(newFakeTransactionRepo(), &fakeVoidedRepo{}, redisRepo)

		request := validChargeSlipRequest()
		redisRepo.store[uc.replayKey(request, normalizeServiceLines(request.Services))] = "pending"

		_, err := uc.CreateChargeSlip(context.Background(), request)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})
}

func seedTransaction(txRepo *fakeTransactionRepo, status models.TransactionStatus, lines int) *models.Transaction {
	services := make([]models.ServiceLine, 0, lines)
	for i := 0; i < lines; i++ {
		services = append(services, models.ServiceLine{
			ID:          primitive.NewObjectID(),
			Type:        "Laboratory",
			Description: "Service",
			Qty:         1,
			Amount:      100,
		})
	}
	tx := &models.Transaction{
		TransactionID: "AB12CD34",
		AdmissionID:   "ADMT1ABC",
		PatientID:     "P0001",
		Services:      services,
		Status:        status,
		CreatedAt:     time.Now(),
	}
	txRepo.byID[tx.TransactionID] = tx
	return tx
}

func TestVoidService(t *testing.T) {
	t.Run("removes the selected line and archives it", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		voidedRepo := &fakeVoidedRepo{}
		tx := seedTransaction(txRepo, models.TransactionForBilling, 2)
		uc, _ := newChargeUsecaseForTest(txRepo, voidedRepo, newFakeRedisRepo(true))

		updated, err := uc.VoidService(context.Background(), &requests.VoidService{
			Reason:        string(models.VoidReasonWrongPunch),
			TransactionID: tx.TransactionID,
			ServiceID:     tx.Services[0].ID.Hex(),
			VoidedBy:      "Nurse Cruz",
		})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Len(t, updated.Services, 1)
		require.Len(t, voidedRepo.voided, 1)
		assert.Equal(t, tx.TransactionID, voidedRepo.voided[0].OriginalTransactionID)
		assert.Equal(t, models.VoidReasonWrongPunch, voidedRepo.voided[0].VoidReason)
		assert.Equal(t, "Nurse Cruz", voidedRepo.voided[0].VoidedBy)
	})

	t.Run("deletes the slip when the last line is voided", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		voidedRepo := &fakeVoidedRepo{}
		tx := seedTransaction(txRepo, models.TransactionForBilling, 1)
		uc, _ := newChargeUsecaseForTest(txRepo, voidedRepo, newFakeRedisRepo(true))

		updated, err := uc.VoidService(context.Background(), &requests.VoidService{
			Reason:        string(models.VoidReasonChangeOfMind),
			TransactionID: tx.TransactionID,
			ServiceID:     tx.Services[0].ID.Hex(),
		})
		require.NoError(t, err)

		assert.Nil(t, updated)
		assert.Contains(t, txRepo.deletedIDs, tx.TransactionID)
		assert.Len(t, voidedRepo.voided, 1)
	})

	t.Run("rejects an unknown reason", func(t *testing.T) {
		uc, _ := newChargeUsecaseForTest(newFakeTransactionRepo(), &fakeVoidedRepo{}, newFakeRedisRepo(true))

		_, err := uc.VoidService(context.Background(), &requests.VoidService{
			Reason:        "Typo",
			TransactionID: "AB12CD34",
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("blocks voiding a paid transaction", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		tx := seedTransaction(txRepo, models.TransactionPaymentVerified, 1)
		uc, _ := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, newFakeRedisRepo(true))

		_, err := uc.VoidService(context.Background(), &requests.VoidService{
			Reason:        string(models.VoidReasonWrongPunch),
			TransactionID: tx.TransactionID,
			ServiceID:     tx.Services[0].ID.Hex(),
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("blocks voiding a billing confirmed transaction", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		tx := seedTransaction(txRepo, models.TransactionBillingConfirmed, 1)
		uc, _ := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, newFakeRedisRepo(true))

		_, err := uc.VoidService(context.Background(), &requests.VoidService{
			Reason:        string(models.VoidReasonWrongPunch),
			TransactionID: tx.TransactionID,
			ServiceID:     tx.Services[0].ID.Hex(),
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("missing transaction returns not found", func(t *testing.T) {
		uc, _ := newChargeUsecaseForTest(newFakeTransactionRepo(), &fakeVoidedRepo{}, newFakeRedisRepo(true))

		_, err := uc.VoidService(context.Background(), &requests.VoidService{
			Reason:        string(models.VoidReasonWrongPunch),
			TransactionID: "MISSING1",
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestVoidServices(t *testing.T) {
	t.Run("voids multiple lines and deduplicates indexes", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		voidedRepo := &fakeVoidedRepo{}
		tx := seedTransaction(txRepo, models.TransactionForBilling, 3)
		uc, _ := newChargeUsecaseForTest(txRepo, voidedRepo, newFakeRedisRepo(true))

		remaining, err := uc.VoidServices(context.Background(), &requests.VoidServices{
			Services: []requests.VoidServiceSelection{
				{TransactionID: tx.TransactionID, ServiceIndex: 0},
				{TransactionID: tx.TransactionID, ServiceIndex: 2},
				{TransactionID: tx.TransactionID, ServiceIndex: 0},
			},
			Reason:    string(models.VoidReasonChangeOfMind),
			PatientID: "P0001",
		})
		require.NoError(t, err)
		require.Len(t, remaining, 1)

		assert.Len(t, remaining[0].Services, 1)
		assert.Len(t, voidedRepo.voided, 2)
	})

	t.Run("groups a selection spanning several slips per slip", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		voidedRepo := &fakeVoidedRepo{}
		first := seedTransaction(txRepo, models.TransactionForBilling, 2)
		second := &models.Transaction{
			TransactionID: "EF56AB78",
			AdmissionID:   first.AdmissionID,
			PatientID:     first.PatientID,
			Services:      []models.ServiceLine{{ID: primitive.NewObjectID(), Type: "Pharmacy", Description: "Gauze", Qty: 1, Amount: 40}},
			Status:        models.TransactionForBilling,
			CreatedAt:     time.Now(),
		}
		txRepo.byID[second.TransactionID] = second
		uc, _ := newChargeUsecaseForTest(txRepo, voidedRepo, newFakeRedisRepo(true))

		remaining, err := uc.VoidServices(context.Background(), &requests.VoidServices{
			Services: []requests.VoidServiceSelection{
				{TransactionID: first.TransactionID, ServiceIndex: 1},
				{TransactionID: second.TransactionID, ServiceIndex: 0},
			},
			Reason:    string(models.VoidReasonWrongPunch),
			PatientID: "P0001",
		})
		require.NoError(t, err)

		require.Len(t, remaining, 1, "the emptied slip should be deleted, the other kept")
		assert.Equal(t, first.TransactionID, remaining[0].TransactionID)
		assert.Len(t, remaining[0].Services, 1)
		assert.Contains(t, txRepo.deletedIDs, second.TransactionID)
		require.Len(t, voidedRepo.voided, 2)
	})

	t.Run("rejects a slip belonging to another patient", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		tx := seedTransaction(txRepo, models.TransactionForBilling, 1)
		uc, _ := newChargeUsecaseForTest(txRepo, &fakeVoidedRepo{}, newFakeRedisRepo(true))

		_, err := uc.VoidServices(context.Background(), &requests.VoidServices{
			Services: []requests.VoidServiceSelection{
				{TransactionID: tx.TransactionID, ServiceIndex: 0},
			},
			Reason:    string(models.VoidReasonWrongPunch),
			PatientID: "P9999",
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("rejects out of range indexes before any void is applied", func(t *testing.T) {
		txRepo := newFakeTransactionRepo()
		voidedRepo := &fakeVoidedRepo{}
		tx := seedTransaction(txRepo, models.TransactionForBilling, 2)
		uc, _ := newChargeUsecaseForTest(txRepo, voidedRepo, newFakeRedisRepo(true))

		_, err := uc.VoidServices(context.Background(), &requests.VoidServices{
			Services: []requests.VoidServiceSelection{
				{TransactionID: tx.TransactionID, ServiceIndex: 0},
				{TransactionID: tx.TransactionID, ServiceIndex: 5},
			},
			Reason:    string(models.VoidReasonWrongPunch),
			PatientID: "P0001",
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Empty(t, voidedRepo.voided)
		assert.Len(t, tx.Services, 2)
	})
}
