package promissories

import (
	"context"
	"testing"
	"time"

	"hims-service/internal/app/config"
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

type fakePromissoryRepo struct {
	contracts.PromissoryRepository
	byID     map[string]*models.Promissory
	open     *models.Promissory
	approved []models.Promissory
	inserted []*models.Promissory
	updated  *models.Promissory
}

func newFakePromissoryRepo() *fakePromissoryRepo {
	return &fakePromissoryRepo{byID: map[string]*models.Promissory{}}
}

func (f *fakePromissoryRepo) Insert(ctx context.Context, promissory *models.Promissory) (*models.Promissory, error) {
	promissory.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, promissory)
	f.byID[promissory.ID.Hex()] = promissory
	return promissory, nil
}

func (f *fakePromissoryRepo) FindByID(ctx context.Context, promissoryID string) (*models.Promissory, error) {
	return f.byID[promissoryID], nil
}

func (f *fakePromissoryRepo) FindOpenByAdmission(ctx context.Context, patientID, admissionNumber string) (*models.Promissory, error) {
	return f.open, nil
}

func (f *fakePromissoryRepo) FindByStatusForAdmission(ctx context.Context, patientID, admissionNumber string, status models.PromissoryStatus) ([]models.Promissory, error) {
	return f.approved, nil
}

func (f *fakePromissoryRepo) UpdateIfStatus(ctx context.Context, promissoryID string, requiredStatus models.PromissoryStatus, promissory *models.Promissory) (bool, error) {
	existing, ok := f.byID[promissoryID]
	if !ok || existing.Status != requiredStatus {
		return false, nil
	}
	f.byID[promissoryID] = promissory
	f.updated = promissory
	return true, nil
}

type fakePatientDirectory struct {
	patients map[string]*models.Patient
}

func (f *fakePatientDirectory) FindByPatientID(ctx context.Context, patientID string) (*models.Patient, error) {
	return f.patients[patientID], nil
}

type fakeAdmissionRepo struct {
	contracts.AdmissionRepository
	current *models.Admission
}

func (f *fakeAdmissionRepo) FindCurrentByPatient(ctx context.Context, patientID string) (*models.Admission, error) {
	return f.current, nil
}

type fakeTransactionRepo struct {
	contracts.TransactionRepository
	unpaid []models.Transaction
}

func (f *fakeTransactionRepo) FindUnpaidByPatient(ctx context.Context, patientID string) ([]models.Transaction, error) {
	return f.unpaid, nil
}

func (f *fakeTransactionRepo) FindByTransactionIDs(ctx context.Context, transactionIDs []string) ([]models.Transaction, error) {
	return f.unpaid, nil
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

type fakeAuditSink struct {
	entries []models.AuditLog
}

func (f *fakeAuditSink) Record(ctx context.Context, entry *models.AuditLog) {
	f.entries = append(f.entries, *entry)
}

type promissoryFixture struct {
	uc         *promissoryUsecase
	repo       *fakePromissoryRepo
	patients   *fakePatientDirectory
	admissions *fakeAdmissionRepo
	txRepo     *fakeTransactionRepo
	sink       *fakeNotificationSink
	audit      *fakeAuditSink
}

func newPromissoryFixture() *promissoryFixture {
	fx := &promissoryFixture{
		repo:       newFakePromissoryRepo(),
		patients:   &fakePatientDirectory{patients: map[string]*models.Patient{}},
		admissions: &fakeAdmissionRepo{},
		txRepo:     &fakeTransactionRepo{},
		sink:       &fakeNotificationSink{},
		audit:      &fakeAuditSink{},
	}
	fx.uc = &promissoryUsecase{
		PromissoryRepository:  fx.repo,
		PatientDirectory:      fx.patients,
		AdmissionRepository:   fx.admissions,
		TransactionRepository: fx.txRepo,
		NotificationSink:      fx.sink,
		AuditSink:             fx.audit,
		InternalConfig:        &config.InternalConfig{},
		Log:                   zap.NewNop(),
	}
	return fx
}

func (fx *promissoryFixture) seedPromissory(status models.PromissoryStatus) *models.Promissory {
	promissory := &models.Promissory{
		ID:              primitive.NewObjectID(),
		PatientID:       "P0001",
		AdmissionNumber: "ADMT1ABC",
		DateIssued:      time.Now(),
		Status:          status,
		Amount:          500,
	}
	fx.repo.byID[promissory.ID.Hex()] = promissory
	return promissory
}

func TestSubmitPromissory(t *testing.T) {
	t.Run("submits pending promissory covering unpaid transactions", func(t *testing.T) {
		fx := newPromissoryFixture()
		fx.patients.patients["P0001"] = &models.Patient{PatientID: "P0001", FirstName: "Juan", LastName: "Dela Cruz"}
		fx.admissions.current = &models.Admission{AdmittingID: "ADMT1ABC", PatientID: "P0001"}
		fx.txRepo.unpaid = []models.Transaction{
			{TransactionID: "AAAA1111", Status: models.TransactionForBilling},
			{TransactionID: "BBBB2222", Status: models.TransactionBillingConfirmed},
		}

		created, err := fx.uc.Submit(context.Background(), &requests.SubmitPromissory{
			PatientID:       "P0001",
			Amount:          500,
			PaymentExpected: "2026-10-01",
		})
		require.NoError(t, err)

		assert.Equal(t, models.PromissoryPending, created.Status)
		assert.Equal(t, "ADMT1ABC", created.AdmissionNumber)
		assert.ElementsMatch(t, []string{"AAAA1111", "BBBB2222"}, created.TransactionIDs)
		require.NotNil(t, created.PaymentExpected)
		assert.Equal(t, time.October, created.PaymentExpected.Month())
		require.Len(t, fx.sink.notified, 1)
		assert.Equal(t, constvars.DepartmentPromissory, fx.sink.notified[0].Department)
	})

	t.Run("requires a current admission", func(t *testing.T) {
		fx := newPromissoryFixture()
		fx.patients.patients["P0001"] = &models.Patient{PatientID: "P0001"}

		_, err := fx.uc.Submit(context.Background(), &requests.SubmitPromissory{PatientID: "P0001", Amount: 100})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("rejects a second open promissory for the admission", func(t *testing.T) {
		fx := newPromissoryFixture()
		fx.patients.patients["P0001"] = &models.Patient{PatientID: "P0001"}
		fx.admissions.current = &models.Admission{AdmittingID: "ADMT1ABC", PatientID: "P0001"}
		fx.repo.open = &models.Promissory{Status: models.PromissoryPending}

		_, err := fx.uc.Submit(context.Background(), &requests.SubmitPromissory{PatientID: "P0001", Amount: 100})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})
}

func TestUpdatePromissoryStatus(t *testing.T) {
	t.Run("approves a pending promissory", func(t *testing.T) {
		fx := newPromissoryFixture()
		promissory := fx.seedPromissory(models.PromissoryPending)

		updated, err := fx.uc.UpdateStatus(context.Background(), &requests.UpdatePromissoryStatus{
			Status:       string(models.PromissoryApproved),
			PromissoryID: promissory.ID.Hex(),
			ActedBy:      "Admin Reyes",
		})
		require.NoError(t, err)

		assert.Equal(t, models.PromissoryApproved, updated.Status)
		require.NotNil(t, updated.DateApproved)
		assert.Equal(t, "Admin Reyes", updated.ApprovedBy)
		assert.Len(t, fx.audit.entries, 1)
	})

	t.Run("rejection records the reason and clears approval", func(t *testing.T) {
		fx := newPromissoryFixture()
		promissory := fx.seedPromissory(models.PromissoryApproved)
		now := time.Now()
		promissory.DateApproved = &now
		promissory.ApprovedBy = "Admin Reyes"

		updated, err := fx.uc.UpdateStatus(context.Background(), &requests.UpdatePromissoryStatus{
			Status:          string(models.PromissoryRejected),
			RejectionReason: "insufficient guarantee",
			PromissoryID:    promissory.ID.Hex(),
			ActedBy:         "Admin Santos",
		})
		require.NoError(t, err)

		assert.Equal(t, models.PromissoryRejected, updated.Status)
		assert.Equal(t, "insufficient guarantee", updated.RejectionReason)
		assert.Nil(t, updated.DateApproved)
		assert.Empty(t, updated.ApprovedBy)
	})

	t.Run("blocks a transition outside the table", func(t *testing.T) {
		fx := newPromissoryFixture()
		promissory := fx.seedPromissory(models.PromissorySettled)

		_, err := fx.uc.UpdateStatus(context.Background(), &requests.UpdatePromissoryStatus{
			Status:       string(models.PromissoryApproved),
			PromissoryID: promissory.ID.Hex(),
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("unknown promissory is not found", func(t *testing.T) {
		fx := newPromissoryFixture()

		_, err := fx.uc.UpdateStatus(context.Background(), &requests.UpdatePromissoryStatus{
			Status:       string(models.PromissoryApproved),
			PromissoryID: primitive.NewObjectID().Hex(),
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestUpdatePromissoryAmount(t *testing.T) {
	t.Run("edits the amount while pending", func(t *testing.T) {
		fx := newPromissoryFixture()
		promissory := fx.seedPromissory(models.PromissoryPending)

		updated, err := fx.uc.UpdateAmount(context.Background(), &requests.UpdatePromissoryAmount{
			Amount:       750,
			PromissoryID: promissory.ID.Hex(),
		})
		require.NoError(t, err)

		assert.Equal(t, float64(750), updated.Amount)
	})

	t.Run("refuses once no longer pending", func(t *testing.T) {
		fx := newPromissoryFixture()
		promissory := fx.seedPromissory(models.PromissoryApproved)

		_, err := fx.uc.UpdateAmount(context.Background(), &requests.UpdatePromissoryAmount{
			Amount:       750,
			PromissoryID: promissory.ID.Hex(),
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}

func TestFindApprovedByAdmission(t *testing.T) {
	t.Run("returns nil when none approved", func(t *testing.T) {
		fx := newPromissoryFixture()

		found, err := fx.uc.FindApprovedByAdmission(context.Background(), "P0001", "ADMT1ABC")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("newest approval wins when several exist", func(t *testing.T) {
		fx := newPromissoryFixture()
		older := time.Now().Add(-48 * time.Hour)
		newer := time.Now().Add(-1 * time.Hour)
		fx.repo.approved = []models.Promissory{
			{Amount: 100, Status: models.PromissoryApproved, DateApproved: &older},
			{Amount: 300, Status: models.PromissoryApproved, DateApproved: &newer},
		}

		found, err := fx.uc.FindApprovedByAdmission(context.Background(), "P0001", "ADMT1ABC")
		require.NoError(t, err)

		require.NotNil(t, found)
		assert.Equal(t, float64(300), found.Amount)
	})
}
