package admissions

import (
	"context"
	"strings"
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

type fakeAdmissionRepo struct {
	contracts.AdmissionRepository
	byAdmittingID map[string]*models.Admission
	current       map[string]*models.Admission
	deleted       []string
}

func newFakeAdmissionRepo() *fakeAdmissionRepo {
	return &fakeAdmissionRepo{
		byAdmittingID: map[string]*models.Admission{},
		current:       map[string]*models.Admission{},
	}
}

func (f *fakeAdmissionRepo) Insert(ctx context.Context, admission *models.Admission) (*models.Admission, error) {
	admission.ID = primitive.NewObjectID()
	f.byAdmittingID[admission.AdmittingID] = admission
	f.current[admission.PatientID] = admission
	return admission, nil
}

func (f *fakeAdmissionRepo) FindByID(ctx context.Context, admissionID string) (*models.Admission, error) {
	return f.byAdmittingID[admissionID], nil
}

func (f *fakeAdmissionRepo) FindCurrentByPatient(ctx context.Context, patientID string) (*models.Admission, error) {
	return f.current[patientID], nil
}

func (f *fakeAdmissionRepo) MarkCleared(ctx context.Context, admissionID, clearedBy string, at time.Time) (bool, error) {
	admission, ok := f.byAdmittingID[admissionID]
	if !ok || admission.IsCleared {
		return false, nil
	}
	admission.IsCleared = true
	admission.ClearedAt = &at
	admission.ClearedBy = clearedBy
	return true, nil
}

func (f *fakeAdmissionRepo) SetDischargeNurse(ctx context.Context, admissionID, dischargeBy string) (bool, error) {
	admission, ok := f.byAdmittingID[admissionID]
	if !ok {
		return false, nil
	}
	admission.DischargeBy = dischargeBy
	return true, nil
}

func (f *fakeAdmissionRepo) Delete(ctx context.Context, admissionID string) error {
	if admission, ok := f.byAdmittingID[admissionID]; ok {
		delete(f.current, admission.PatientID)
	}
	delete(f.byAdmittingID, admissionID)
	f.deleted = append(f.deleted, admissionID)
	return nil
}

type fakeDischargedRepo struct {
	inserted []*models.DischargedPatient
}

func (f *fakeDischargedRepo) Insert(ctx context.Context, discharged *models.DischargedPatient) (*models.DischargedPatient, error) {
	discharged.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, discharged)
	return discharged, nil
}

func (f *fakeDischargedRepo) FindPage(ctx context.Context, page, pageSize int) ([]models.DischargedPatient, int64, error) {
	out := make([]models.DischargedPatient, 0, len(f.inserted))
	for _, d := range f.inserted {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

type fakeProcessedRepo struct {
	processed map[string]bool
}

func newFakeProcessedRepo() *fakeProcessedRepo {
	return &fakeProcessedRepo{processed: map[string]bool{}}
}

func (f *fakeProcessedRepo) MarkProcessed(ctx context.Context, patientID string) error {
	f.processed[patientID] = true
	return nil
}

func (f *fakeProcessedRepo) ClearProcessed(ctx context.Context, patientID string) error {
	delete(f.processed, patientID)
	return nil
}

func (f *fakeProcessedRepo) IsProcessed(ctx context.Context, patientID string) (bool, error) {
	return f.processed[patientID], nil
}

type fakeTransactionRepo struct {
	contracts.TransactionRepository
	byAdmission map[string][]models.Transaction
	deletedFor  []string
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{byAdmission: map[string][]models.Transaction{}}
}

func (f *fakeTransactionRepo) CountByAdmission(ctx context.Context, admissionID string) (int64, error) {
	return int64(len(f.byAdmission[admissionID])), nil
}

func (f *fakeTransactionRepo) CountByAdmissionNotInStatus(ctx context.Context, admissionID string, status models.TransactionStatus) (int64, error) {
	var count int64
	for _, tx := range f.byAdmission[admissionID] {
		if tx.Status != status {
			count++
		}
	}
	return count, nil
}

func (f *fakeTransactionRepo) FindByAdmission(ctx context.Context, admissionID string) ([]models.Transaction, error) {
	return f.byAdmission[admissionID], nil
}

func (f *fakeTransactionRepo) DeleteByAdmission(ctx context.Context, admissionID string) error {
	delete(f.byAdmission, admissionID)
	f.deletedFor = append(f.deletedFor, admissionID)
	return nil
}

type fakeMedicalRepo struct {
	contracts.MedicalRepository
	hasRecord bool
	diagnoses []models.Diagnosis
	pruned    []string
}

func (f *fakeMedicalRepo) HasRecord(ctx context.Context, patientID string) (bool, error) {
	return f.hasRecord, nil
}

func (f *fakeMedicalRepo) FindDiagnosesSince(ctx context.Context, patientID string, since time.Time) ([]models.Diagnosis, error) {
	return f.diagnoses, nil
}

func (f *fakeMedicalRepo) RemoveDiagnosesSince(ctx context.Context, patientID string, since time.Time) error {
	f.pruned = append(f.pruned, patientID)
	return nil
}

type fakePatientDirectory struct {
	patients map[string]*models.Patient
}

func (f *fakePatientDirectory) FindByPatientID(ctx context.Context, patientID string) (*models.Patient, error) {
	return f.patients[patientID], nil
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

type fakeTxnManager struct{}

func (f *fakeTxnManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type admissionFixture struct {
	uc          *admissionUsecase
	repo        *fakeAdmissionRepo
	discharged  *fakeDischargedRepo
	processed   *fakeProcessedRepo
	txRepo      *fakeTransactionRepo
	medicalRepo *fakeMedicalRepo
	patients    *fakePatientDirectory
	sink        *fakeNotificationSink
	audit       *fakeAuditSink
}

func newAdmissionFixture() *admissionFixture {
	fx := &admissionFixture{
		repo:        newFakeAdmissionRepo(),
		discharged:  &fakeDischargedRepo{},
		processed:   newFakeProcessedRepo(),
		txRepo:      newFakeTransactionRepo(),
		medicalRepo: &fakeMedicalRepo{hasRecord: true},
		patients:    &fakePatientDirectory{patients: map[string]*models.Patient{}},
		sink:        &fakeNotificationSink{},
		audit:       &fakeAuditSink{},
	}
	fx.uc = &admissionUsecase{
		AdmissionRepository:         fx.repo,
		DischargedPatientRepository: fx.discharged,
		ProcessedPatientRepository:  fx.processed,
		TransactionRepository:       fx.txRepo,
		MedicalRepository:           fx.medicalRepo,
		PatientDirectory:            fx.patients,
		NotificationSink:            fx.sink,
		AuditSink:                   fx.audit,
		TransactionManager:          &fakeTxnManager{},
		Log:                         zap.NewNop(),
	}
	return fx
}

func (fx *admissionFixture) seedAdmission(cleared bool) *models.Admission {
	admission := &models.Admission{
		ID:          primitive.NewObjectID(),
		AdmittingID: "ADMT1ABC",
		PatientID:   "P0001",
		FullName:    "Juan Dela Cruz",
		Category:    constvars.DepartmentOPD,
		AdmittedAt:  time.Now().Add(-24 * time.Hour),
		IsCleared:   cleared,
	}
	fx.repo.byAdmittingID[admission.AdmittingID] = admission
	fx.repo.current[admission.PatientID] = admission
	return admission
}

func TestAdmit(t *testing.T) {
	admitRequest := &requests.AdmitPatient{
		PatientType: "Returning",
		PatientID:   "P0001",
		Category:    constvars.DepartmentOPD,
		AdmittedBy:  "Nurse Cruz",
	}

	t.Run("admits a registered patient with a medical record", func(t *testing.T) {
		fx := newAdmissionFixture()
		fx.patients.patients["P0001"] = &models.Patient{PatientID: "P0001", FirstName: "Juan", LastName: "Dela Cruz"}

		admission, err := fx.uc.Admit(context.Background(), admitRequest)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(admission.AdmittingID, "ADMT"))
		assert.Equal(t, "Juan Dela Cruz", admission.FullName)
		assert.False(t, admission.IsCleared)
		assert.True(t, fx.processed.processed["P0001"])
		require.Len(t, fx.sink.notified, 1)
		assert.Equal(t, constvars.DepartmentOPD, fx.sink.notified[0].Department)
	})

	t.Run("unknown patient is not found", func(t *testing.T) {
		fx := newAdmissionFixture()

		_, err := fx.uc.Admit(context.Background(), admitRequest)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("requires a medical record first", func(t *testing.T) {
		fx := newAdmissionFixture()
		fx.patients.patients["P0001"] = &models.Patient{PatientID: "P0001"}
		fx.medicalRepo.hasRecord = false

		_, err := fx.uc.Admit(context.Background(), admitRequest)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("blocks an archived patient", func(t *testing.T) {
		fx := newAdmissionFixture()
		fx.patients.patients["P0001"] = &models.Patient{PatientID: "P0001", Archived: true}

		_, err := fx.uc.Admit(context.Background(), admitRequest)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("blocks a second concurrent admission", func(t *testing.T) {
		fx := newAdmissionFixture()
		fx.patients.patients["P0001"] = &models.Patient{PatientID: "P0001"}
		fx.seedAdmission(false)

		_, err := fx.uc.Admit(context.Background(), admitRequest)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})

	t.Run("blocks re-admission while a discharge is still settling", func(t *testing.T) {
		fx := newAdmissionFixture()
		fx.patients.patients["P0001"] = &models.Patient{PatientID: "P0001"}
		fx.processed.processed["P0001"] = true

		_, err := fx.uc.Admit(context.Background(), admitRequest)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})
}

func TestMarkCleared(t *testing.T) {
	t.Run("clears when every transaction is verified", func(t *testing.T) {
		fx := newAdmissionFixture()
		admission := fx.seedAdmission(false)
		fx.txRepo.byAdmission[admission.AdmittingID] = []models.Transaction{
			{TransactionID: "AAAA1111", Status: models.TransactionPaymentVerified},
		}

		cleared, err := fx.uc.MarkCleared(context.Background(), &requests.MarkCleared{
			AdmissionID: admission.AdmittingID,
			ClearedBy:   "Billing Staff",
		})
		require.NoError(t, err)

		assert.True(t, cleared.IsCleared)
		assert.Equal(t, "Billing Staff", cleared.ClearedBy)
		require.NotNil(t, cleared.ClearedAt)
	})

	t.Run("refuses while unverified transactions remain", func(t *testing.T) {
		fx := newAdmissionFixture()
		admission := fx.seedAdmission(false)
		fx.txRepo.byAdmission[admission.AdmittingID] = []models.Transaction{
			{TransactionID: "AAAA1111", Status: models.TransactionPaymentVerified},
			{TransactionID: "BBBB2222", Status: models.TransactionBillingConfirmed},
		}

		_, err := fx.uc.MarkCleared(context.Background(), &requests.MarkCleared{AdmissionID: admission.AdmittingID})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("unknown admission is not found", func(t *testing.T) {
		fx := newAdmissionFixture()

		_, err := fx.uc.MarkCleared(context.Background(), &requests.MarkCleared{AdmissionID: "ADMTNONE"})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestCompleteDischarge(t *testing.T) {
	t.Run("archives the stay and removes the live records", func(t *testing.T) {
		fx := newAdmissionFixture()
		admission := fx.seedAdmission(true)
		fx.processed.processed["P0001"] = true
		fx.txRepo.byAdmission[admission.AdmittingID] = []models.Transaction{
			{
				TransactionID: "AAAA1111",
				Status:        models.TransactionPaymentVerified,
				Services: []models.ServiceLine{
					{Type: "Laboratory", Description: "CBC", Qty: 1, Amount: 150},
				},
			},
		}
		fx.medicalRepo.diagnoses = []models.Diagnosis{
			{Date: time.Now(), Complaint: "fever", Doctor: "Dr. Reyes"},
		}

		discharged, err := fx.uc.CompleteDischarge(context.Background(), &requests.CompleteDischarge{
			AdmissionID:  admission.AdmittingID,
			DischargedBy: "Nurse Cruz",
			Notes:        "stable at discharge",
		})
		require.NoError(t, err)

		assert.Equal(t, admission.AdmittingID, discharged.AdmittingID)
		require.Len(t, discharged.Transactions, 1)
		assert.Equal(t, "AAAA1111", discharged.Transactions[0].TransactionID)
		require.Len(t, discharged.Diagnoses, 1)
		assert.Equal(t, "fever", discharged.Diagnoses[0].Complaint)

		assert.Contains(t, fx.txRepo.deletedFor, admission.AdmittingID)
		assert.Contains(t, fx.repo.deleted, admission.AdmittingID)
		assert.Contains(t, fx.medicalRepo.pruned, "P0001")
		assert.False(t, fx.processed.processed["P0001"])
		assert.Len(t, fx.discharged.inserted, 1)
	})

	t.Run("refuses before clearing", func(t *testing.T) {
		fx := newAdmissionFixture()
		admission := fx.seedAdmission(false)

		_, err := fx.uc.CompleteDischarge(context.Background(), &requests.CompleteDischarge{
			AdmissionID: admission.AdmittingID,
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}

func TestCancelAdmission(t *testing.T) {
	t.Run("cancels an untouched admission", func(t *testing.T) {
		fx := newAdmissionFixture()
		admission := fx.seedAdmission(false)
		fx.processed.processed["P0001"] = true

		err := fx.uc.CancelAdmission(context.Background(), admission.AdmittingID)
		require.NoError(t, err)

		assert.Contains(t, fx.repo.deleted, admission.AdmittingID)
		assert.False(t, fx.processed.processed["P0001"])
	})

	t.Run("blocks when charges exist", func(t *testing.T) {
		fx := newAdmissionFixture()
		admission := fx.seedAdmission(false)
		fx.txRepo.byAdmission[admission.AdmittingID] = []models.Transaction{
			{TransactionID: "AAAA1111", Status: models.TransactionForBilling},
		}

		err := fx.uc.CancelAdmission(context.Background(), admission.AdmittingID)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})

	t.Run("blocks when diagnoses were written during the stay", func(t *testing.T) {
		fx := newAdmissionFixture()
		admission := fx.seedAdmission(false)
		fx.medicalRepo.diagnoses = []models.Diagnosis{{Date: time.Now(), Complaint: "fever"}}

		err := fx.uc.CancelAdmission(context.Background(), admission.AdmittingID)
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})
}

func TestAssignDischargeNurse(t *testing.T) {
	fx := newAdmissionFixture()
	admission := fx.seedAdmission(true)

	updated, err := fx.uc.AssignDischargeNurse(context.Background(), &requests.AssignDischargeNurse{
		DischargeBy: "Nurse Santos",
		AdmissionID: admission.AdmittingID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Nurse Santos", updated.DischargeBy)
}
