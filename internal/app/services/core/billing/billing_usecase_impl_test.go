package billing

import (
	"context"
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
	byID map[string]*models.Transaction
}

func newFakeTransactionRepo(transactions ...*models.Transaction) *fakeTransactionRepo {
	repo := &fakeTransactionRepo{byID: map[string]*models.Transaction{}}
	for _, tx := range transactions {
		repo.byID[tx.TransactionID] = tx
	}
	return repo
}

func (f *fakeTransactionRepo) FindByTransactionIDs(ctx context.Context, transactionIDs []string) ([]models.Transaction, error) {
	var found []models.Transaction
	for _, id := range transactionIDs {
		if tx, ok := f.byID[id]; ok {
			found = append(found, *tx)
		}
	}
	return found, nil
}

func (f *fakeTransactionRepo) FindUnpaidByPatient(ctx context.Context, patientID string) ([]models.Transaction, error) {
	var unpaid []models.Transaction
	for _, tx := range f.byID {
		if tx.PatientID == patientID && tx.Status != models.TransactionPaymentVerified {
			unpaid = append(unpaid, *tx)
		}
	}
	return unpaid, nil
}

func (f *fakeTransactionRepo) TransitionStatus(ctx context.Context, transactionID string, from, to models.TransactionStatus) (bool, error) {
	tx, ok := f.byID[transactionID]
	if !ok || tx.Status != from {
		return false, nil
	}
	tx.Status = to
	return true, nil
}

type fakePaymentRepo struct {
	contracts.PaymentRepository
	inserted []*models.Payment
	pending  map[string]*models.Payment
	deleted  []string
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{pending: map[string]*models.Payment{}}
}

func (f *fakePaymentRepo) Insert(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	payment.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, payment)
	f.pending[payment.PatientID] = payment
	return payment, nil
}

func (f *fakePaymentRepo) FindPendingByPatient(ctx context.Context, patientID string) (*models.Payment, error) {
	return f.pending[patientID], nil
}

func (f *fakePaymentRepo) DeletePendingByTransactionIDs(ctx context.Context, patientID string, transactionIDs []string) (int64, error) {
	if _, ok := f.pending[patientID]; !ok {
		return 0, nil
	}
	delete(f.pending, patientID)
	f.deleted = append(f.deleted, patientID)
	return 1, nil
}

type fakePatientDirectory struct {
	patients map[string]*models.Patient
}

func (f *fakePatientDirectory) FindByPatientID(ctx context.Context, patientID string) (*models.Patient, error) {
	return f.patients[patientID], nil
}

type fakeAdmissionRepo struct {
	contracts.AdmissionRepository
	current map[string]*models.Admission
}

func (f *fakeAdmissionRepo) FindCurrentByPatient(ctx context.Context, patientID string) (*models.Admission, error) {
	return f.current[patientID], nil
}

type fakePromissoryUsecase struct {
	contracts.PromissoryUsecase
	approved map[string]*models.Promissory
}

func (f *fakePromissoryUsecase) FindApprovedByAdmission(ctx context.Context, patientID, admissionID string) (*models.Promissory, error) {
	return f.approved[admissionID], nil
}

type fakeNotificationSink struct {
	notified       []models.Notification
	clearedPatient string
}

func (f *fakeNotificationSink) Notify(ctx context.Context, notification *models.Notification) {
	f.notified = append(f.notified, *notification)
}

func (f *fakeNotificationSink) ClearUnread(ctx context.Context, patientID, department string) error {
	f.clearedPatient = patientID
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

type billingFixture struct {
	uc           *billingUsecase
	txRepo       *fakeTransactionRepo
	paymentRepo  *fakePaymentRepo
	patients     *fakePatientDirectory
	admissions   *fakeAdmissionRepo
	promissories *fakePromissoryUsecase
	sink         *fakeNotificationSink
	audit        *fakeAuditSink
}

func newBillingFixture(transactions ...*models.Transaction) *billingFixture {
	fx := &billingFixture{
		txRepo:       newFakeTransactionRepo(transactions...),
		paymentRepo:  newFakePaymentRepo(),
		patients:     &fakePatientDirectory{patients: map[string]*models.Patient{}},
		admissions:   &fakeAdmissionRepo{current: map[string]*models.Admission{}},
		promissories: &fakePromissoryUsecase{approved: map[string]*models.Promissory{}},
		sink:         &fakeNotificationSink{},
		audit:        &fakeAuditSink{},
	}
	fx.uc = &billingUsecase{
		PaymentRepository:     fx.paymentRepo,
		TransactionRepository: fx.txRepo,
		PatientDirectory:      fx.patients,
		AdmissionRepository:   fx.admissions,
		PromissoryUsecase:     fx.promissories,
		NotificationSink:      fx.sink,
		AuditSink:             fx.audit,
		TransactionManager:    &fakeTxnManager{},
		Log:                   zap.NewNop(),
	}
	return fx
}

func testTransaction(id string, status models.TransactionStatus, amount float64) *models.Transaction {
	return &models.Transaction{
		TransactionID: id,
		AdmissionID:   "ADMT1ABC",
		PatientID:     "P0001",
		Services: []models.ServiceLine{
			{ID: primitive.NewObjectID(), Type: "Laboratory", Description: "CBC", Qty: 1, Amount: amount},
		},
		Status:    status,
		CreatedAt: time.Now(),
	}
}

func testPatient(patientID string, archived bool) *models.Patient {
	return &models.Patient{
		PatientID: patientID,
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Archived:  archived,
	}
}

func TestConfirmForBilling(t *testing.T) {
	t.Run("confirms transactions and opens a pending payment", func(t *testing.T) {
		fx := newBillingFixture(
			testTransaction("AAAA1111", models.TransactionForBilling, 150),
			testTransaction("BBBB2222", models.TransactionForBilling, 200),
		)
		fx.patients.patients["P0001"] = testPatient("P0001", false)

		payment, err := fx.uc.ConfirmForBilling(context.Background(), &requests.ConfirmForBilling{
			PatientID:      "P0001",
			TransactionIDs: []string{"AAAA1111", "BBBB2222"},
			Subtotal:       350,
			FinalTotal:     350,
		})
		require.NoError(t, err)
		require.NotNil(t, payment)

		assert.Equal(t, models.PaymentPending, payment.Status)
		assert.Equal(t, models.TransactionBillingConfirmed, fx.txRepo.byID["AAAA1111"].Status)
		assert.Equal(t, models.TransactionBillingConfirmed, fx.txRepo.byID["BBBB2222"].Status)
		assert.NotEmpty(t, payment.BillNumber)
		require.Len(t, fx.sink.notified, 1)
		assert.Equal(t, constvars.DepartmentCashier, fx.sink.notified[0].Department)
		assert.Len(t, fx.audit.entries, 1)
	})

	t.Run("attaches the approved promissory for the current admission", func(t *testing.T) {
		fx := newBillingFixture(testTransaction("AAAA1111", models.TransactionForBilling, 500))
		fx.patients.patients["P0001"] = testPatient("P0001", false)
		fx.admissions.current["P0001"] = &models.Admission{AdmittingID: "ADMT1ABC", PatientID: "P0001"}
		promissoryID := primitive.NewObjectID()
		fx.promissories.approved["ADMT1ABC"] = &models.Promissory{
			ID:     promissoryID,
			Amount: 200,
			Status: models.PromissoryApproved,
		}

		payment, err := fx.uc.ConfirmForBilling(context.Background(), &requests.ConfirmForBilling{
			PatientID:        "P0001",
			TransactionIDs:   []string{"AAAA1111"},
			Subtotal:         500,
			PromissoryAmount: 200,
			FinalTotal:       300,
		})
		require.NoError(t, err)

		require.NotNil(t, payment.PromissoryID)
		assert.Equal(t, promissoryID, *payment.PromissoryID)
		assert.Equal(t, "ADMT1ABC", payment.AdmissionNumber)
	})

	t.Run("conflicts when a transaction is no longer For Billing", func(t *testing.T) {
		fx := newBillingFixture(testTransaction("AAAA1111", models.TransactionBillingConfirmed, 150))
		fx.patients.patients["P0001"] = testPatient("P0001", false)

		_, err := fx.uc.ConfirmForBilling(context.Background(), &requests.ConfirmForBilling{
			PatientID:      "P0001",
			TransactionIDs: []string{"AAAA1111"},
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	})

	t.Run("rejects an empty transaction list", func(t *testing.T) {
		fx := newBillingFixture()

		_, err := fx.uc.ConfirmForBilling(context.Background(), &requests.ConfirmForBilling{PatientID: "P0001"})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})

	t.Run("blocks an archived patient", func(t *testing.T) {
		fx := newBillingFixture(testTransaction("AAAA1111", models.TransactionForBilling, 150))
		fx.patients.patients["P0001"] = testPatient("P0001", true)

		_, err := fx.uc.ConfirmForBilling(context.Background(), &requests.ConfirmForBilling{
			PatientID:      "P0001",
			TransactionIDs: []string{"AAAA1111"},
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
	})
}

func TestCancelConfirmation(t *testing.T) {
	t.Run("reverts confirmed transactions and drops the pending payment", func(t *testing.T) {
		fx := newBillingFixture(
			testTransaction("AAAA1111", models.TransactionBillingConfirmed, 150),
			testTransaction("BBBB2222", models.TransactionForBilling, 200),
		)
		fx.paymentRepo.pending["P0001"] = &models.Payment{PatientID: "P0001", Status: models.PaymentPending}

		err := fx.uc.CancelConfirmation(context.Background(), &requests.CancelConfirmation{
			PatientID:      "P0001",
			TransactionIDs: []string{"AAAA1111", "BBBB2222"},
		})
		require.NoError(t, err)

		assert.Equal(t, models.TransactionForBilling, fx.txRepo.byID["AAAA1111"].Status)
		assert.Equal(t, models.TransactionForBilling, fx.txRepo.byID["BBBB2222"].Status)
		assert.Contains(t, fx.paymentRepo.deleted, "P0001")
		assert.Equal(t, "P0001", fx.sink.clearedPatient)
	})

	t.Run("refuses once any transaction has been paid", func(t *testing.T) {
		fx := newBillingFixture(
			testTransaction("AAAA1111", models.TransactionPaymentVerified, 150),
			testTransaction("BBBB2222", models.TransactionBillingConfirmed, 200),
		)

		err := fx.uc.CancelConfirmation(context.Background(), &requests.CancelConfirmation{
			PatientID:      "P0001",
			TransactionIDs: []string{"AAAA1111", "BBBB2222"},
		})
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
		assert.Equal(t, models.TransactionBillingConfirmed, fx.txRepo.byID["BBBB2222"].Status)
	})
}

func TestBuildInvoice(t *testing.T) {
	t.Run("unknown patient is not found", func(t *testing.T) {
		fx := newBillingFixture()

		_, err := fx.uc.BuildInvoice(context.Background(), "P9999")
		require.Error(t, err)

		customErr, ok := err.(*exceptions.CustomError)
		require.True(t, ok)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("flattens unpaid transactions into referenced lines", func(t *testing.T) {
		fx := newBillingFixture(
			testTransaction("AAAA1111", models.TransactionForBilling, 150),
			testTransaction("BBBB2222", models.TransactionForBilling, 200),
		)
		fx.patients.patients["P0001"] = testPatient("P0001", false)

		invoice, err := fx.uc.BuildInvoice(context.Background(), "P0001")
		require.NoError(t, err)

		assert.Len(t, invoice.Lines, 2)
		assert.Equal(t, float64(350), invoice.Subtotal)
		assert.Equal(t, "Juan Dela Cruz", invoice.PatientName)
		assert.NotEmpty(t, invoice.BillNumber)
		assert.False(t, invoice.HasPendingBill)
	})

	t.Run("reuses the bill number of an open pending payment", func(t *testing.T) {
		fx := newBillingFixture(testTransaction("AAAA1111", models.TransactionBillingConfirmed, 150))
		fx.patients.patients["P0001"] = testPatient("P0001", false)
		fx.paymentRepo.pending["P0001"] = &models.Payment{
			PatientID:  "P0001",
			BillNumber: "2026-00042",
			Status:     models.PaymentPending,
		}

		invoice, err := fx.uc.BuildInvoice(context.Background(), "P0001")
		require.NoError(t, err)

		assert.Equal(t, "2026-00042", invoice.BillNumber)
		assert.True(t, invoice.HasPendingBill)
	})

	t.Run("carries the approved promissory amount", func(t *testing.T) {
		fx := newBillingFixture(testTransaction("AAAA1111", models.TransactionForBilling, 500))
		fx.patients.patients["P0001"] = testPatient("P0001", false)
		fx.admissions.current["P0001"] = &models.Admission{AdmittingID: "ADMT1ABC", PatientID: "P0001"}
		fx.promissories.approved["ADMT1ABC"] = &models.Promissory{Amount: 200, Status: models.PromissoryApproved}

		invoice, err := fx.uc.BuildInvoice(context.Background(), "P0001")
		require.NoError(t, err)

		assert.Equal(t, float64(200), invoice.PromissoryAmount)
		assert.Equal(t, "ADMT1ABC", invoice.AdmittingID)
	})
}
