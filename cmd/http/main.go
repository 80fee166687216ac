package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hims-service/internal/app/config"
	"hims-service/internal/app/delivery/http/middlewares"
	"hims-service/internal/app/delivery/http/routers"
	"hims-service/internal/app/drivers/database"
	"hims-service/internal/app/drivers/logger"
	"hims-service/internal/app/drivers/messaging"
	"hims-service/internal/app/drivers/storage"
	"hims-service/internal/app/services/core/admissions"
	"hims-service/internal/app/services/core/billing"
	"hims-service/internal/app/services/core/cashier"
	"hims-service/internal/app/services/core/charges"
	"hims-service/internal/app/services/core/medicals"
	"hims-service/internal/app/services/core/patients"
	"hims-service/internal/app/services/core/promissories"
	"hims-service/internal/app/services/shared/audit"
	"hims-service/internal/app/services/shared/notifications"
	redisRepo "hims-service/internal/app/services/shared/redis"
	minioStorage "hims-service/internal/app/services/shared/storage"
	"hims-service/internal/app/services/shared/txn"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrapLog := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootstrapLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	mongoDB := mongoClient.Database(driverConfig.MongoDB.DbName)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig.Billing.EvidenceBucketName)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapingTheApp(bootstrap, minioClient); err != nil {
		bootstrapLog.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrapLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Printf("Error while closing connections: %v", err)
	}

	bootstrapLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap, minioClient *minio.Client) error {
	// Shared infrastructure
	redisRepository := redisRepo.NewRedisRepository(bootstrap.Redis)
	storageClient := minioStorage.NewMinioStorage(minioClient)
	transactionManager := txn.NewMongoTransactionManager(bootstrap.MongoClient)
	auditSink := audit.NewAuditSink(bootstrap.MongoDB, bootstrap.Logger)
	notificationSink, err := notifications.NewNotificationSink(
		bootstrap.MongoDB,
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.App.RabbitMQEventQueue,
		bootstrap.Logger,
	)
	if err != nil {
		return err
	}
	notificationController := notifications.NewNotificationController(bootstrap.Logger, notificationSink)

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Read-only registries
	patientDirectory := patients.NewPatientMongoRepository(bootstrap.MongoDB)
	medicalRepository := medicals.NewMedicalMongoRepository(bootstrap.MongoDB)

	// Charges
	transactionRepository := charges.NewTransactionMongoRepository(bootstrap.MongoDB)
	voidedRepository := charges.NewVoidedTransactionMongoRepository(bootstrap.MongoDB)
	chargeUsecase := charges.NewChargeUsecase(
		transactionRepository,
		voidedRepository,
		redisRepository,
		notificationSink,
		transactionManager,
		bootstrap.Logger,
	)
	chargeController := charges.NewChargeController(bootstrap.Logger, chargeUsecase)

	// Admissions
	admissionRepository := admissions.NewAdmissionMongoRepository(bootstrap.MongoDB)
	dischargedPatientRepository := admissions.NewDischargedPatientMongoRepository(bootstrap.MongoDB)
	processedPatientRepository := admissions.NewProcessedPatientMongoRepository(bootstrap.MongoDB)
	admissionUsecase := admissions.NewAdmissionUsecase(
		admissionRepository,
		dischargedPatientRepository,
		processedPatientRepository,
		transactionRepository,
		medicalRepository,
		patientDirectory,
		notificationSink,
		auditSink,
		transactionManager,
		bootstrap.Logger,
	)
	admissionController := admissions.NewAdmissionController(bootstrap.Logger, admissionUsecase)

	// Promissories
	promissoryRepository := promissories.NewPromissoryMongoRepository(bootstrap.MongoDB)
	promissoryUsecase := promissories.NewPromissoryUsecase(
		promissoryRepository,
		patientDirectory,
		admissionRepository,
		transactionRepository,
		storageClient,
		notificationSink,
		auditSink,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	promissoryController := promissories.NewPromissoryController(bootstrap.Logger, promissoryUsecase, bootstrap.InternalConfig)

	// Billing
	paymentRepository := billing.NewPaymentMongoRepository(bootstrap.MongoDB)
	billingUsecase := billing.NewBillingUsecase(
		paymentRepository,
		transactionRepository,
		patientDirectory,
		admissionRepository,
		promissoryUsecase,
		notificationSink,
		auditSink,
		transactionManager,
		bootstrap.Logger,
	)
	billingController := billing.NewBillingController(bootstrap.Logger, billingUsecase)

	// Cashier
	cashierPaymentRepository := cashier.NewCashierPaymentMongoRepository(bootstrap.MongoDB)
	receiptRepository := cashier.NewReceiptMongoRepository(bootstrap.MongoDB)
	cashierUsecase := cashier.NewCashierUsecase(
		paymentRepository,
		transactionRepository,
		cashierPaymentRepository,
		receiptRepository,
		promissoryRepository,
		redisRepository,
		notificationSink,
		auditSink,
		transactionManager,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	cashierController := cashier.NewCashierController(bootstrap.Logger, cashierUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		chargeController,
		billingController,
		promissoryController,
		cashierController,
		admissionController,
		notificationController,
	)

	return nil
}
