package constvars

const (
	MongoCollectionTransactions       = "transactions"
	MongoCollectionVoidedTransactions = "voided_transactions"
	MongoCollectionPayments           = "payments"
	MongoCollectionPromissories       = "promissories"
	MongoCollectionCashierPayments    = "cashier_payments"
	MongoCollectionReceipts           = "receipts"
	MongoCollectionAdmissions         = "admissions"
	MongoCollectionDischargedPatients = "discharged_patients"
	MongoCollectionPatients           = "patients"
	MongoCollectionMedicals           = "medicals"
	MongoCollectionProcessedPatients  = "processed_patients"
	MongoCollectionNotifications      = "notifications"
	MongoCollectionAuditLogs          = "audit_logs"
)
