package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Charge ledger
	ChargeSlipCreatedSuccess   = "charge slip submitted for billing"
	ChargeSlipReplayedSuccess  = "charge slip already submitted"
	ServiceVoidedSuccess       = "service voided successfully"
	ServicesVoidedSuccess      = "services voided successfully"
	GetVoidedChargesSuccess    = "get voided charges successfully"
	GetPatientChargesSuccess   = "get patient charges successfully"

	// Billing
	BillingConfirmedSuccess    = "transactions confirmed for billing"
	BillingCancelledSuccess    = "transactions reverted to For Billing"
	GetBillingWorklistSuccess  = "get billing worklist successfully"
	GetBillingInvoiceSuccess   = "get billing invoice successfully"
	GetPaymentsSuccess         = "get payment records successfully"

	// Promissory
	PromissorySubmittedSuccess = "promissory note submitted"
	PromissoryUpdatedSuccess   = "promissory note updated"
	GetPromissoriesSuccess     = "get promissory notes successfully"

	// Cashier
	PaymentVerifiedSuccess     = "payment verified and receipt generated successfully"
	GetPendingPaymentsSuccess  = "get pending payments successfully"
	GetReceiptPreviewSuccess   = "get receipt preview successfully"

	// Admission lifecycle
	PatientAdmittedSuccess     = "patient admitted successfully"
	AdmissionClearedSuccess    = "admission marked as cleared"
	DischargeCompletedSuccess  = "discharge completed successfully"
	AdmissionCancelledSuccess  = "admission cancelled successfully"
	DischargeNurseSetSuccess   = "discharge nurse assigned"
	GetAdmissionsSuccess       = "get admissions successfully"
	GetDischargedSuccess       = "get discharged patients successfully"

	// Notifications
	GetNotificationsSuccess    = "get unread notifications successfully"
)
