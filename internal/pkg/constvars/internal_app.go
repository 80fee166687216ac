package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_STAFF_NAME_KEY           ContextKey = "staff_name"
)

const (
	ResourceCharges      = "charges"
	ResourceBilling      = "billing"
	ResourcePromissories = "promissories"
	ResourceCashier      = "cashier"
	ResourceAdmissions   = "admissions"
)

// Department names as rendered on notifications and voided-charge records.
const (
	DepartmentOPD        = "OPD"
	DepartmentEmergency  = "Emergency"
	DepartmentBilling    = "Billing"
	DepartmentCashier    = "Cashier"
	DepartmentPromissory = "Promissory"
)

const (
	// ChargeSlipReplayWindowSeconds is how long a charge-slip idempotency key
	// is held; resubmission of an identical slip inside this window is
	// treated as already applied.
	ChargeSlipReplayWindowSeconds = 8

	// IdentifierGenerationMaxAttempts bounds retries when a generated
	// identifier collides with an existing document.
	IdentifierGenerationMaxAttempts = 3
)

const (
	ORNumberPrefixFormat  = "OR-%d-"
	ORNumberFormat        = "OR-%d-%05d"
	BillNumberFormat      = "%d-%05d"
	AdmittingIDPrefix     = "ADMT"
	ORSequenceKeyFormat   = "or_seq:%d"
	ChargeReplayKeyFormat = "charge_replay:%s"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	DefaultProcessedBy = "Cashier"
	DefaultVoidedBy    = "Staff"
	DefaultApprovedBy  = "Admin"
)

const (
	PaymentMethodCash = "Cash"
)
