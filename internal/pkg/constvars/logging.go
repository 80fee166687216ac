package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingRequestKey       = "request"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingStatusCodeKey    = "status_code"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingOperationKey     = "operation"
	LoggingErrorTypeKey     = "error_type"
	LoggingErrorCodeKey     = "error_code"
	LoggingErrorMessageKey  = "error_message"
	LoggingPatientIDKey     = "patient_id"
	LoggingPatientHRNKey    = "patient_hrn"
	LoggingTransactionIDKey = "transaction_id"
	LoggingPaymentIDKey     = "payment_id"
	LoggingPromissoryIDKey  = "promissory_id"
	LoggingAdmissionIDKey   = "admission_id"
	LoggingAdmittingIDKey   = "admitting_id"
	LoggingORNumberKey      = "or_number"
	LoggingBillNumberKey    = "bill_number"
)
