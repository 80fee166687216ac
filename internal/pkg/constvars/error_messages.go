package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
	"gte":   true,
}

// Error messages for clients
const (
	ErrClientSomethingWrongWithApplication = "something wrong with the application"
	ErrClientCannotProcessRequest          = "unable to process the request"
	ErrClientServerLongRespond             = "the server took too long to respond"

	ErrClientPatientNotFound         = "patient not found"
	ErrClientPatientArchived         = "patient is archived"
	ErrClientMedicalRecordNotFound   = "please create a medical record first"
	ErrClientTransactionNotFound     = "transaction not found"
	ErrClientPaymentNotFound         = "payment record not found"
	ErrClientPromissoryNotFound      = "promissory note not found"
	ErrClientAdmissionNotFound       = "admission not found"
	ErrClientNoTransactionsProvided  = "no transactions provided"
	ErrClientNoServicesSelected      = "no services selected"
	ErrClientEmptyChargeSlip         = "charge slip has no valid service lines"
	ErrClientInvalidVoidReason       = "invalid void reason"
	ErrClientVoidAfterPaid           = "cannot void: transaction has been paid"
	ErrClientVoidAfterConfirmed      = "cannot void: transaction has been confirmed by billing"
	ErrClientCancelAfterVerified     = "cannot cancel: payment has already been verified by cashier, please contact cashier department"
	ErrClientMissingReceiptInfo      = "missing receipt information"
	ErrClientAdmissionNotCleared     = "admission is not cleared yet"
	ErrClientAdmissionHasProcessing  = "cannot cancel: patient has been processed (has diagnoses or charges)"
	ErrClientUnverifiedTransactions  = "cannot clear: there are unverified transactions for this admission"
	ErrClientPromissoryNotPending    = "can only edit amount for pending promissory notes"
	ErrClientPromissoryBadTransition = "promissory status change is not allowed"
	ErrClientPromissoryAlreadyOpen   = "patient already has an open promissory for this admission"
	ErrClientPatientAlreadyAdmitted  = "patient already has an active admission"
	ErrClientORNumberExhausted       = "unable to allocate a receipt number"
	ErrClientStateChanged            = "record was modified by another request, please retry"
)

// Error messages for developers
const (
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "failed to parse JSON request body"
	ErrDevCannotParseMultipartForm  = "failed to parse multipart form"
	ErrDevCannotMarshalJSON         = "failed to marshal value to JSON"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevDBFailedToFindDocument    = "failed to find document in DB"
	ErrDevDBFailedToInsertDocument  = "failed to insert document to DB"
	ErrDevDBFailedToUpdateDocument  = "failed to update document in DB"
	ErrDevDBFailedToDeleteDocument  = "failed to delete document from DB"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from DB"
	ErrDevDBFailedToAggregate       = "failed to run aggregation in DB"
	ErrDevDBStringNotObjectID       = "given string is not a valid ObjectID"
	ErrDevDBTransactionFailed       = "mongo transaction failed"
	ErrDevDBDuplicateKey            = "duplicate key on insert"
	ErrDevRedisSet                  = "failed to set value to redis"
	ErrDevRedisGet                  = "failed to get value from redis"
	ErrDevRedisDelete               = "failed to delete value from redis"
	ErrDevRedisIncrement            = "failed to increment value in redis"
	ErrDevMinioCreateObject         = "failed to put object to bucket %s"
	ErrDevStatusPrecondition        = "document status did not match expected state"
	ErrDevORSequenceExhausted       = "OR number collided after maximum retries"
)
