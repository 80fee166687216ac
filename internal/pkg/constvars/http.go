package constvars

const (
	MIMEApplicationJSON = "application/json"
	MIMEMultipartForm   = "multipart/form-data"

	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)

const (
	URLParamTransactionID = "transactionID"
	URLParamServiceID     = "serviceID"
	URLParamPatientID     = "patientID"
	URLParamPaymentID     = "paymentID"
	URLParamPromissoryID  = "promissoryID"
	URLParamAdmissionID   = "admissionID"
	URLParamDepartment    = "department"

	QueryParamPage     = "page"
	QueryParamPageSize = "pageSize"
)

const (
	StatusOK                  = 200
	StatusCreated             = 201
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusInternalServerError = 500
	StatusGatewayTimeout      = 504
)
