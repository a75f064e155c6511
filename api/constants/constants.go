package constants

// Common error messages
const (
	ErrInvalidSession     = "invalid user_id or session"
	ErrInvalidJSON        = "invalid json or missing fields"
	ErrMissingUserID      = "Missing or invalid user_id in body"
	ErrUserIDRequired     = "user_id required"
	ErrInvalidRequestBody = "Invalid request body"
	ErrPleaseLogin        = "Please login to continue."
	ErrMethodNotAllowed   = "Method Not Allowed"
)

// Content Types
const (
	ContentTypeJSON   = "application/json"
	HeaderContentType = "Content-Type"
)

// Date formats
const (
	DateFormat      = "2006-01-02"
	DateFormatSlash = "02/Jan/2006"
	DateFormatDash  = "02-Jan-2006"
	TimestampFormat = "2006-01-02 15:04:05"
)

// Upload batch lifecycle statuses. Pending exists only inside the staging
// transaction; a committed batch is always in one of the other four.
const (
	BatchPending           = "Pending"
	BatchPendingValidation = "PendingValidation"
	BatchValidated         = "Validated"
	BatchApproved          = "Approved"
	BatchRejected          = "Rejected"
)

// Per-row validation outcomes on staged records.
const (
	RowValid   = "Valid"
	RowInvalid = "Invalid"
)

// Upload kinds accepted by the batch pipeline.
const (
	KindLoan         = "loan"
	KindContribution = "contribution"
	KindTransaction  = "transaction"
)

// Member statuses
const (
	MemberActive  = "Active"
	MemberDormant = "Dormant"
	MemberExited  = "Exited"
)
