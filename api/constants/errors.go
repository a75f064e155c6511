package constants

import "fmt"

// ============================================================================
// AUTHENTICATION & SESSION ERRORS
// ============================================================================

const (
	ErrInvalidCredentials = "Invalid credentials or member not found"
	ErrSessionExpired     = "Your session has expired. Please login again"
	ErrUnauthorized       = "You are not authorized to perform this action"
)

// ============================================================================
// VALIDATION ERRORS - Members
// ============================================================================

const (
	ErrNoMembers           = "No members found"
	ErrMemberNotFound      = "Member not found in the register"
	ErrMemberCreateFailed  = "Failed to create member. Please check if the registration number already exists"
	ErrMemberUpdateFailed  = "Failed to update member. Please verify the registration number and try again"
	ErrMemberRegNoRequired = "Member registration number is required"
)

// ============================================================================
// FILE UPLOAD ERRORS
// ============================================================================

const (
	ErrFileRequired      = "No file uploaded. Attach the spreadsheet as 'file'"
	ErrFileUnreadable    = "Uploaded file could not be read as a spreadsheet"
	ErrFileEmpty         = "Uploaded spreadsheet contains no rows"
	ErrMissingHeaders    = "Spreadsheet is missing required headers: %s"
	ErrUnknownUploadKind = "Unknown upload kind: %s"
)

// ============================================================================
// BATCH DECISION ERRORS
// ============================================================================

const (
	ErrBatchIDRequired     = "batch_id is required"
	ErrBatchNotFound       = "Upload batch not found"
	ErrBatchAlreadyDecided = "This batch has already been approved or rejected"
	ErrBatchHasInvalidRows = "Batch cannot be approved while it has invalid records. Correct the file and upload again"
	ErrRejectReasonMissing = "A rejection reason is required"
)

// ============================================================================
// DATABASE OPERATION ERRORS
// ============================================================================

const (
	ErrDatabaseConnection = "Database connection failed. Please try again later"
	ErrQueryFailed        = "Database query failed. Please contact support if this persists"
	ErrTransactionFailed  = "Transaction failed. Please try again"
	ErrStagingFailed      = "Failed to stage the uploaded file. No records were saved"
)

// ============================================================================
// GENERAL
// ============================================================================

const (
	ErrInternalServer = "Internal server error. Please contact support"
	ErrNoDataFound    = "No data found matching your criteria"

	SuccessUploaded = "File staged successfully. %d records processed"
	SuccessApproved = "Batch approved and promoted to the ledger"
	SuccessRejected = "Batch rejected"
)

// FormatError formats an error message with additional context
func FormatError(baseError string, context ...interface{}) string {
	if len(context) == 0 {
		return baseError
	}
	return fmt.Sprintf(baseError, context...)
}
