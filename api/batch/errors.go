package batch

import (
	"errors"
	"fmt"
	"strings"
)

// Input-shape errors, detected before any row is processed.
var (
	ErrUnreadableFile = errors.New("file could not be parsed as spreadsheet data")
	ErrEmptySheet     = errors.New("spreadsheet contains no readable rows")
)

// State-conflict errors raised by the approval engine.
var (
	ErrBatchNotFound        = errors.New("upload batch not found")
	ErrInvalidBatchState    = errors.New("batch is already in a terminal state")
	ErrBatchNotApprovable   = errors.New("batch has unresolved invalid records")
	ErrEmptyRejectionReason = errors.New("rejection reason must not be empty")
)

// MissingHeadersError reports every required header absent from the sheet.
type MissingHeadersError struct {
	Missing []string
}

func (e *MissingHeadersError) Error() string {
	return fmt.Sprintf("missing required headers: %s", strings.Join(e.Missing, ", "))
}
