package batch

import (
	"fmt"
	"strings"
)

// RowResult is the outcome of validating one candidate record. Errors holds
// every defect found, in field order; rules never short-circuit each other.
type RowResult struct {
	Valid  bool
	Errors []string
}

// JoinedErrors renders the defect list for storage on the staged row.
func (r RowResult) JoinedErrors() string {
	return strings.Join(r.Errors, "; ")
}

// ValidateCandidate applies the kind's rule set to one candidate. It is a
// pure function: the same candidate always yields the same result.
func ValidateCandidate(kind *RecordKind, c Candidate) RowResult {
	var errs []string
	for _, f := range kind.Fields {
		cell := c.Cells[f.Column]
		if !cell.Present() {
			if f.Required {
				errs = append(errs, fmt.Sprintf("%s is required", f.Column))
			}
			continue
		}
		switch f.Type {
		case FieldNumber:
			if !cell.Number.Valid {
				errs = append(errs, fmt.Sprintf("%s must be a number", f.Column))
			} else if f.Positive && !cell.Number.Decimal.IsPositive() {
				errs = append(errs, fmt.Sprintf("%s must be greater than zero", f.Column))
			}
		case FieldInteger:
			if !cell.Number.Valid {
				errs = append(errs, fmt.Sprintf("%s must be a number", f.Column))
			} else if !cell.Number.Decimal.IsInteger() {
				errs = append(errs, fmt.Sprintf("%s must be a whole number", f.Column))
			}
		case FieldDate:
			if cell.Date == nil {
				errs = append(errs, fmt.Sprintf("%s is not a recognizable date", f.Column))
			}
		}
	}
	return RowResult{Valid: len(errs) == 0, Errors: errs}
}
