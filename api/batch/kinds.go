package batch

import (
	"CoopSocietyPortal/api/constants"
)

// FieldType drives both coercion in the normalizer and the generic rules in
// the validator.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumber
	FieldInteger
	FieldDate
)

// FieldSpec describes one spreadsheet column of a record kind. Header is the
// name expected in the sheet, Column the staging-table column it lands in
// (identical today, kept separate so a sheet rename never forces a schema
// change).
type FieldSpec struct {
	Header   string
	Column   string
	Type     FieldType
	Required bool
	// Positive applies to FieldNumber: the parsed amount must be > 0.
	Positive bool
}

// RecordKind bundles everything that differs between loan, contribution and
// transaction uploads: headers, coercion, validation and where staged rows go
// on approval. The pipeline itself is kind-agnostic.
type RecordKind struct {
	Name         string
	StagingTable string
	Fields       []FieldSpec
	PromoteSQL   string
}

// RequiredHeaders lists every header the sheet must carry for this kind.
// All declared columns must be present even when their values are optional.
func (k *RecordKind) RequiredHeaders() []string {
	names := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		names[i] = f.Header
	}
	return names
}

// Columns lists the staging-table columns in field order.
func (k *RecordKind) Columns() []string {
	cols := make([]string, len(k.Fields))
	for i, f := range k.Fields {
		cols[i] = f.Column
	}
	return cols
}

var LoanKind = RecordKind{
	Name:         constants.KindLoan,
	StagingTable: "staged_loans",
	Fields: []FieldSpec{
		{Header: "ref_no", Column: "ref_no", Type: FieldText},
		{Header: "staff_no", Column: "staff_no", Type: FieldText, Required: true},
		{Header: "reg_no", Column: "reg_no", Type: FieldText, Required: true},
		{Header: "loan_type", Column: "loan_type", Type: FieldText},
		{Header: "amount_requested", Column: "amount_requested", Type: FieldNumber, Required: true, Positive: true},
		{Header: "monthly_repayment", Column: "monthly_repayment", Type: FieldNumber},
		{Header: "repayment_period", Column: "repayment_period", Type: FieldInteger},
		{Header: "interest_rate", Column: "interest_rate", Type: FieldNumber},
		{Header: "purpose", Column: "purpose", Type: FieldText},
		{Header: "date_applied", Column: "date_applied", Type: FieldDate},
	},
	PromoteSQL: `
		INSERT INTO loans (
			batch_id, ref_no, staff_no, reg_no, loan_type, amount_requested,
			monthly_repayment, repayment_period, interest_rate, purpose, date_applied
		)
		SELECT batch_id, ref_no, staff_no, reg_no, loan_type, amount_requested::numeric,
			monthly_repayment::numeric, repayment_period::int, interest_rate::numeric, purpose, date_applied::date
		FROM staged_loans
		WHERE batch_id = $1 AND validation_status = 'Valid'
	`,
}

var ContributionKind = RecordKind{
	Name:         constants.KindContribution,
	StagingTable: "staged_contributions",
	Fields: []FieldSpec{
		{Header: "reg_no", Column: "reg_no", Type: FieldText, Required: true},
		{Header: "staff_no", Column: "staff_no", Type: FieldText, Required: true},
		{Header: "contribution_type", Column: "contribution_type", Type: FieldText},
		{Header: "contribution_date", Column: "contribution_date", Type: FieldDate, Required: true},
		{Header: "amount", Column: "amount", Type: FieldNumber, Required: true, Positive: true},
	},
	PromoteSQL: `
		INSERT INTO contributions (
			batch_id, reg_no, staff_no, contribution_type, contribution_date, amount
		)
		SELECT batch_id, reg_no, staff_no, contribution_type, contribution_date::date, amount::numeric
		FROM staged_contributions
		WHERE batch_id = $1 AND validation_status = 'Valid'
	`,
}

var TransactionKind = RecordKind{
	Name:         constants.KindTransaction,
	StagingTable: "staged_transactions",
	Fields: []FieldSpec{
		{Header: "reg_no", Column: "reg_no", Type: FieldText, Required: true},
		{Header: "staff_no", Column: "staff_no", Type: FieldText},
		{Header: "transaction_type", Column: "transaction_type", Type: FieldText, Required: true},
		{Header: "transaction_date", Column: "transaction_date", Type: FieldDate, Required: true},
		{Header: "amount", Column: "amount", Type: FieldNumber, Required: true, Positive: true},
		{Header: "description", Column: "description", Type: FieldText},
	},
	PromoteSQL: `
		INSERT INTO ledger_transactions (
			batch_id, reg_no, staff_no, transaction_type, transaction_date, amount, description
		)
		SELECT batch_id, reg_no, staff_no, transaction_type, transaction_date::date, amount::numeric, description
		FROM staged_transactions
		WHERE batch_id = $1 AND validation_status = 'Valid'
	`,
}

// KindByName resolves the {kind} path segment of the upload endpoints.
func KindByName(name string) (*RecordKind, bool) {
	switch name {
	case constants.KindLoan:
		return &LoanKind, true
	case constants.KindContribution:
		return &ContributionKind, true
	case constants.KindTransaction:
		return &TransactionKind, true
	}
	return nil, false
}
