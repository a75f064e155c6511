package batch

import (
	"reflect"
	"strings"
	"testing"
)

func normalizeOne(t *testing.T, kind *RecordKind, csv string) Candidate {
	t.Helper()
	grid := mustGrid(t, csv)
	if len(grid.Rows) != 1 {
		t.Fatalf("fixture must hold exactly one data row, got %d", len(grid.Rows))
	}
	return NormalizeRow(kind, grid, 1, grid.Rows[0])
}

const loanHeader = "ref_no,staff_no,reg_no,loan_type,amount_requested,monthly_repayment,repayment_period,interest_rate,purpose,date_applied\n"

func TestValidateLoanCandidate(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		valid    bool
		wantErrs []string
	}{
		{
			name:  "fully valid",
			row:   "LN-1,ST44,CS001,Housing,500000,25000,24,3.5,House build,15/03/2024\n",
			valid: true,
		},
		{
			name:  "optional fields blank",
			row:   ",ST44,CS001,,500000,,,,,\n",
			valid: true,
		},
		{
			name:     "missing staff_no",
			row:      "LN-1,,CS001,Housing,500000,,,,,\n",
			wantErrs: []string{"staff_no is required"},
		},
		{
			name:     "zero amount",
			row:      "LN-1,ST44,CS001,Housing,0,,,,,\n",
			wantErrs: []string{"amount_requested must be greater than zero"},
		},
		{
			name:     "fractional repayment period",
			row:      "LN-1,ST44,CS001,Housing,500000,,12.5,,,\n",
			wantErrs: []string{"repayment_period must be a whole number"},
		},
		{
			name: "defects accumulate",
			row:  "LN-1,,,Housing,abc,xyz,1.5,,,yesterday\n",
			wantErrs: []string{
				"staff_no is required",
				"reg_no is required",
				"amount_requested must be a number",
				"monthly_repayment must be a number",
				"repayment_period must be a whole number",
				"date_applied is not a recognizable date",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cand := normalizeOne(t, &LoanKind, loanHeader+tc.row)
			got := ValidateCandidate(&LoanKind, cand)
			if got.Valid != tc.valid {
				t.Fatalf("valid = %v, want %v (errors: %v)", got.Valid, tc.valid, got.Errors)
			}
			if tc.valid {
				return
			}
			if !reflect.DeepEqual(got.Errors, tc.wantErrs) {
				t.Errorf("errors = %v, want %v", got.Errors, tc.wantErrs)
			}
		})
	}
}

func TestValidateContributionBadAmountNamesField(t *testing.T) {
	cand := normalizeOne(t, &ContributionKind,
		"reg_no,staff_no,contribution_type,contribution_date,amount\nCS001,ST44,Monthly,15/03/2024,abc\n")

	got := ValidateCandidate(&ContributionKind, cand)
	if got.Valid {
		t.Fatal("expected invalid result")
	}
	if !strings.Contains(got.JoinedErrors(), "amount") {
		t.Errorf("error must name the offending field, got %q", got.JoinedErrors())
	}
}

func TestValidateCandidateIsDeterministic(t *testing.T) {
	cand := normalizeOne(t, &TransactionKind,
		"reg_no,staff_no,transaction_type,transaction_date,amount,description\nCS001,,,junk,-5,\n")

	first := ValidateCandidate(&TransactionKind, cand)
	second := ValidateCandidate(&TransactionKind, cand)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same candidate validated differently: %v vs %v", first, second)
	}
	if first.Valid {
		t.Error("expected invalid result")
	}
}
