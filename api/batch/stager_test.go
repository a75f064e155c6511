package batch

import (
	"testing"

	"CoopSocietyPortal/api/constants"
)

func TestSummarize(t *testing.T) {
	results := []RowResult{
		{Valid: true},
		{Valid: false, Errors: []string{"amount must be a number"}},
		{Valid: true},
		{Valid: false, Errors: []string{"reg_no is required"}},
		{Valid: true},
	}

	total, valid, invalid := Summarize(results)
	if total != 5 || valid != 3 || invalid != 2 {
		t.Errorf("Summarize = (%d, %d, %d), want (5, 3, 2)", total, valid, invalid)
	}
	if total != valid+invalid {
		t.Errorf("count invariant broken: %d != %d + %d", total, valid, invalid)
	}
}

func TestDeriveStatus(t *testing.T) {
	if got := DeriveStatus(0); got != constants.BatchValidated {
		t.Errorf("DeriveStatus(0) = %s, want %s", got, constants.BatchValidated)
	}
	if got := DeriveStatus(1); got != constants.BatchPendingValidation {
		t.Errorf("DeriveStatus(1) = %s, want %s", got, constants.BatchPendingValidation)
	}
}

func TestStorageValue(t *testing.T) {
	cand := normalizeOne(t, &ContributionKind,
		"reg_no,staff_no,contribution_type,contribution_date,amount\n"+
			"CS001,,Monthly,15/03/2024,\"2,500.00\"\n")

	fieldByColumn := func(col string) FieldSpec {
		for _, f := range ContributionKind.Fields {
			if f.Column == col {
				return f
			}
		}
		t.Fatalf("no field %s", col)
		return FieldSpec{}
	}

	if got := storageValue(fieldByColumn("amount"), cand.Cells["amount"]); got != "2500" {
		t.Errorf("coerced amount stored as %v, want canonical 2500", got)
	}
	if got := storageValue(fieldByColumn("contribution_date"), cand.Cells["contribution_date"]); got != "2024-03-15" {
		t.Errorf("coerced date stored as %v, want 2024-03-15", got)
	}
	if got := storageValue(fieldByColumn("staff_no"), cand.Cells["staff_no"]); got != nil {
		t.Errorf("absent cell stored as %v, want nil", got)
	}
	if got := storageValue(fieldByColumn("reg_no"), cand.Cells["reg_no"]); got != "CS001" {
		t.Errorf("text cell stored as %v, want CS001", got)
	}
}

func TestStorageValuePreservesBadInput(t *testing.T) {
	cand := normalizeOne(t, &ContributionKind,
		"reg_no,staff_no,contribution_type,contribution_date,amount\n"+
			"CS001,ST44,Monthly,someday,abc\n")

	var amountField, dateField FieldSpec
	for _, f := range ContributionKind.Fields {
		switch f.Column {
		case "amount":
			amountField = f
		case "contribution_date":
			dateField = f
		}
	}

	if got := storageValue(amountField, cand.Cells["amount"]); got != "abc" {
		t.Errorf("uncoerced amount stored as %v, want raw abc", got)
	}
	if got := storageValue(dateField, cand.Cells["contribution_date"]); got != "someday" {
		t.Errorf("uncoerced date stored as %v, want raw someday", got)
	}
}

func TestStageBatchRejectsMismatchedInput(t *testing.T) {
	_, err := StageBatch(nil, nil, &ContributionKind, "a.csv", "Op",
		[]Candidate{{RowNum: 1}}, nil)
	if err == nil {
		t.Fatal("expected error when candidates and results differ in length")
	}
}
