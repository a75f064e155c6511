package batch

import (
	"testing"
)

func mustGrid(t *testing.T, csv string) *Grid {
	t.Helper()
	grid, err := DecodeWorkbook([]byte(csv))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return grid
}

func TestNormalizeRowContribution(t *testing.T) {
	grid := mustGrid(t, "reg_no,staff_no,contribution_type,contribution_date,amount\n"+
		"CS001,ST44,Monthly,15/03/2024,\"1,250,000.50\"\n")

	c := NormalizeRow(&ContributionKind, grid, 1, grid.Rows[0])

	if c.RowNum != 1 {
		t.Errorf("row num = %d, want 1", c.RowNum)
	}
	amount := c.Cells["amount"]
	if !amount.Number.Valid {
		t.Fatal("grouped amount did not coerce")
	}
	if got := amount.Number.Decimal.String(); got != "1250000.5" {
		t.Errorf("amount = %s, want 1250000.5", got)
	}
	date := c.Cells["contribution_date"]
	if date.Date == nil {
		t.Fatal("contribution_date did not coerce")
	}
	if got := date.Date.Format("2006-01-02"); got != "2024-03-15" {
		t.Errorf("contribution_date = %s, want 2024-03-15", got)
	}
}

func TestNormalizeRowFlagsBadCoercions(t *testing.T) {
	grid := mustGrid(t, "reg_no,staff_no,contribution_type,contribution_date,amount\n"+
		"CS002,ST45,Monthly,someday,abc\n")

	c := NormalizeRow(&ContributionKind, grid, 1, grid.Rows[0])

	amount := c.Cells["amount"]
	if !amount.Present() {
		t.Fatal("raw amount text must be preserved")
	}
	if amount.Number.Valid {
		t.Error("non-numeric amount must not coerce")
	}
	if amount.Raw != "abc" {
		t.Errorf("raw amount = %q, want abc", amount.Raw)
	}
	if c.Cells["contribution_date"].Date != nil {
		t.Error("unparseable date must not coerce")
	}
}

func TestNormalizeRowAbsentCells(t *testing.T) {
	grid := mustGrid(t, "reg_no,staff_no,contribution_type,contribution_date,amount\n"+
		"CS003,,,,\n")

	c := NormalizeRow(&ContributionKind, grid, 1, grid.Rows[0])

	if c.Cells["staff_no"].Present() {
		t.Error("blank staff_no must read as absent")
	}
	if !c.Cells["reg_no"].Present() {
		t.Error("reg_no must read as present")
	}
}
