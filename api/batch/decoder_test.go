package batch

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeWorkbookCSV(t *testing.T) {
	data := []byte("reg_no,staff_no,amount\nCS001,ST44,5000\n\nCS002,ST45,7500\n")

	grid, err := DecodeWorkbook(data)
	if err != nil {
		t.Fatalf("decode csv: %v", err)
	}
	if len(grid.Headers) != 3 {
		t.Fatalf("expected 3 headers, got %d", len(grid.Headers))
	}
	if len(grid.Rows) != 2 {
		t.Fatalf("expected 2 data rows (blank dropped), got %d", len(grid.Rows))
	}
	if got := grid.Cell(grid.Rows[1], "staff_no"); got != "ST45" {
		t.Errorf("expected staff_no ST45, got %q", got)
	}
}

func TestDecodeWorkbookXLSX(t *testing.T) {
	data := buildXLSX(t, [][]interface{}{
		{"reg_no", "staff_no", "amount"},
		{"CS010", "ST90", 2500},
	})

	grid, err := DecodeWorkbook(data)
	if err != nil {
		t.Fatalf("decode xlsx: %v", err)
	}
	if len(grid.Rows) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(grid.Rows))
	}
	if got := grid.Cell(grid.Rows[0], "reg_no"); got != "CS010" {
		t.Errorf("expected reg_no CS010, got %q", got)
	}
	if got := grid.Cell(grid.Rows[0], "amount"); got != "2500" {
		t.Errorf("expected amount 2500, got %q", got)
	}
}

func TestDecodeWorkbookUnreadable(t *testing.T) {
	// Not a zip, not a compound file, and an unterminated csv quote.
	data := []byte("\x00\x01\x02\"broken")

	_, err := DecodeWorkbook(data)
	if !errors.Is(err, ErrUnreadableFile) {
		t.Fatalf("expected ErrUnreadableFile, got %v", err)
	}
}

func TestDecodeWorkbookEmpty(t *testing.T) {
	data := []byte("\n  ,  ,\n,,\n")

	_, err := DecodeWorkbook(data)
	if !errors.Is(err, ErrEmptySheet) {
		t.Fatalf("expected ErrEmptySheet, got %v", err)
	}
}

func TestDecodeWorkbookBlankHeaderKeepsPosition(t *testing.T) {
	data := []byte("reg_no,,amount\nCS001,ignored,900\n")

	grid, err := DecodeWorkbook(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(grid.Headers) != 3 {
		t.Fatalf("expected 3 header slots, got %d", len(grid.Headers))
	}
	if _, ok := grid.Index[""]; ok {
		t.Error("blank header must not be indexed")
	}
	if got := grid.Cell(grid.Rows[0], "amount"); got != "900" {
		t.Errorf("column after blank header misaligned: got %q", got)
	}
}

func TestRequireHeaders(t *testing.T) {
	grid, err := DecodeWorkbook([]byte("reg_no,amount\nCS001,10\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if err := grid.RequireHeaders([]string{"reg_no", "amount"}); err != nil {
		t.Errorf("expected headers present, got %v", err)
	}

	err = grid.RequireHeaders([]string{"reg_no", "staff_no", "contribution_date"})
	var missing *MissingHeadersError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingHeadersError, got %v", err)
	}
	if len(missing.Missing) != 2 {
		t.Fatalf("expected 2 missing headers, got %v", missing.Missing)
	}
	if missing.Missing[0] != "staff_no" || missing.Missing[1] != "contribution_date" {
		t.Errorf("missing headers out of order: %v", missing.Missing)
	}
}

func TestGridCellShortRow(t *testing.T) {
	grid, err := DecodeWorkbook([]byte("reg_no,staff_no,amount\nCS001\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := grid.Cell(grid.Rows[0], "amount"); got != "" {
		t.Errorf("short row should read as blank, got %q", got)
	}
}
