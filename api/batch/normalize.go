package batch

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Cell is one coerced value of a candidate record. Raw always carries the
// trimmed cell text; Number/Date are set only when coercion succeeded. A
// present Raw with an unset typed value is how a parse failure is flagged
// for the validator.
type Cell struct {
	Raw    string
	Number decimal.NullDecimal
	Date   *time.Time
}

// Present reports whether the source cell held any value at all.
func (c Cell) Present() bool { return c.Raw != "" }

// Candidate is one normalized data row, keyed by staging column name.
type Candidate struct {
	RowNum int
	Cells  map[string]Cell
}

// NormalizeRow maps one raw data row into a Candidate for the given kind.
// It is a pure transformation: coercion failures are recorded, never raised,
// because validation, not parsing, decides acceptability.
func NormalizeRow(kind *RecordKind, grid *Grid, rowNum int, row []string) Candidate {
	c := Candidate{RowNum: rowNum, Cells: make(map[string]Cell, len(kind.Fields))}
	for _, f := range kind.Fields {
		cell := Cell{Raw: grid.Cell(row, f.Header)}
		if cell.Raw != "" {
			switch f.Type {
			case FieldNumber, FieldInteger:
				if d, err := decimal.NewFromString(stripGrouping(cell.Raw)); err == nil {
					cell.Number = decimal.NullDecimal{Decimal: d, Valid: true}
				}
			case FieldDate:
				if t, ok := ParseCellDate(cell.Raw); ok {
					cell.Date = &t
				}
			}
		}
		c.Cells[f.Column] = cell
	}
	return c
}

// stripGrouping removes thousands separators and currency padding so that
// "1,250,000.50" parses as a number.
func stripGrouping(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}
