package batch

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Grid is the rectangular result of decoding one uploaded spreadsheet:
// a trimmed header row plus the raw data rows beneath it. Blank header
// cells keep their column position but are excluded from Index so that
// row values still line up by column.
type Grid struct {
	Headers []string
	Index   map[string]int
	Rows    [][]string
}

// DecodeWorkbook parses raw upload bytes into a Grid. It tries xlsx first,
// then legacy xls, then csv, the formats member societies actually send.
func DecodeWorkbook(data []byte) (*Grid, error) {
	rows, ok := readXLSX(data)
	if !ok {
		rows, ok = readXLS(data)
	}
	if !ok {
		rows, ok = readCSV(data)
	}
	if !ok {
		return nil, ErrUnreadableFile
	}

	// Drop rows that are entirely blank; sheets exported from Excel often
	// carry trailing empties.
	cleaned := make([][]string, 0, len(rows))
	for _, row := range rows {
		if !rowEmpty(row) {
			cleaned = append(cleaned, row)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(cleaned[0]))
	index := make(map[string]int, len(cleaned[0]))
	for i, h := range cleaned[0] {
		h = strings.TrimSpace(h)
		headers[i] = h
		if h != "" {
			index[h] = i
		}
	}
	return &Grid{Headers: headers, Index: index, Rows: cleaned[1:]}, nil
}

// RequireHeaders checks that every named header was recognized, before any
// row is normalized. All absences are reported together.
func (g *Grid) RequireHeaders(names []string) error {
	var missing []string
	for _, name := range names {
		if _, ok := g.Index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingHeadersError{Missing: missing}
	}
	return nil
}

// Cell returns the trimmed value of the named column in the given data row,
// or "" when the column is absent or the row is short.
func (g *Grid) Cell(row []string, header string) string {
	i, ok := g.Index[header]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readXLSX(data []byte) ([][]string, bool) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, false
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, false
	}
	return rows, true
}

func readXLS(data []byte) ([][]string, bool) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil || wb == nil {
		return nil, false
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, false
	}
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		vals := make([]string, 0, row.LastCol()+1)
		for j := 0; j <= row.LastCol(); j++ {
			vals = append(vals, row.Col(j))
		}
		rows = append(rows, vals)
	}
	return rows, true
}

func readCSV(data []byte) ([][]string, bool) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, false
	}
	return rows, true
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
