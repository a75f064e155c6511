package batch

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Layouts tried in order for free-text dates. dd/mm/yyyy variants come before
// mm/dd/yyyy; member societies submit day-first sheets.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006", "2/1/2006", "02-01-2006", "2-1-2006",
	"01/02/2006", "1/2/2006",
	"02-Jan-2006", "02-Jan-06", "2-Jan-2006",
	"02/Jan/2006", "2 Jan 2006", "2 January 2006",
	"2006/01/02", "2006.01.02",
	"2006-01-02 15:04:05", "2006-01-02T15:04:05", time.RFC3339,
}

// ParseCellDate turns one raw cell into a calendar date. It accepts either a
// free-text date in any known layout or an Excel day-serial number (with an
// optional fractional time-of-day). The result carries no time component.
// Unparseable input returns ok=false, never an error; the validator decides
// whether a missing date matters.
func ParseCellDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t), true
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return truncateToDay(t), true
		}
	}
	return time.Time{}, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
