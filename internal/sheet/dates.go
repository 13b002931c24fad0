package sheet

import (
	"math"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
)

// serialEpoch is the spreadsheet serial-date epoch: serial 0 is 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts is tried in order; day-first formats come before anything
// ambiguous because the sheets are filled in DD/MM.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
	"02/01/06",
}

// ParseDate converts a raw cell into a calendar date. Numeric cells are
// spreadsheet day-count serials (truncated to whole days); strings are
// parsed day-first. The second return is false for nil, unparseable or
// foreign-typed values; the caller decides whether to count or drop them.
func ParseDate(v any) (civil.Date, bool) {
	switch value := v.(type) {
	case nil:
		return civil.Date{}, false
	case civil.Date:
		return value, value.IsValid()
	case int64:
		return serialToDate(value), true
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return civil.Date{}, false
		}
		return serialToDate(int64(math.Trunc(value))), true
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return civil.Date{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return civil.DateOf(t), true
			}
		}
		return civil.Date{}, false
	default:
		return civil.Date{}, false
	}
}

func serialToDate(days int64) civil.Date {
	return civil.DateOf(serialEpoch.AddDate(0, 0, int(days)))
}

// DateColumn is the canonical name every source's date ends up under.
const DateColumn = "fecha"

// ResolveDateColumn locates the date column by alias search, parses every
// row and stores the result under the canonical "fecha" key (nil when
// invalid). Returns how many rows failed to parse. Sheets with named
// headers use this entry point.
func ResolveDateColumn(rs *RecordSet, log zerolog.Logger, candidates ...string) int {
	source, ok := Resolve(rs.Columns, candidates...)
	if !ok {
		log.Warn().Strs("candidates", candidates).Msg("columna de fecha no encontrada")
		rs.EnsureColumn(DateColumn)
		return rs.Len()
	}
	return parseDatesFrom(rs, source, log)
}

// DateColumnAt is the positional counterpart for sheets without meaningful
// headers: the date lives at a fixed 0-based column index.
func DateColumnAt(rs *RecordSet, index int, log zerolog.Logger) int {
	if index < 0 || index >= len(rs.Columns) {
		log.Warn().Int("index", index).Int("columns", len(rs.Columns)).Msg("indice de fecha fuera de rango")
		rs.EnsureColumn(DateColumn)
		return rs.Len()
	}
	return parseDatesFrom(rs, rs.Columns[index], log)
}

func parseDatesFrom(rs *RecordSet, source string, log zerolog.Logger) int {
	rs.EnsureColumn(DateColumn)
	invalid := 0
	for _, row := range rs.Rows {
		d, ok := ParseDate(row[source])
		if !ok {
			row[DateColumn] = nil
			invalid++
			continue
		}
		row[DateColumn] = d
	}
	if invalid > 0 {
		log.Warn().Int("invalid", invalid).Str("column", source).Msg("fechas no parseables")
	}
	return invalid
}
