package extract

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/persys/ventas-etl/internal/sheet"
)

// Period is the calendar month a run loads.
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(d civil.Date) bool {
	return d.Year == p.Year && d.Month == p.Month
}

// PreviousMonth returns the month before the reference date. A January run
// loads December of the prior year.
func PreviousMonth(ref time.Time) Period {
	if ref.Month() == time.January {
		return Period{Year: ref.Year() - 1, Month: time.December}
	}
	return Period{Year: ref.Year(), Month: ref.Month() - 1}
}

// FilterStatus keeps only rows whose status cell, uppercased and trimmed,
// equals the accepted literal. A missing status column is a warning, not a
// failure: all rows pass through.
func FilterStatus(rs *sheet.RecordSet, column, accepted string, log zerolog.Logger) {
	if !rs.HasColumn(column) {
		log.Warn().Str("column", column).Msg("la columna de estado no existe en la hoja")
		return
	}

	before := rs.Len()
	want := strings.ToUpper(strings.TrimSpace(accepted))
	rs.Filter(func(row sheet.Record) bool {
		s, ok := row[column].(string)
		if !ok {
			return false
		}
		return strings.ToUpper(strings.TrimSpace(s)) == want
	})

	log.Info().
		Str("estado", accepted).
		Int("antes", before).
		Int("despues", rs.Len()).
		Msg("filtro por estado")
}

// FilterPeriod keeps only rows whose resolved date falls in the target
// month. Rows whose date failed to parse carry nil and drop out here.
func FilterPeriod(rs *sheet.RecordSet, p Period, log zerolog.Logger) {
	before := rs.Len()
	rs.Filter(func(row sheet.Record) bool {
		d, ok := row[sheet.DateColumn].(civil.Date)
		return ok && p.Contains(d)
	})

	log.Info().
		Str("periodo", p.String()).
		Int("antes", before).
		Int("despues", rs.Len()).
		Msg("filtro mensual")
}

// LogSample writes up to n rows at info level so the operator can eyeball a
// run. Purely informational.
func LogSample(rs *sheet.RecordSet, n int, log zerolog.Logger) {
	if rs.Len() == 0 {
		log.Warn().Msg("no hay registros luego de aplicar los filtros")
		return
	}
	if n > rs.Len() {
		n = rs.Len()
	}
	for i := 0; i < n; i++ {
		log.Info().Interface("registro", rs.Rows[i]).Int("fila", i).Msg("sample")
	}
}
