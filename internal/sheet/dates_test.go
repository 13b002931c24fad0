package sheet

import (
	"testing"

	"cloud.google.com/go/civil"

	"github.com/persys/ventas-etl/internal/logger"
)

func TestParseDateSerials(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  civil.Date
	}{
		{"serial zero is the epoch", int64(0), civil.Date{Year: 1899, Month: 12, Day: 30}},
		{"serial one", int64(1), civil.Date{Year: 1899, Month: 12, Day: 31}},
		{"serial float truncates", 45658.75, civil.Date{Year: 2025, Month: 1, Day: 1}},
		{"modern serial", int64(45688), civil.Date{Year: 2025, Month: 1, Day: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if !ok {
				t.Fatalf("ParseDate(%v) invalid, want %v", tt.input, tt.want)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateStrings(t *testing.T) {
	got, ok := ParseDate("31/01/2025")
	if !ok || got != (civil.Date{Year: 2025, Month: 1, Day: 31}) {
		t.Errorf("day-first parse = %v %v, want 2025-01-31", got, ok)
	}

	// Ambiguous DD/MM vs MM/DD resolves day-first.
	got, ok = ParseDate("05/02/2025")
	if !ok || got != (civil.Date{Year: 2025, Month: 2, Day: 5}) {
		t.Errorf("ambiguous parse = %v %v, want 2025-02-05", got, ok)
	}

	got, ok = ParseDate("2025-01-31")
	if !ok || got != (civil.Date{Year: 2025, Month: 1, Day: 31}) {
		t.Errorf("ISO parse = %v %v, want 2025-01-31", got, ok)
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, input := range []any{nil, "", "  ", "mañana", "31/31/2025", true} {
		if _, ok := ParseDate(input); ok {
			t.Errorf("ParseDate(%#v) should be invalid", input)
		}
	}
}

func TestResolveDateColumn(t *testing.T) {
	rs := BuildRecords([][]string{
		{"Fecha de pago", "Monto"},
		{"31/01/2025", "100.5"},
		{"no es fecha", "3"},
	})

	log := logger.NewWithWriter(nopWriter{})
	invalid := ResolveDateColumn(rs, log, "FechaEntrega", "Fecha de pago", "Fecha")
	if invalid != 1 {
		t.Errorf("invalid = %d, want 1", invalid)
	}
	if d, ok := rs.Rows[0][DateColumn].(civil.Date); !ok || d != (civil.Date{Year: 2025, Month: 1, Day: 31}) {
		t.Errorf("row 0 fecha = %#v", rs.Rows[0][DateColumn])
	}
	if rs.Rows[1][DateColumn] != nil {
		t.Errorf("row 1 fecha should be nil, got %#v", rs.Rows[1][DateColumn])
	}
}

func TestResolveDateColumnMissing(t *testing.T) {
	rs := BuildRecords([][]string{
		{"Monto"},
		{"10"},
	})

	log := logger.NewWithWriter(nopWriter{})
	invalid := ResolveDateColumn(rs, log, "FechaEntrega")
	if invalid != 1 {
		t.Errorf("invalid = %d, want all rows", invalid)
	}
	if v, ok := rs.Rows[0][DateColumn]; !ok || v != nil {
		t.Errorf("fecha placeholder missing, got %#v", v)
	}
}

func TestDateColumnAt(t *testing.T) {
	// Positional layout: headers are meaningless, the date is column 2.
	rs := BuildRecords([][]string{
		{"A", "B", "C", "D"},
		{"x", "y", "45688", "z"},
	})

	log := logger.NewWithWriter(nopWriter{})
	if invalid := DateColumnAt(rs, 2, log); invalid != 0 {
		t.Fatalf("invalid = %d, want 0", invalid)
	}
	if d, ok := rs.Rows[0][DateColumn].(civil.Date); !ok || d != (civil.Date{Year: 2025, Month: 1, Day: 31}) {
		t.Errorf("fecha = %#v, want 2025-01-31", rs.Rows[0][DateColumn])
	}

	if invalid := DateColumnAt(rs, 99, log); invalid != rs.Len() {
		t.Errorf("out-of-range index should invalidate all rows, got %d", invalid)
	}
}
