package sheet

import (
	"testing"

	"github.com/persys/ventas-etl/internal/logger"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fecha de pago", "fecha_de_pago"},
		{"  FECHA   DE  PAGO ", "fecha_de_pago"},
		{"Método de Pago", "metodo_de_pago"},
		{"Año", "ano"},
		{"Total (S/.)", "total_s"},
		{"", ""},
		{"___", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveExactBeatsSubstring(t *testing.T) {
	columns := []string{"FechaEntrega", "Fecha de pago", "Monto"}

	// "Fecha de pago" matches exactly even though "Fecha" would substring
	// match FechaEntrega first.
	got, ok := Resolve(columns, "fecha_de_pago", "Fecha")
	if !ok || got != "Fecha de pago" {
		t.Errorf("Resolve = %q, %v; want Fecha de pago", got, ok)
	}
}

func TestResolveSubstringFallback(t *testing.T) {
	columns := []string{"IdPedido", "MetodoPago"}

	got, ok := Resolve(columns, "Metodo")
	if !ok || got != "MetodoPago" {
		t.Errorf("Resolve = %q, %v; want MetodoPago", got, ok)
	}

	// And the other direction: candidate longer than the column.
	got, ok = Resolve(columns, "Metodo de pago preferido")
	if ok {
		// acceptable only if it landed on the payment column
		if got != "MetodoPago" {
			t.Errorf("Resolve landed on %q", got)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	columns := []string{"fecha", "Monto"}
	got, ok := Resolve(columns, "fecha")
	if !ok || got != "fecha" {
		t.Errorf("resolving a canonical name already present should return it verbatim, got %q %v", got, ok)
	}
}

func TestResolveAbsent(t *testing.T) {
	if got, ok := Resolve([]string{"Monto"}, "Estado"); ok {
		t.Errorf("expected no match, got %q", got)
	}
}

func TestResolveCandidatePriority(t *testing.T) {
	columns := []string{"Importe", "Monto"}
	got, ok := Resolve(columns, "Monto", "Importe")
	if !ok || got != "Monto" {
		t.Errorf("first candidate should win, got %q", got)
	}
}

func TestRenameToCanonical(t *testing.T) {
	rs := BuildRecords([][]string{
		{"Fecha de pago", "Metodo", "Monto"},
		{"31/01/2025", "YAPE", "100.5"},
	})

	log := logger.NewWithWriter(nopWriter{})
	RenameToCanonical(rs, []CanonicalColumn{
		{Name: "FechaPago", Aliases: []string{"Fecha de pago"}},
		{Name: "MetodoPago", Aliases: []string{"Metodo"}},
		{Name: "Estado"}, // missing: becomes a nil placeholder
	}, log)

	for _, col := range []string{"FechaPago", "MetodoPago", "Estado", "Monto"} {
		if !rs.HasColumn(col) {
			t.Errorf("missing column %q after rename, columns = %v", col, rs.Columns)
		}
	}
	row := rs.Rows[0]
	if row["FechaPago"] != "31/01/2025" || row["MetodoPago"] != "YAPE" {
		t.Errorf("renamed values wrong: %v", row)
	}
	if v, ok := row["Estado"]; !ok || v != nil {
		t.Errorf("placeholder Estado should be nil, got %#v", v)
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
