package report

import (
	"strings"
	"testing"

	"github.com/persys/ventas-etl/internal/domain"
)

func TestBuildSummary(t *testing.T) {
	txs := []*domain.Transaction{
		{BusinessID: "negocio1", Currency: "PEN", Amount: 100.5},
		{BusinessID: "negocio1", Currency: "PEN", Amount: 50},
		{BusinessID: "negocio2", Currency: "USD", Amount: 250},
	}

	s := BuildSummary("2025-01", txs)
	if s.Transactions != 3 {
		t.Errorf("Transactions = %d, want 3", s.Transactions)
	}
	if s.ByCurrency["PEN"] != 150.5 || s.ByCurrency["USD"] != 250 {
		t.Errorf("ByCurrency = %v", s.ByCurrency)
	}
	if s.ByBusiness["negocio1"] != 150.5 || s.ByBusiness["negocio2"] != 250 {
		t.Errorf("ByBusiness = %v", s.ByBusiness)
	}

	if got := s.Currencies(); len(got) != 2 || got[0] != "PEN" || got[1] != "USD" {
		t.Errorf("Currencies = %v, want sorted [PEN USD]", got)
	}
}

func TestTotalsLine(t *testing.T) {
	s := BuildSummary("2025-01", []*domain.Transaction{
		{BusinessID: "negocio1", Currency: "PEN", Amount: 100.5},
		{BusinessID: "negocio2", Currency: "USD", Amount: 250},
	})

	line := totalsLine(s)
	if !strings.Contains(line, "PEN 100.50") || !strings.Contains(line, "USD 250.00") {
		t.Errorf("totalsLine = %q", line)
	}

	empty := BuildSummary("2025-02", nil)
	if totalsLine(empty) != "sin movimientos" {
		t.Errorf("empty totalsLine = %q", totalsLine(empty))
	}
}

func TestSummaryProperties(t *testing.T) {
	s := BuildSummary("2025-01", []*domain.Transaction{
		{BusinessID: "negocio1", Currency: "PEN", Amount: 10},
	})

	props := summaryProperties(s)
	for _, key := range []string{"Periodo", "Registros", "Totales"} {
		if _, ok := props[key]; !ok {
			t.Errorf("missing property %q", key)
		}
	}
}
