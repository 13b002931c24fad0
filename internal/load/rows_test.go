package load

import (
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/persys/ventas-etl/internal/domain"
)

func TestRowFromTransaction(t *testing.T) {
	catID := int64(1)
	ref := "B001-123"
	account := "Yape"
	now := time.Date(2025, 2, 1, 3, 0, 0, 0, time.UTC)

	tx := &domain.Transaction{
		Date:         civil.Date{Year: 2025, Month: 1, Day: 31},
		Type:         domain.TypeIncome,
		BusinessID:   "negocio1",
		CategoryID:   &catID,
		Amount:       100.5,
		Currency:     "PEN",
		Description:  "Venta de vestidos Peri Collection",
		Reference:    &ref,
		ToAccount:    &account,
		IDReferenced: "P-001",
	}

	row := rowFromTransaction(tx, now)

	if row.Date != tx.Date || row.Type != "income" || row.BusinessID != "negocio1" {
		t.Errorf("key fields wrong: %+v", row)
	}
	if !row.CategoryID.Valid || row.CategoryID.Int64 != 1 {
		t.Errorf("CategoryID = %+v", row.CategoryID)
	}
	if want := big.NewRat(201, 2); row.Amount.Cmp(want) != 0 {
		t.Errorf("Amount = %v, want %v", row.Amount, want)
	}
	if !row.Reference.Valid || row.Reference.StringVal != ref {
		t.Errorf("Reference = %+v", row.Reference)
	}
	if !row.ToAccount.Valid || row.ToAccount.StringVal != "Yape" {
		t.Errorf("ToAccount = %+v", row.ToAccount)
	}
	if row.FromAccount.Valid {
		t.Error("FromAccount should be null for income")
	}
	if row.CreatedTS != now {
		t.Errorf("CreatedTS = %v", row.CreatedTS)
	}
}

func TestRowFromTransactionNulls(t *testing.T) {
	tx := &domain.Transaction{
		Date:       civil.Date{Year: 2025, Month: 1, Day: 5},
		Type:       domain.TypeIncome,
		BusinessID: "negocio2",
		Amount:     12.35,
		Currency:   "USD",
	}

	row := rowFromTransaction(tx, time.Now())
	if row.CategoryID.Valid || row.Reference.Valid || row.FromAccount.Valid || row.ToAccount.Valid {
		t.Errorf("optional fields should be null: %+v", row)
	}
	if want := big.NewRat(1235, 100); row.Amount.Cmp(want) != 0 {
		t.Errorf("Amount = %v, want %v", row.Amount, want)
	}
}

func TestRatFromAmountExactDecimals(t *testing.T) {
	tests := []struct {
		input float64
		num   int64
		den   int64
	}{
		{100.5, 201, 2},
		{12.35, 1235, 100},
		{0, 0, 1},
		{-7.25, -29, 4},
	}

	for _, tt := range tests {
		want := big.NewRat(tt.num, tt.den)
		if got := ratFromAmount(tt.input); got.Cmp(want) != 0 {
			t.Errorf("ratFromAmount(%v) = %v, want %v", tt.input, got, want)
		}
	}
}
