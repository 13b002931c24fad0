package load

import (
	"math/big"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/persys/ventas-etl/internal/domain"
)

// TransactionRow is the finanzas.transactions schema. Amount is NUMERIC;
// going through big.Rat keeps the 2-decimal value exact in the warehouse.
type TransactionRow struct {
	Date       civil.Date          `bigquery:"date"`
	Type       string              `bigquery:"type"`
	BusinessID string              `bigquery:"business_id"`
	CategoryID bigquery.NullInt64  `bigquery:"category_id"`
	Amount     *big.Rat            `bigquery:"amount"`
	Currency   string              `bigquery:"currency"`

	Description string              `bigquery:"description"`
	Reference   bigquery.NullString `bigquery:"reference"`
	FromAccount bigquery.NullString `bigquery:"from_account"`
	ToAccount   bigquery.NullString `bigquery:"to_account"`
	IsInvoiced  bool                `bigquery:"is_invoiced"`

	IDReferenced string    `bigquery:"id_referenced"`
	CreatedTS    time.Time `bigquery:"created_ts"`
}

// rowFromTransaction maps the domain struct into the table schema.
func rowFromTransaction(tx *domain.Transaction, now time.Time) *TransactionRow {
	row := &TransactionRow{
		Date:         tx.Date,
		Type:         string(tx.Type),
		BusinessID:   tx.BusinessID,
		Amount:       ratFromAmount(tx.Amount),
		Currency:     tx.Currency,
		Description:  tx.Description,
		IsInvoiced:   tx.IsInvoiced,
		IDReferenced: tx.IDReferenced,
		CreatedTS:    now,
	}
	if tx.CategoryID != nil {
		row.CategoryID = bigquery.NullInt64{Int64: *tx.CategoryID, Valid: true}
	}
	row.Reference = nullString(tx.Reference)
	row.FromAccount = nullString(tx.FromAccount)
	row.ToAccount = nullString(tx.ToAccount)
	return row
}

func nullString(s *string) bigquery.NullString {
	if s == nil {
		return bigquery.NullString{}
	}
	return bigquery.NullString{StringVal: *s, Valid: true}
}

// ratFromAmount converts through the shortest decimal representation so the
// NUMERIC value matches the rounded amount exactly.
func ratFromAmount(v float64) *big.Rat {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return new(big.Rat).SetFloat64(v)
	}
	return r
}
