package domain

import (
	"cloud.google.com/go/civil"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is one load-ready row of the finanzas.transactions table.
// This is a domain struct, not a BigQuery row; the load layer maps it into
// the table schema. The dedup key on re-runs is the composite of Date,
// BusinessID, Amount and Reference.
type Transaction struct {
	Date       civil.Date      // delivery/payment date, always set after transform
	Type       TransactionType // income | expense
	BusinessID string          // e.g. "negocio1"
	CategoryID *int64          // nil when the source has no category
	Amount     float64         // rounded half-up to 2 decimals
	Currency   string          // "PEN" unless the payment method implies otherwise

	Description string
	Reference   *string // receipt/voucher number or nil
	FromAccount *string // canonical account name or nil
	ToAccount   *string // canonical account name or nil
	IsInvoiced  bool

	// IDReferenced carries the source system's own row identifier
	// (order id, enrollment id) for traceability.
	IDReferenced string
}
