package report

import (
	"sort"

	"github.com/persys/ventas-etl/internal/domain"
)

// Summary condenses a consolidated batch into the figures the business
// actually looks at: how many rows, how much per currency, how much per
// business line.
type Summary struct {
	Period       string
	Transactions int
	ByCurrency   map[string]float64
	ByBusiness   map[string]float64
}

// BuildSummary totals the batch. Amounts are already rounded, so plain
// float addition over a month of small-business sales stays exact enough
// for a report.
func BuildSummary(period string, txs []*domain.Transaction) Summary {
	s := Summary{
		Period:       period,
		Transactions: len(txs),
		ByCurrency:   make(map[string]float64),
		ByBusiness:   make(map[string]float64),
	}
	for _, tx := range txs {
		s.ByCurrency[tx.Currency] += tx.Amount
		s.ByBusiness[tx.BusinessID] += tx.Amount
	}
	return s
}

// Currencies returns the currency codes in stable order for rendering.
func (s Summary) Currencies() []string {
	keys := make([]string, 0, len(s.ByCurrency))
	for c := range s.ByCurrency {
		keys = append(keys, c)
	}
	sort.Strings(keys)
	return keys
}

// Businesses returns the business ids in stable order for rendering.
func (s Summary) Businesses() []string {
	keys := make([]string, 0, len(s.ByBusiness))
	for b := range s.ByBusiness {
		keys = append(keys, b)
	}
	sort.Strings(keys)
	return keys
}
