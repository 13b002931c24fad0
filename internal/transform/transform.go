package transform

import (
	"math/big"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/persys/ventas-etl/internal/domain"
	"github.com/persys/ventas-etl/internal/sheet"
)

// sampleLimit bounds how many transformed rows are echoed to the log for
// operator verification.
const sampleLimit = 15

// Transform maps a filtered, date-resolved record set into canonical
// transactions using the source's mapping table. Rows without a valid date
// or a parseable amount are skipped with a warning; a bad cell must never
// load as a corrupted number.
func Transform(rs *sheet.RecordSet, src Source, log zerolog.Logger) []*domain.Transaction {
	if rs.Len() == 0 {
		log.Warn().Str("fuente", src.Key).Msg("sin datos para transformar")
		return nil
	}

	amountCol, amountOK := resolveRef(rs, src.Amount)
	accountCol, accountOK := resolveRef(rs, src.Account)
	externalCol, externalOK := resolveRef(rs, src.ExternalID)
	referenceCol, referenceOK := resolveRef(rs, src.Reference)
	if !amountOK {
		log.Warn().Str("fuente", src.Key).Msg("columna de monto no encontrada, no se transforma nada")
		return nil
	}

	txs := make([]*domain.Transaction, 0, rs.Len())
	skipped := 0

	for _, row := range rs.Rows {
		date, ok := row[sheet.DateColumn].(civil.Date)
		if !ok {
			skipped++
			continue
		}

		amount, ok := amountOf(row[amountCol])
		if !ok {
			log.Warn().Str("fuente", src.Key).Interface("valor", row[amountCol]).Msg("monto no parseable, fila omitida")
			skipped++
			continue
		}

		var account *string
		if accountOK {
			account = CanonicalAccount(row[accountCol])
		}

		tx := &domain.Transaction{
			Date:        date,
			Type:        src.Type,
			BusinessID:  src.BusinessID,
			CategoryID:  src.CategoryID,
			Amount:      RoundAmount(amount),
			Currency:    CurrencyFor(account),
			Description: src.Description,
			IsInvoiced:  false,
		}
		if externalOK {
			tx.IDReferenced = asString(row[externalCol])
		}
		if referenceOK {
			if ref := asString(row[referenceCol]); ref != "" {
				tx.Reference = &ref
			}
		}
		switch src.Type {
		case domain.TypeIncome:
			tx.ToAccount = account
		case domain.TypeExpense:
			tx.FromAccount = account
		}

		txs = append(txs, tx)
	}

	log.Info().
		Str("fuente", src.Key).
		Int("transformados", len(txs)).
		Int("omitidos", skipped).
		Msg("registros transformados")
	for i, tx := range txs {
		if i == sampleLimit {
			break
		}
		log.Info().
			Str("fuente", src.Key).
			Str("fecha", tx.Date.String()).
			Float64("monto", tx.Amount).
			Str("moneda", tx.Currency).
			Str("id", tx.IDReferenced).
			Msg("sample transformado")
	}

	return txs
}

func resolveRef(rs *sheet.RecordSet, ref ColumnRef) (string, bool) {
	if ref.Index >= 0 {
		if ref.Index >= len(rs.Columns) {
			return "", false
		}
		return rs.Columns[ref.Index], true
	}
	if ref.Canonical.Name == "" {
		return "", false
	}
	candidates := append([]string{ref.Canonical.Name}, ref.Canonical.Aliases...)
	return sheet.Resolve(rs.Columns, candidates...)
}

// amountOf accepts the numeric types the record builder emits plus strings
// that slipped through with thousands separators.
func amountOf(v any) (float64, bool) {
	switch value := v.(type) {
	case int64:
		return float64(value), true
	case float64:
		return value, true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// asString renders an external id cell without the ".0" artifacts float
// coercion would leave.
func asString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}

// RoundAmount rounds half away from zero at 2 decimals. Going through the
// shortest decimal representation keeps 12.345 rounding to 12.35 instead of
// tripping over its binary neighbor 12.344999...
func RoundAmount(v float64) float64 {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return v
	}

	neg := r.Sign() < 0
	if neg {
		r.Neg(r)
	}
	r.Mul(r, big.NewRat(100, 1))
	r.Add(r, big.NewRat(1, 2))
	units := new(big.Int).Quo(r.Num(), r.Denom())
	r.SetFrac(units, big.NewInt(100))
	if neg {
		r.Neg(r)
	}

	f, _ := r.Float64()
	return f
}
