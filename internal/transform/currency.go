package transform

// DefaultCurrency applies to every account without an explicit override.
const DefaultCurrency = "PEN"

// accountCurrencies overrides the currency for the handful of payment
// methods that settle outside Peru. Keys are canonical account names.
var accountCurrencies = map[string]string{
	"Banco Azteca":    "MXN",
	"Banco Pichincha": "USD",
	"PayPal":          "USD",
	"Banco de Chile":  "CLP",
}

// CurrencyFor infers the transaction currency from the canonical account
// name. It is a pure function: the same account always yields the same
// currency, whichever source the row came from.
func CurrencyFor(account *string) string {
	if account == nil {
		return DefaultCurrency
	}
	if c, ok := accountCurrencies[*account]; ok {
		return c
	}
	return DefaultCurrency
}
