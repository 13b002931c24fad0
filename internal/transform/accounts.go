package transform

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// accountNames maps the spellings operators type into the sheets to the
// display name stored in the warehouse. Matching is case-insensitive on the
// trimmed value.
var accountNames = map[string]string{
	"BANCO DE LA NACIÓN": "Banco de la Nación",
	"BANCO DE LA NACION": "Banco de la Nación",
	"SCOTIABANK":         "Scotiabank",
	"INTERBANK":          "Interbank",
	"YAPE":               "Yape",
	"PLIN":               "Plin",
	"BBVA":               "BBVA",
	"BCP":                "BCP",
	"TARJETA LINK":       "Tarjeta LINK",
	"EN EFECTIVO":        "En Efectivo",
	"BANCO AZTECA":       "Banco Azteca",
	"BANCO PICHINCHA":    "Banco Pichincha",
	"PAYPAL":             "PayPal",
	"BANCO DE CHILE":     "Banco de Chile",
}

var titleCaser = cases.Title(language.Spanish)

// CanonicalAccount normalizes a raw payment-method cell to its canonical
// display name. Unknown names are title-cased rather than rejected; a sheet
// typo still loads, just unprettified. Empty input is nil.
func CanonicalAccount(v any) *string {
	raw, ok := v.(string)
	if !ok {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if name, ok := accountNames[strings.ToUpper(raw)]; ok {
		return &name
	}
	titled := titleCaser.String(strings.ToLower(raw))
	return &titled
}
