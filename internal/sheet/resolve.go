package sheet

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripMarks   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)
)

// NormalizeName reduces a header to a comparison key: diacritics stripped,
// lowercased, every run of non-alphanumerics collapsed to one underscore.
// "Fecha de pago " and "fecha_de_pago" both become "fecha_de_pago".
func NormalizeName(s string) string {
	stripped, _, err := transform.String(stripMarks, s)
	if err != nil {
		stripped = s
	}
	key := nonAlnumRuns.ReplaceAllString(strings.ToLower(stripped), "_")
	return strings.Trim(key, "_")
}

// Resolve finds the column matching any of the candidate names, trying the
// candidates in priority order. Exact normalized matches win; failing that,
// a substring match in either direction is accepted, walking columns in
// header order so resolution is deterministic for a given sheet. The second
// return is false when nothing matches; that is an expected condition, not
// an error.
func Resolve(columns []string, candidates ...string) (string, bool) {
	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = NormalizeName(c)
	}

	for _, cand := range candidates {
		key := NormalizeName(cand)
		if key == "" {
			continue
		}
		for i, n := range normalized {
			if n == key {
				return columns[i], true
			}
		}
	}

	for _, cand := range candidates {
		key := NormalizeName(cand)
		if key == "" {
			continue
		}
		for i, n := range normalized {
			if n == "" {
				continue
			}
			if strings.Contains(n, key) || strings.Contains(key, n) {
				return columns[i], true
			}
		}
	}

	return "", false
}

// CanonicalColumn names a column the transform stage depends on, with the
// spellings it has been seen under across the source sheets.
type CanonicalColumn struct {
	Name    string
	Aliases []string
}

// RenameToCanonical renames each matched column to its canonical name.
// A canonical column with no match is logged and installed as a nil-filled
// placeholder so downstream lookups see nulls instead of missing keys.
func RenameToCanonical(rs *RecordSet, targets []CanonicalColumn, log zerolog.Logger) {
	for _, t := range targets {
		candidates := append([]string{t.Name}, t.Aliases...)
		match, ok := Resolve(rs.Columns, candidates...)
		if !ok {
			log.Warn().Str("column", t.Name).Msg("columna no encontrada, se rellena con nulos")
			rs.EnsureColumn(t.Name)
			continue
		}
		rs.Rename(match, t.Name)
	}
}
