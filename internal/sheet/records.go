package sheet

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	intPattern     = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^[+-]?[0-9]+\.[0-9]+$`)
)

// BuildRecords turns a raw worksheet dump into typed records. The first row
// with any non-blank cell becomes the header; blank header cells get a
// positional col_<i> name and duplicate headers get numeric suffixes so
// every record key is unique. Data rows are padded/truncated to the header
// width, cells are trimmed and numeric-looking strings are coerced. Rows
// that are entirely empty are dropped.
func BuildRecords(raw [][]string) *RecordSet {
	headerIdx := -1
	for i, row := range raw {
		if !isRowEmpty(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return &RecordSet{}
	}

	columns := cleanHeader(raw[headerIdx])
	rs := &RecordSet{Columns: columns}

	for _, row := range raw[headerIdx+1:] {
		record := make(Record, len(columns))
		empty := true
		for i, col := range columns {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			v := coerceCell(cell)
			if v != nil {
				empty = false
			}
			record[col] = v
		}
		if empty {
			continue
		}
		rs.Rows = append(rs.Rows, record)
	}

	return rs
}

// cleanHeader trims header cells, names blank ones positionally and
// disambiguates duplicates ("Total", "Total" -> "Total", "Total_1").
func cleanHeader(row []string) []string {
	columns := make([]string, 0, len(row))
	seen := make(map[string]int, len(row))

	for i, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = fmt.Sprintf("col_%d", i)
		}
		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s_%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		columns = append(columns, name)
	}

	return columns
}

// coerceCell trims a cell and converts it to the narrowest sensible type.
// Malformed numeric-looking values fall back to the original string rather
// than erroring; spreadsheets are full of near-numbers.
func coerceCell(cell string) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}
	if intPattern.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		return s
	}
	if decimalPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return s
	}
	return s
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
