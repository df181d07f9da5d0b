package engine

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// --- 1. FIELD PARSING ---

// parseNumber parses "123.45" / "-7.5" and reports whether the field is
// a number at all. Empty or non-numeric fields are not numbers.
func parseNumber(b []byte) (float64, bool) {
	if len(b) == 0 {
		return 0, false
	}
	i := 0
	neg := false
	if b[0] == '-' || b[0] == '+' {
		neg = b[0] == '-'
		i++
	}
	var num float64
	seenDigit := false
	for ; i < len(b) && b[i] != '.'; i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		num = num*10 + float64(c-'0')
		seenDigit = true
	}
	if i < len(b) {
		i++ // skip '.'
		div := 10.0
		for ; i < len(b); i++ {
			c := b[i]
			if c < '0' || c > '9' {
				return 0, false
			}
			num += float64(c-'0') / div
			div *= 10
			seenDigit = true
		}
	}
	if !seenDigit {
		return 0, false
	}
	if neg {
		num = -num
	}
	return num, true
}

// --- 2. WORKBOOK LOADER ---

// LoadWorkbook reads every *.csv file in dir as one TSA table. The file
// name (without extension) is the table kind, e.g.
// Table_6_Supply_Demand_Core.csv. The result is raw input for
// BuildTableSet; no schema checking happens here.
func LoadWorkbook(dir string) (map[string]Table, error) {
	start := time.Now()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read workbook dir: %w", err)
	}

	tables := make(map[string]Table)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read table file %s: %w", e.Name(), err)
		}
		kind := strings.TrimSuffix(e.Name(), ".csv")
		table, err := ParseTableCSV(kind, content)
		if err != nil {
			return nil, fmt.Errorf("parse table %s: %w", kind, err)
		}
		tables[kind] = table
	}

	if len(tables) == 0 {
		return nil, fmt.Errorf("no table files found in %s", dir)
	}

	log.Printf("Workbook loaded. Tables: %d. Time: %v", len(tables), time.Since(start))
	return tables, nil
}

// ParseTableCSV parses one table's CSV bytes into columnar form. The
// first line is the header. A column is numeric when every populated
// cell parses as a number, text otherwise; empty cells and NA markers
// in numeric columns become missing values.
func ParseTableCSV(kind string, content []byte) (Table, error) {
	headerLine, rest, _ := bytes.Cut(content, []byte{'\n'})
	headerLine = bytes.TrimSuffix(headerLine, []byte{'\r'})
	if len(bytes.TrimSpace(headerLine)) == 0 {
		return Table{}, fmt.Errorf("empty table")
	}

	headers := splitFields(headerLine)

	// Collect the raw cell grid first; column types are decided after
	// the whole column is visible.
	cells := make([][][]byte, len(headers))
	rows := 0

	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte{'\n'})
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		fields := splitFields(line)
		for i := range headers {
			var f []byte
			if i < len(fields) {
				f = bytes.TrimSpace(fields[i])
			}
			cells[i] = append(cells[i], f)
		}
		rows++
	}

	table := Table{
		Kind: kind,
		Rows: rows,
		Text: make(map[string][]string),
		Nums: make(map[string]NumColumn),
	}

	for i, rawName := range headers {
		name := string(bytes.TrimSpace(rawName))
		if name == "" {
			continue
		}
		if !forcedTextColumns[name] && isNumericColumn(cells[i]) {
			col := NumColumn{
				Values: make([]float64, rows),
				Valid:  make([]bool, rows),
			}
			for j, cell := range cells[i] {
				if v, ok := parseNumber(cell); ok {
					col.Values[j] = v
					col.Valid[j] = true
				}
			}
			table.Nums[name] = col
		} else {
			col := make([]string, rows)
			for j, cell := range cells[i] {
				col[j] = string(cell)
			}
			table.Text[name] = col
		}
	}

	return table, nil
}

// splitFields walks a CSV line with bytes.Cut. TSA table cells carry no
// embedded commas, so no quote handling is needed.
func splitFields(line []byte) [][]byte {
	var fields [][]byte
	rest := line
	for {
		field, tail, found := bytes.Cut(rest, []byte{','})
		fields = append(fields, field)
		if !found {
			return fields
		}
		rest = tail
	}
}

// forcedTextColumns are label columns that stay text even when a value
// happens to look numeric (e.g. coded product identifiers).
var forcedTextColumns = map[string]bool{
	ColProducts:   true,
	ColIndustries: true,
}

// naTokens are spreadsheet missing-value markers. In numeric columns
// they count as empty cells rather than tipping the column to text.
var naTokens = map[string]bool{
	"N/A":  true,
	"n/a":  true,
	"NA":   true,
	"#N/A": true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
}

// isMissing reports whether a cell is empty or an NA marker.
func isMissing(cell []byte) bool {
	return len(cell) == 0 || naTokens[string(cell)]
}

// isNumericColumn reports whether every populated cell parses as a
// number. A column with no populated cells counts as numeric
// (all-missing).
func isNumericColumn(cells [][]byte) bool {
	for _, cell := range cells {
		if isMissing(cell) {
			continue
		}
		if _, ok := parseNumber(cell); !ok {
			return false
		}
	}
	return true
}
