package engine

// Table holds one TSA table in Struct-of-Arrays format: text columns as
// string slices, numeric columns as flat value arrays with a validity
// mask. Every slice in one table has the same length (Rows).
type Table struct {
	Kind string
	Rows int

	// Text Columns (Products, Tourism_Industries, ...)
	Text map[string][]string

	// Numeric Columns (everything else)
	Nums map[string]NumColumn
}

// NumColumn is a numeric column. Valid[i] is false where the source cell
// was empty. Aggregations skip invalid cells; they never count as zero.
type NumColumn struct {
	Values []float64
	Valid  []bool
}

// Sum adds up the valid cells of the column.
func (c NumColumn) Sum() float64 {
	var total float64
	for i, v := range c.Values {
		if c.Valid[i] {
			total += v
		}
	}
	return total
}

// MissingCount returns how many cells of the column are empty.
func (c NumColumn) MissingCount() int {
	n := 0
	for _, ok := range c.Valid {
		if !ok {
			n++
		}
	}
	return n
}

// clone deep-copies the table, column slices included.
func (t Table) clone() Table {
	c := Table{Kind: t.Kind, Rows: t.Rows}
	if t.Text != nil {
		c.Text = make(map[string][]string, len(t.Text))
		for name, col := range t.Text {
			c.Text[name] = append([]string(nil), col...)
		}
	}
	if t.Nums != nil {
		c.Nums = make(map[string]NumColumn, len(t.Nums))
		for name, col := range t.Nums {
			c.Nums[name] = NumColumn{
				Values: append([]float64(nil), col.Values...),
				Valid:  append([]bool(nil), col.Valid...),
			}
		}
	}
	return c
}

// HasColumn reports whether the table carries the named column, text or
// numeric.
func (t Table) HasColumn(name string) bool {
	if _, ok := t.Text[name]; ok {
		return true
	}
	_, ok := t.Nums[name]
	return ok
}

// Num returns a numeric column and whether it exists.
func (t Table) Num(name string) (NumColumn, bool) {
	c, ok := t.Nums[name]
	return c, ok
}

// TextCol returns a text column and whether it exists.
func (t Table) TextCol(name string) ([]string, bool) {
	c, ok := t.Text[name]
	return c, ok
}
