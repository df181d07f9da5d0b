package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTable(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadWorkbook(t *testing.T) {
	dir := t.TempDir()

	writeTable(t, dir, "Table_4_Internal_Consumption.csv",
		"Products,Internal_Tourism_Consumption,Inbound_Tourism_Expenditure\n"+
			"Accommodation,500,300\n"+
			"Food and beverage,300,180\n"+
			"Transport,,120\n")
	writeTable(t, dir, "Table_6_Supply_Demand_Core.csv",
		"Products,Domestic_Supply,Internal_Tourism_Consumption,Tourism_Ratio_Percent\n"+
			"Accommodation,1000,500,50\n"+
			"Food and beverage,1500,300,20\n"+
			"Transport,800,200,25\n")
	writeTable(t, dir, "Table_7_Employment.csv",
		"Tourism_Industries,Full_Time_Equivalent_Jobs\n"+
			"Hotels,50000\n"+
			"Restaurants,30000\n")
	// Non-CSV files are ignored.
	writeTable(t, dir, "README.txt", "not a table")

	tables, err := LoadWorkbook(dir)
	if err != nil {
		t.Fatalf("LoadWorkbook failed: %v", err)
	}
	if len(tables) != 3 {
		t.Fatalf("expected 3 tables, got %d", len(tables))
	}

	table4 := tables[TableInternalConsumption]
	if table4.Rows != 3 {
		t.Errorf("expected 3 rows, got %d", table4.Rows)
	}

	products, ok := table4.TextCol(ColProducts)
	if !ok || products[0] != "Accommodation" {
		t.Errorf("Products column wrong: %v", products)
	}

	consumption, ok := table4.Num(ColInternalConsumption)
	if !ok {
		t.Fatal("consumption column should be numeric")
	}
	if consumption.Values[0] != 500 {
		t.Errorf("row 0 consumption: expected 500, got %f", consumption.Values[0])
	}
	// Empty cell → missing, excluded from sums.
	if consumption.Valid[2] {
		t.Error("empty cell should be missing")
	}
	if consumption.Sum() != 800 {
		t.Errorf("sum should skip the missing cell: expected 800, got %f", consumption.Sum())
	}

	// The loaded workbook must pass schema validation.
	if _, err := BuildTableSet(tables); err != nil {
		t.Errorf("loaded workbook failed schema check: %v", err)
	}
}

func TestLoadWorkbookEmptyDir(t *testing.T) {
	if _, err := LoadWorkbook(t.TempDir()); err == nil {
		t.Error("expected an error for a workbook with no tables")
	}
}

func TestParseTableCSV(t *testing.T) {
	content := []byte("Products,Value\r\nHotels,10.5\r\nCamping,-2.25\r\n\r\n")

	table, err := ParseTableCSV("Table_X", content)
	if err != nil {
		t.Fatalf("ParseTableCSV failed: %v", err)
	}
	if table.Rows != 2 {
		t.Errorf("expected 2 rows (blank lines skipped), got %d", table.Rows)
	}

	col, ok := table.Num("Value")
	if !ok {
		t.Fatal("Value should be numeric")
	}
	if col.Values[0] != 10.5 || col.Values[1] != -2.25 {
		t.Errorf("numeric parsing wrong: %v", col.Values)
	}
}

func TestParseTableCSVMixedColumnIsText(t *testing.T) {
	content := []byte("Products,Notes\nHotels,good\nCamping,12\n")

	table, err := ParseTableCSV("Table_X", content)
	if err != nil {
		t.Fatalf("ParseTableCSV failed: %v", err)
	}
	if _, ok := table.Num("Notes"); ok {
		t.Error("a column with any non-numeric cell must stay text")
	}
	notes, _ := table.TextCol("Notes")
	if notes[1] != "12" {
		t.Errorf("text column cell wrong: %v", notes)
	}
}

func TestParseTableCSVNATokensAreMissing(t *testing.T) {
	content := []byte("Products,Domestic_Supply,Internal_Tourism_Consumption,Tourism_Ratio_Percent\n" +
		"Accommodation,1000,500,50\n" +
		"Food and beverage,1500,300,N/A\n" +
		"Transport,800,200,25\n")

	table, err := ParseTableCSV(TableSupplyDemandCore, content)
	if err != nil {
		t.Fatalf("ParseTableCSV failed: %v", err)
	}

	ratios, ok := table.Num(ColTourismRatio)
	if !ok {
		t.Fatal("an NA marker must not tip the ratio column to text")
	}
	if ratios.Valid[1] {
		t.Error("NA cell should be missing")
	}
	if got := ratios.Sum(); got != 75 {
		t.Errorf("sum should skip the NA cell: expected 75, got %f", got)
	}

	// The full pipeline degrades instead of failing on the NA row.
	raw := testTables()
	raw[TableSupplyDemandCore] = table
	ts := mustBuild(t, raw)

	records := ClassifyRatios(ts)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	last := records[len(records)-1]
	if last.Product != "Food and beverage" || last.TourismRatio != 0 {
		t.Errorf("NA row should classify with zero ratio: %+v", last)
	}
	if last.Intensity != IntensityVeryLow {
		t.Errorf("NA row should land in the lowest bucket, got %s", last.Intensity)
	}

	agg, err := ComputeAggregates(ts, testParams())
	if err != nil {
		t.Fatalf("ComputeAggregates failed: %v", err)
	}
	if agg.InternalTourismConsumption != 1000 {
		t.Errorf("aggregates should survive an NA cell: expected 1000, got %f", agg.InternalTourismConsumption)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"123", 123, true},
		{"123.45", 123.45, true},
		{"-7.5", -7.5, true},
		{"+3", 3, true},
		{"", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumber([]byte(tc.in))
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("parseNumber(%q) = %v,%v; want %v,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
