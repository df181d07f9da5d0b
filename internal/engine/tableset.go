package engine

import "fmt"

// TSA table kinds. The three numbered kinds below are required for an
// analysis run; any further kinds (capital formation, collective
// consumption, trip tables) are carried through untouched.
const (
	TableInternalConsumption = "Table_4_Internal_Consumption"
	TableSupplyDemandCore    = "Table_6_Supply_Demand_Core"
	TableEmployment          = "Table_7_Employment"
)

// Column names shared by the calculators.
const (
	ColProducts            = "Products"
	ColInternalConsumption = "Internal_Tourism_Consumption"
	ColInboundExpenditure  = "Inbound_Tourism_Expenditure"
	ColDomesticExpenditure = "Domestic_Tourism_Expenditure"
	ColDomesticSupply      = "Domestic_Supply"
	ColTourismRatio        = "Tourism_Ratio_Percent"
	ColTaxesLessSubsidies  = "Taxes_less_Subsidies"
	ColIndustries          = "Tourism_Industries"
	ColFTEJobs             = "Full_Time_Equivalent_Jobs"
	ColGVAShare            = "GVA_Tourism_Share"
	ColEstablishments      = "Number_of_Establishments"
)

// columnRequirement names a required column and whether it must be
// numeric. The calculators index required columns without re-checking,
// so the build gate verifies type as well as presence.
type columnRequirement struct {
	Name    string
	Numeric bool
}

// requiredColumns maps each required table kind to the columns it must
// carry. Optional columns are absent here; calculators degrade when they
// are missing instead of failing the build.
var requiredColumns = map[string][]columnRequirement{
	TableInternalConsumption: {{ColProducts, false}, {ColInternalConsumption, true}},
	TableSupplyDemandCore:    {{ColProducts, false}, {ColDomesticSupply, true}, {ColInternalConsumption, true}, {ColTourismRatio, true}},
	TableEmployment:          {{ColIndustries, false}, {ColFTEJobs, true}},
}

// MissingTableError reports a required table kind absent from the input.
type MissingTableError struct {
	Table string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("missing required table: %s", e.Table)
}

// MissingColumnError reports a required column absent from a table.
type MissingColumnError struct {
	Table  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %s is missing required column %s", e.Table, e.Column)
}

// ColumnTypeError reports a required column that is present but carries
// the wrong type, e.g. a ratio column loaded as text because a cell
// holds a non-numeric marker.
type ColumnTypeError struct {
	Table  string
	Column string
	Want   string
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("table %s column %s must be %s", e.Table, e.Column, e.Want)
}

// TableSet is the validated, immutable input of one analysis run.
type TableSet struct {
	tables map[string]Table
}

// BuildTableSet schema-checks the raw tables and wraps them. It fails
// before any computation if a required table or column is absent, or if
// a required column carries the wrong type. The tables are deep-copied
// so later mutation of the raw input cannot reach the set.
func BuildTableSet(raw map[string]Table) (*TableSet, error) {
	for _, kind := range []string{TableInternalConsumption, TableSupplyDemandCore, TableEmployment} {
		table, ok := raw[kind]
		if !ok {
			return nil, &MissingTableError{Table: kind}
		}
		for _, req := range requiredColumns[kind] {
			if !table.HasColumn(req.Name) {
				return nil, &MissingColumnError{Table: kind, Column: req.Name}
			}
			if req.Numeric {
				if _, ok := table.Nums[req.Name]; !ok {
					return nil, &ColumnTypeError{Table: kind, Column: req.Name, Want: "numeric"}
				}
			} else if _, ok := table.Text[req.Name]; !ok {
				return nil, &ColumnTypeError{Table: kind, Column: req.Name, Want: "text"}
			}
		}
	}

	tables := make(map[string]Table, len(raw))
	for kind, t := range raw {
		tables[kind] = t.clone()
	}
	return &TableSet{tables: tables}, nil
}

// Table returns the table of the given kind.
func (ts *TableSet) Table(kind string) (Table, bool) {
	t, ok := ts.tables[kind]
	return t, ok
}

// Kinds lists every table kind present, required and optional.
func (ts *TableSet) Kinds() []string {
	kinds := make([]string, 0, len(ts.tables))
	for k := range ts.tables {
		kinds = append(kinds, k)
	}
	return kinds
}

// The three required tables are guaranteed present after BuildTableSet.

func (ts *TableSet) InternalConsumption() Table {
	return ts.tables[TableInternalConsumption]
}

func (ts *TableSet) SupplyDemandCore() Table {
	return ts.tables[TableSupplyDemandCore]
}

func (ts *TableSet) Employment() Table {
	return ts.tables[TableEmployment]
}
