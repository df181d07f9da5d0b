package models

// CountryParams are the national reference figures an analysis run is
// normalized against. They are set once per run and never mutated.
type CountryParams struct {
	CountryName     string  `json:"country_name"`
	TotalGDP        float64 `json:"total_gdp"`
	TotalEmployment int     `json:"total_employment"`
	Population      int     `json:"population"`
}

// Basis tags whether an aggregate was taken from the source tables or
// derived through a documented approximation.
type Basis string

const (
	BasisMeasured  Basis = "measured"
	BasisEstimated Basis = "estimated"
)

// CoreAggregates holds the headline demand, supply and employment totals
// plus the ratios derived from them.
type CoreAggregates struct {
	InternalTourismConsumption float64 `json:"internal_tourism_consumption"`
	InboundExpenditure         float64 `json:"inbound_expenditure"`
	DomesticExpenditure        float64 `json:"domestic_expenditure"`

	TourismDirectGVA float64 `json:"tourism_direct_gva"`
	GVABasis         Basis   `json:"gva_basis"`
	TourismTaxes     float64 `json:"tourism_taxes"`
	TaxesBasis       Basis   `json:"taxes_basis"`
	TourismDirectGDP float64 `json:"tourism_direct_gdp"`

	TotalTourismFTE float64 `json:"total_tourism_fte"`

	TourismGDPShare        float64 `json:"tourism_gdp_share"`
	TourismEmploymentShare float64 `json:"tourism_employment_share"`
	ConsumptionPerCapita   float64 `json:"tourism_consumption_per_capita"`
}

// RatioRecord is one product's tourism-intensity profile.
type RatioRecord struct {
	Product                    string  `json:"product"`
	TourismRatio               float64 `json:"tourism_ratio_percent"`
	InternalTourismConsumption float64 `json:"internal_tourism_consumption"`
	DomesticSupply             float64 `json:"domestic_supply"`
	Intensity                  string  `json:"intensity_bucket"`
}

// EmploymentRecord is one tourism industry's employment profile.
// LaborProductivity is present only when the source carries GVA figures.
type EmploymentRecord struct {
	Industry          string   `json:"industry"`
	FTEJobs           float64  `json:"fte_jobs"`
	EmploymentShare   float64  `json:"employment_share_percent"`
	LaborProductivity *float64 `json:"labor_productivity,omitempty"`
}

// ValidationResult is the data-quality verdict for one table set.
// ScoreClamped reports that the [0,100] clamp fired, which the
// deduction ceilings should make impossible.
type ValidationResult struct {
	Score        int      `json:"score"`
	Issues       []string `json:"issues"`
	ScoreClamped bool     `json:"score_clamped,omitempty"`
}

// YearProjection is one projected year within a growth scenario.
type YearProjection struct {
	Year               int     `json:"year"`
	TourismConsumption float64 `json:"tourism_consumption"`
	TourismEmployment  float64 `json:"tourism_employment"`
	TourismGDP         float64 `json:"tourism_gdp"`
}

// PolicyOutcome is the evaluated effect of one policy intervention.
type PolicyOutcome struct {
	Description         string  `json:"description"`
	GDPChangePct        float64 `json:"gdp_change"`
	EmploymentChangePct float64 `json:"employment_change"`
	InvestmentCost      float64 `json:"investment_cost"`
	ROI                 float64 `json:"roi"`
	GDPIncrease         float64 `json:"gdp_increase"`
}

// SensitivityResult is the pass-through effect of a single-parameter shift.
type SensitivityResult struct {
	GDPChangePct        float64 `json:"gdp_change_pct"`
	EmploymentChangePct float64 `json:"employment_change_pct"`
}

// AnalysisReport is the memoized output of one analysis run. A new run
// replaces the report wholesale; nothing inside is updated in place.
type AnalysisReport struct {
	RunID      string             `json:"run_id"`
	Country    string             `json:"country"`
	Aggregates *CoreAggregates    `json:"aggregates"`
	Ratios     []RatioRecord      `json:"ratios"`
	Employment []EmploymentRecord `json:"employment"`
	Validation ValidationResult   `json:"validation"`
}
