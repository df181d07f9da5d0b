package engine

import (
	"fmt"

	"github.com/emantzoo/TSA-GR/internal/models"
)

// estimatedGVARatio is the documented approximation applied when the
// employment table carries no measured GVA: tourism GVA is taken as 40%
// of tourism-attributable supply.
const estimatedGVARatio = 0.4

// estimatedTaxRatio estimates tourism taxes as 15% of tourism GVA when
// the supply-demand table has no Taxes_less_Subsidies column.
const estimatedTaxRatio = 0.15

// InvalidParamsError reports country parameters that would divide by
// zero. This is a caller contract violation, caught before any
// computation runs.
type InvalidParamsError struct {
	Field string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("country parameter %s must be positive", e.Field)
}

// ValidateParams fails fast on non-positive denominators.
func ValidateParams(p models.CountryParams) error {
	if p.TotalGDP <= 0 {
		return &InvalidParamsError{Field: "total_gdp"}
	}
	if p.TotalEmployment <= 0 {
		return &InvalidParamsError{Field: "total_employment"}
	}
	if p.Population <= 0 {
		return &InvalidParamsError{Field: "population"}
	}
	return nil
}

// ComputeAggregates derives the headline TSA totals from the table set
// and the country parameters. Sums skip missing cells. Aggregates that
// fall back to an approximation are tagged estimated so consumers never
// mistake them for measured figures.
func ComputeAggregates(ts *TableSet, params models.CountryParams) (*models.CoreAggregates, error) {
	if err := ValidateParams(params); err != nil {
		return nil, err
	}

	table4 := ts.InternalConsumption()
	table6 := ts.SupplyDemandCore()
	table7 := ts.Employment()

	agg := &models.CoreAggregates{}

	// Demand side
	consumption, _ := table4.Num(ColInternalConsumption)
	agg.InternalTourismConsumption = consumption.Sum()

	if inbound, ok := table4.Num(ColInboundExpenditure); ok {
		agg.InboundExpenditure = inbound.Sum()
	}
	if domestic, ok := table4.Num(ColDomesticExpenditure); ok {
		agg.DomesticExpenditure = domestic.Sum()
	}

	// Supply side
	ratios, _ := table6.Num(ColTourismRatio)
	supply, _ := table6.Num(ColDomesticSupply)

	if gva, ok := table7.Num(ColGVAShare); ok {
		agg.TourismDirectGVA = gva.Sum()
		agg.GVABasis = models.BasisMeasured
	} else {
		agg.TourismDirectGVA = sumProducts(ratios, supply) / 100 * estimatedGVARatio
		agg.GVABasis = models.BasisEstimated
	}

	if taxes, ok := table6.Num(ColTaxesLessSubsidies); ok {
		agg.TourismTaxes = sumProducts(taxes, ratios) / 100
		agg.TaxesBasis = models.BasisMeasured
	} else {
		agg.TourismTaxes = agg.TourismDirectGVA * estimatedTaxRatio
		agg.TaxesBasis = models.BasisEstimated
	}

	agg.TourismDirectGDP = agg.TourismDirectGVA + agg.TourismTaxes

	// Employment side
	fte, _ := table7.Num(ColFTEJobs)
	agg.TotalTourismFTE = fte.Sum()

	// Derived ratios
	agg.TourismGDPShare = agg.TourismDirectGDP / params.TotalGDP * 100
	agg.TourismEmploymentShare = agg.TotalTourismFTE / float64(params.TotalEmployment) * 100
	agg.ConsumptionPerCapita = agg.InternalTourismConsumption / float64(params.Population)

	return agg, nil
}

// sumProducts sums a[i]*b[i] over rows where both cells are present.
// Rows with a missing factor drop out of the sum entirely.
func sumProducts(a, b NumColumn) float64 {
	n := len(a.Values)
	if len(b.Values) < n {
		n = len(b.Values)
	}
	var total float64
	for i := 0; i < n; i++ {
		if a.Valid[i] && b.Valid[i] {
			total += a.Values[i] * b.Values[i]
		}
	}
	return total
}
