package engine

import (
	"sort"

	"github.com/emantzoo/TSA-GR/internal/models"
)

// Intensity bucket labels, matching the TSA reporting convention.
const (
	IntensityVeryLow  = "Very Low (<10%)"
	IntensityLow      = "Low (10-30%)"
	IntensityMedium   = "Medium (30-50%)"
	IntensityHigh     = "High (50-100%)"
	IntensityVeryHigh = "Very High (>100%)"
)

// intensityBucket assigns half-open ratio bins. Ratios at or above 200%
// are out of the classification domain; they still land in the top
// bucket here and get flagged by the validation engine, never silently
// clamped.
func intensityBucket(ratio float64) string {
	switch {
	case ratio < 10:
		return IntensityVeryLow
	case ratio < 30:
		return IntensityLow
	case ratio < 50:
		return IntensityMedium
	case ratio < 100:
		return IntensityHigh
	default:
		return IntensityVeryHigh
	}
}

// ClassifyRatios builds one RatioRecord per supply-demand row, sorted by
// tourism ratio descending. Ties keep source row order.
func ClassifyRatios(ts *TableSet) []models.RatioRecord {
	table6 := ts.SupplyDemandCore()

	products, _ := table6.TextCol(ColProducts)
	ratios, _ := table6.Num(ColTourismRatio)
	consumption, _ := table6.Num(ColInternalConsumption)
	supply, _ := table6.Num(ColDomesticSupply)

	records := make([]models.RatioRecord, 0, table6.Rows)
	for i := 0; i < table6.Rows; i++ {
		rec := models.RatioRecord{
			Product: products[i],
		}
		if ratios.Valid[i] {
			rec.TourismRatio = ratios.Values[i]
		}
		if consumption.Valid[i] {
			rec.InternalTourismConsumption = consumption.Values[i]
		}
		if supply.Valid[i] {
			rec.DomesticSupply = supply.Values[i]
		}
		rec.Intensity = intensityBucket(rec.TourismRatio)
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TourismRatio > records[j].TourismRatio
	})

	return records
}
