package engine

import (
	"fmt"
	"math"

	"github.com/emantzoo/TSA-GR/internal/models"
)

// Deduction weights for the three data-quality checks. The checks are
// independent and additive; fully triggered they cost 75 points.
const (
	deductConsistency    = 25
	deductExtremeRatios  = 30
	deductMissingCap     = 20
	deductPerMissingCell = 2

	consistencyTolerance  = 1.0   // percent
	extremeRatioThreshold = 150.0 // percent
)

// Validate cross-checks the table set and scores its quality from 100
// down. Findings are informational; bad data never aborts a run.
func Validate(ts *TableSet) models.ValidationResult {
	score := 100
	var issues []string

	table4 := ts.InternalConsumption()
	table6 := ts.SupplyDemandCore()
	table7 := ts.Employment()

	// 1. Consumption consistency between Table 4 and Table 6.
	t4Consumption, _ := table4.Num(ColInternalConsumption)
	t6Consumption, _ := table6.Num(ColInternalConsumption)
	t4Total := t4Consumption.Sum()
	t6Total := t6Consumption.Sum()

	var discrepancyPct float64
	if t4Total > 0 {
		discrepancyPct = math.Abs(t4Total-t6Total) / t4Total * 100
	}
	if discrepancyPct > consistencyTolerance {
		score -= deductConsistency
		issues = append(issues, fmt.Sprintf("Tourism consumption inconsistency: %.2f%%", discrepancyPct))
	}

	// 2. Extreme tourism ratios.
	ratios, _ := table6.Num(ColTourismRatio)
	extreme := 0
	for i, r := range ratios.Values {
		if ratios.Valid[i] && r > extremeRatioThreshold {
			extreme++
		}
	}
	if extreme > 0 {
		score -= deductExtremeRatios
		issues = append(issues, fmt.Sprintf("%d products have extreme ratios (>150%%)", extreme))
	}

	// 3. Completeness across the three key columns.
	fte, _ := table7.Num(ColFTEJobs)
	totalMissing := t4Consumption.MissingCount() + ratios.MissingCount() + fte.MissingCount()
	if totalMissing > 0 {
		deduction := totalMissing * deductPerMissingCell
		if deduction > deductMissingCap {
			deduction = deductMissingCap
		}
		score -= deduction
		issues = append(issues, fmt.Sprintf("%d missing values found", totalMissing))
	}

	result := models.ValidationResult{Score: score, Issues: issues}
	if score < 0 {
		result.Score = 0
		result.ScoreClamped = true
	} else if score > 100 {
		result.Score = 100
		result.ScoreClamped = true
	}
	return result
}
