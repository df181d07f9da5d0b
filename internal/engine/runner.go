package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/emantzoo/TSA-GR/internal/models"
)

// Run executes one complete analysis over a table set: the four
// independent calculators fan out concurrently (none reads another's
// output), and the resulting report is immutable. Scenario projections
// run separately, against the finished aggregates only.
func Run(ts *TableSet, params models.CountryParams) (*models.AnalysisReport, error) {
	// Parameters gate the whole run; fail before spawning workers.
	if err := ValidateParams(params); err != nil {
		return nil, err
	}

	report := &models.AnalysisReport{
		RunID:   uuid.New().String(),
		Country: params.CountryName,
	}

	var wg sync.WaitGroup
	var aggErr error

	wg.Add(4)
	go func() {
		defer wg.Done()
		report.Aggregates, aggErr = ComputeAggregates(ts, params)
	}()
	go func() {
		defer wg.Done()
		report.Ratios = ClassifyRatios(ts)
	}()
	go func() {
		defer wg.Done()
		report.Employment = AnalyzeEmployment(ts)
	}()
	go func() {
		defer wg.Done()
		report.Validation = Validate(ts)
	}()
	wg.Wait()

	if aggErr != nil {
		return nil, aggErr
	}
	return report, nil
}
