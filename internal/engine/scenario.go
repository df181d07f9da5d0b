package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/emantzoo/TSA-GR/internal/models"
)

// GrowthScenario parameterizes one compounding growth path.
type GrowthScenario struct {
	AnnualGrowthRate     float64 `json:"annual_growth_rate"`
	EmploymentElasticity float64 `json:"employment_elasticity"`
}

// Policy parameterizes one discrete intervention.
type Policy struct {
	GDPImpact        float64 `json:"gdp_impact"`
	EmploymentImpact float64 `json:"employment_impact"`
	InvestmentCost   float64 `json:"investment_cost"`
	Description      string  `json:"description"`
}

// SensitivityFactor is the fraction of a parameter shift that passes
// through to GDP and to employment.
type SensitivityFactor struct {
	GDPEffect        float64 `json:"gdp_effect"`
	EmploymentEffect float64 `json:"employment_effect"`
}

// ScenarioConfig carries every tunable of the scenario engine. The
// figures are data, not algorithm: they can be loaded from a JSON file
// and adjusted without touching the projection code.
type ScenarioConfig struct {
	AnchorYear  int                          `json:"anchor_year"`
	Scenarios   map[string]GrowthScenario    `json:"scenarios"`
	Policies    map[string]Policy            `json:"policies"`
	Sensitivity map[string]SensitivityFactor `json:"sensitivity"`
}

// DefaultScenarioConfig returns the standard parameter tables.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		AnchorYear: 2024,
		Scenarios: map[string]GrowthScenario{
			"pessimistic": {AnnualGrowthRate: 0.01, EmploymentElasticity: 0.8},
			"realistic":   {AnnualGrowthRate: 0.04, EmploymentElasticity: 0.9},
			"optimistic":  {AnnualGrowthRate: 0.07, EmploymentElasticity: 1.1},
		},
		Policies: map[string]Policy{
			"marketing_boost": {
				GDPImpact: 0.15, EmploymentImpact: 0.10, InvestmentCost: 50,
				Description: "Intensive international marketing campaign",
			},
			"infrastructure_investment": {
				GDPImpact: 0.25, EmploymentImpact: 0.20, InvestmentCost: 500,
				Description: "Major tourism infrastructure development",
			},
			"skills_development": {
				GDPImpact: 0.20, EmploymentImpact: 0.05, InvestmentCost: 200,
				Description: "Comprehensive workforce training program",
			},
			"digital_transformation": {
				GDPImpact: 0.18, EmploymentImpact: -0.05, InvestmentCost: 150,
				Description: "Tourism sector digitalization initiative",
			},
		},
		Sensitivity: map[string]SensitivityFactor{
			"Tourism Ratios":     {GDPEffect: 1, EmploymentEffect: 0},
			"Labor Productivity": {GDPEffect: 1, EmploymentEffect: 0},
			"Inbound Share":      {GDPEffect: 0.5, EmploymentEffect: 1.0 / 3.0},
			"Exchange Rate":      {GDPEffect: 2.0 / 3.0, EmploymentEffect: 0.25},
		},
	}
}

// LoadScenarioConfig reads a ScenarioConfig from a JSON file. Missing
// sections fall back to the defaults so a partial override file works.
func LoadScenarioConfig(path string) (ScenarioConfig, error) {
	cfg := DefaultScenarioConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scenario config: %w", err)
	}
	var override ScenarioConfig
	if err := json.Unmarshal(data, &override); err != nil {
		return cfg, fmt.Errorf("parse scenario config: %w", err)
	}
	if override.AnchorYear != 0 {
		cfg.AnchorYear = override.AnchorYear
	}
	if len(override.Scenarios) > 0 {
		cfg.Scenarios = override.Scenarios
	}
	if len(override.Policies) > 0 {
		cfg.Policies = override.Policies
	}
	if len(override.Sensitivity) > 0 {
		cfg.Sensitivity = override.Sensitivity
	}
	return cfg, nil
}

// UnknownParameterError reports a sensitivity call with a parameter name
// outside the configured set.
type UnknownParameterError struct {
	Parameter string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown sensitivity parameter: %q", e.Parameter)
}

// ScenarioEngine projects forward-looking scenarios from a finished set
// of core aggregates. It never reads the TableSet.
type ScenarioEngine struct {
	cfg ScenarioConfig
}

// NewScenarioEngine builds an engine over the given parameter tables.
func NewScenarioEngine(cfg ScenarioConfig) *ScenarioEngine {
	return &ScenarioEngine{cfg: cfg}
}

// Config exposes the parameter tables the engine was built with.
func (se *ScenarioEngine) Config() ScenarioConfig {
	return se.cfg
}

// ProjectGrowth compounds each scenario's growth rate over yearsAhead
// years. Year k's entry depends only on the base aggregates and k, so
// extending the horizon never changes earlier years.
func (se *ScenarioEngine) ProjectGrowth(agg *models.CoreAggregates, yearsAhead int) map[string][]models.YearProjection {
	results := make(map[string][]models.YearProjection, len(se.cfg.Scenarios))

	for name, sc := range se.cfg.Scenarios {
		projections := make([]models.YearProjection, 0, yearsAhead)
		employmentRate := sc.AnnualGrowthRate * sc.EmploymentElasticity

		for year := 1; year <= yearsAhead; year++ {
			growth := math.Pow(1+sc.AnnualGrowthRate, float64(year))
			projections = append(projections, models.YearProjection{
				Year:               se.cfg.AnchorYear + year,
				TourismConsumption: agg.InternalTourismConsumption * growth,
				TourismEmployment:  agg.TotalTourismFTE * math.Pow(1+employmentRate, float64(year)),
				TourismGDP:         agg.TourismDirectGDP * growth,
			})
		}
		results[name] = projections
	}
	return results
}

// EvaluatePolicies scores each configured intervention by ROI. The 1000
// factor converts the GDP delta into the unit the investment costs are
// quoted in.
func (se *ScenarioEngine) EvaluatePolicies(agg *models.CoreAggregates) map[string]models.PolicyOutcome {
	baseGDP := agg.TourismDirectGDP

	results := make(map[string]models.PolicyOutcome, len(se.cfg.Policies))
	for name, p := range se.cfg.Policies {
		newGDP := baseGDP * (1 + p.GDPImpact)
		increase := newGDP - baseGDP

		results[name] = models.PolicyOutcome{
			Description:         p.Description,
			GDPChangePct:        p.GDPImpact * 100,
			EmploymentChangePct: p.EmploymentImpact * 100,
			InvestmentCost:      p.InvestmentCost,
			ROI:                 increase * 1000 / p.InvestmentCost,
			GDPIncrease:         increase,
		}
	}
	return results
}

// Sensitivity applies a single-parameter shift and reports the GDP and
// employment deltas it passes through.
func (se *ScenarioEngine) Sensitivity(agg *models.CoreAggregates, parameter string, percentChange float64) (models.SensitivityResult, error) {
	factor, ok := se.cfg.Sensitivity[parameter]
	if !ok {
		return models.SensitivityResult{}, &UnknownParameterError{Parameter: parameter}
	}
	return models.SensitivityResult{
		GDPChangePct:        percentChange * factor.GDPEffect,
		EmploymentChangePct: percentChange * factor.EmploymentEffect,
	}, nil
}
