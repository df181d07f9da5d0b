package engine

import "testing"

func TestValidateCleanData(t *testing.T) {
	ts := mustBuild(t, testTables())

	result := Validate(ts)
	if result.Score != 100 {
		t.Errorf("clean data should score 100, got %d", result.Score)
	}
	if len(result.Issues) != 0 {
		t.Errorf("clean data should have no issues, got %v", result.Issues)
	}
	if result.ScoreClamped {
		t.Error("clamp must not fire on clean data")
	}
}

func TestValidateConsumptionInconsistency(t *testing.T) {
	raw := testTables()
	table6 := raw[TableSupplyDemandCore]
	// Table 4 sums to 1000; shift table 6 to 900 → 10% discrepancy.
	table6.Nums[ColInternalConsumption] = numCol(450, 270, 180)
	raw[TableSupplyDemandCore] = table6
	ts := mustBuild(t, raw)

	result := Validate(ts)
	if result.Score != 75 {
		t.Errorf("expected score 75, got %d", result.Score)
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", result.Issues)
	}
	if result.Issues[0] != "Tourism consumption inconsistency: 10.00%" {
		t.Errorf("wrong issue text: %q", result.Issues[0])
	}
}

func TestValidateWithinConsumptionTolerance(t *testing.T) {
	raw := testTables()
	table6 := raw[TableSupplyDemandCore]
	// 0.5% off: inside the 1% tolerance, no deduction.
	table6.Nums[ColInternalConsumption] = numCol(500, 300, 195)
	raw[TableSupplyDemandCore] = table6
	ts := mustBuild(t, raw)

	result := Validate(ts)
	if result.Score != 100 {
		t.Errorf("0.5%% discrepancy should not deduct, got score %d", result.Score)
	}
}

func TestValidateExtremeRatios(t *testing.T) {
	raw := testTables()
	table6 := raw[TableSupplyDemandCore]
	table6.Nums[ColTourismRatio] = numCol(160, 20, 25)
	raw[TableSupplyDemandCore] = table6
	ts := mustBuild(t, raw)

	result := Validate(ts)
	if result.Score != 70 {
		t.Errorf("one extreme ratio should score 70, got %d", result.Score)
	}
	if len(result.Issues) != 1 || result.Issues[0] != "1 products have extreme ratios (>150%)" {
		t.Errorf("wrong issues: %v", result.Issues)
	}
}

func TestValidateRatioAtThresholdNotExtreme(t *testing.T) {
	raw := testTables()
	table6 := raw[TableSupplyDemandCore]
	table6.Nums[ColTourismRatio] = numCol(150, 20, 25)
	raw[TableSupplyDemandCore] = table6
	ts := mustBuild(t, raw)

	result := Validate(ts)
	if result.Score != 100 {
		t.Errorf("ratio exactly 150 is not extreme, got score %d", result.Score)
	}
}

func TestValidateMissingValues(t *testing.T) {
	raw := testTables()

	table4 := raw[TableInternalConsumption]
	table4.Nums[ColInternalConsumption] = numColMissing([]float64{500, 300, 200}, 0)
	raw[TableInternalConsumption] = table4

	table7 := raw[TableEmployment]
	table7.Nums[ColFTEJobs] = numColMissing([]float64{50000, 30000, 20000}, 1, 2)
	raw[TableEmployment] = table7

	ts := mustBuild(t, raw)
	result := Validate(ts)

	// 3 missing cells → deduct 6. The dropped consumption cell also
	// breaks table 4 vs table 6 consistency (500 vs 1000) → deduct 25.
	if result.Score != 100-25-6 {
		t.Errorf("expected score 69, got %d", result.Score)
	}

	found := false
	for _, issue := range result.Issues {
		if issue == "3 missing values found" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing-values issue absent: %v", result.Issues)
	}
}

func TestValidateMissingDeductionCapped(t *testing.T) {
	raw := testTables()

	// 15 missing FTE cells: 15*2=30 caps at 20.
	vals := make([]float64, 15)
	missing := make([]int, 15)
	for i := range vals {
		vals[i] = 1
		missing[i] = i
	}
	raw[TableEmployment] = Table{
		Kind: TableEmployment,
		Rows: 15,
		Text: map[string][]string{
			ColIndustries: make([]string, 15),
		},
		Nums: map[string]NumColumn{
			ColFTEJobs: numColMissing(vals, missing...),
		},
	}
	ts := mustBuild(t, raw)

	result := Validate(ts)
	if result.Score != 80 {
		t.Errorf("missing deduction should cap at 20, got score %d", result.Score)
	}
}

func TestValidateIssuesFollowCheckOrder(t *testing.T) {
	raw := testTables()

	table6 := raw[TableSupplyDemandCore]
	table6.Nums[ColInternalConsumption] = numCol(100, 100, 100) // inconsistent
	table6.Nums[ColTourismRatio] = numColMissing([]float64{160, 170, 25}, 2)
	raw[TableSupplyDemandCore] = table6
	ts := mustBuild(t, raw)

	result := Validate(ts)
	// All three checks fire: 100 - 25 - 30 - 2 = 43.
	if result.Score != 43 {
		t.Errorf("expected score 43, got %d", result.Score)
	}
	if len(result.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", result.Issues)
	}
	if result.Issues[0] != "Tourism consumption inconsistency: 70.00%" {
		t.Errorf("issue 1 wrong: %q", result.Issues[0])
	}
	if result.Issues[1] != "2 products have extreme ratios (>150%)" {
		t.Errorf("issue 2 wrong: %q", result.Issues[1])
	}
	if result.Issues[2] != "1 missing values found" {
		t.Errorf("issue 3 wrong: %q", result.Issues[2])
	}
	if result.ScoreClamped {
		t.Error("clamp must not fire; ceilings top out at 75")
	}
}

func TestValidateZeroConsumptionBase(t *testing.T) {
	raw := testTables()

	table4 := raw[TableInternalConsumption]
	table4.Nums[ColInternalConsumption] = numCol(0, 0, 0)
	raw[TableInternalConsumption] = table4
	ts := mustBuild(t, raw)

	// Zero table-4 total defines discrepancy as 0; no deduction even
	// though table 6 sums to 1000.
	result := Validate(ts)
	if result.Score != 100 {
		t.Errorf("zero base should skip the consistency check, got %d", result.Score)
	}
}
