package engine

import (
	"sort"

	"github.com/emantzoo/TSA-GR/internal/models"
)

// AnalyzeEmployment builds one EmploymentRecord per tourism industry,
// sorted by employment share descending (stable on ties). The share is
// computed against the full FTE column sum once, then applied per row.
// Labor productivity is only populated when the table carries measured
// GVA; absent data stays absent instead of defaulting to zero.
func AnalyzeEmployment(ts *TableSet) []models.EmploymentRecord {
	table7 := ts.Employment()

	industries, _ := table7.TextCol(ColIndustries)
	fte, _ := table7.Num(ColFTEJobs)
	gva, hasGVA := table7.Num(ColGVAShare)

	totalFTE := fte.Sum()

	records := make([]models.EmploymentRecord, 0, table7.Rows)
	for i := 0; i < table7.Rows; i++ {
		rec := models.EmploymentRecord{
			Industry: industries[i],
		}
		if fte.Valid[i] {
			rec.FTEJobs = fte.Values[i]
			if totalFTE > 0 {
				rec.EmploymentShare = fte.Values[i] / totalFTE * 100
			}
		}
		// GVA per job, scaled to currency-per-job units. Rows without
		// both factors keep the field unset.
		if hasGVA && gva.Valid[i] && fte.Valid[i] && fte.Values[i] != 0 {
			p := gva.Values[i] / fte.Values[i] * 1000
			rec.LaborProductivity = &p
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EmploymentShare > records[j].EmploymentShare
	})

	return records
}
