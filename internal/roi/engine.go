package roi

import "math"

const (
	WeeksPerYear = 47
	// EfficiencyFactor is the share of repetitive work assumed to be automated.
	EfficiencyFactor = 0.75
	roiYears         = 3
)

type Result struct {
	TotalHoursSaved int64   `json:"totalHoursSaved"`
	AnnualSavings   int64   `json:"annualSavings"`
	ThreeYearROI    int64   `json:"threeYearRoi"`
	CurrentCost     float64 `json:"currentCost"`
	CostWithAI      float64 `json:"costWithAi"`
}

// Compute maps inputs to the savings estimate. Only hours saved and annual
// savings are rounded, and savings are rounded before ROI and residual
// cost are derived from them. currentCost keeps full precision.
func Compute(in Inputs) Result {
	repetitiveHours := float64(in.Employees) * in.HoursRepetitive * WeeksPerYear

	hoursSaved := math.Round(repetitiveHours * EfficiencyFactor)
	savings := math.Round(hoursSaved * in.HourlyWage)
	currentCost := repetitiveHours * in.HourlyWage

	return Result{
		TotalHoursSaved: int64(hoursSaved),
		AnnualSavings:   int64(savings),
		ThreeYearROI:    int64(savings) * roiYears,
		CurrentCost:     currentCost,
		CostWithAI:      currentCost - savings,
	}
}
