package roi

const (
	ColorCost        = "#ef4444"
	ColorBrandDark   = "#1a365d"
	ColorBrandAccent = "#38a169"

	LabelCurrentCost = "Coût Actuel"
	LabelCostWithAI  = "Coût avec IA"
	LabelSavings     = "Économies"
)

type ChartPoint struct {
	Name    string  `json:"name"`
	Montant float64 `json:"montant"`
	Fill    string  `json:"fill"`
}

// Chart returns the cost comparison bars: current cost, cost with AI, savings.
func Chart(res Result) [3]ChartPoint {
	return [3]ChartPoint{
		{Name: LabelCurrentCost, Montant: res.CurrentCost, Fill: ColorCost},
		{Name: LabelCostWithAI, Montant: res.CostWithAI, Fill: ColorBrandDark},
		{Name: LabelSavings, Montant: float64(res.AnnualSavings), Fill: ColorBrandAccent},
	}
}
