package report

import (
	"fmt"
	"strings"
	"time"

	"nexalis-roi/internal/format"
	"nexalis-roi/internal/roi"
)

const (
	Brand         = "Nexalis Solutions"
	DocumentTitle = "Audit de rentabilité IA"
	Disclaimer    = "Les résultats sont des estimations basées sur les données fournies et des moyennes du secteur."
)

type Row struct {
	Label string
	Value string
	// Raw keeps the unformatted amount for spreadsheet cells. It is only
	// meaningful when Numeric is set.
	Raw     float64
	Numeric bool
}

func num(label, value string, raw float64) Row {
	return Row{Label: label, Value: value, Raw: raw, Numeric: true}
}

type Section struct {
	Heading string
	Rows    []Row
}

// Document is a layout-independent description of the exported report.
// Renderers (plain text, spreadsheet) only read it.
type Document struct {
	Title       string
	Brand       string
	Industry    string
	GeneratedAt time.Time
	Sections    []Section
	Chart       [3]roi.ChartPoint
	Narrative   string
	Status      string
	Disclaimer  string
}

func BuildDocument(b Bundle, generatedAt time.Time) Document {
	in, res := b.Inputs, b.Results

	return Document{
		Title:       DocumentTitle,
		Brand:       Brand,
		Industry:    string(in.Industry),
		GeneratedAt: generatedAt,
		Sections: []Section{
			{
				Heading: "Vos données",
				Rows: []Row{
					{Label: "Secteur d'activité", Value: string(in.Industry)},
					num("Nombre d'employés concernés", format.Number(int64(in.Employees))+" pers.", float64(in.Employees)),
					num("Salaire horaire moyen (chargé)", format.Decimal(in.HourlyWage)+" €/h", in.HourlyWage),
					num("Heures répétitives / semaine", format.Decimal(in.HoursRepetitive)+" h", in.HoursRepetitive),
				},
			},
			{
				Heading: "Résultats",
				Rows: []Row{
					num("Économies annuelles", format.Currency(float64(res.AnnualSavings)), float64(res.AnnualSavings)),
					num("Heures récupérées / an", format.Hours(res.TotalHoursSaved), float64(res.TotalHoursSaved)),
					num("ROI sur 3 ans", format.Currency(float64(res.ThreeYearROI)), float64(res.ThreeYearROI)),
					num("Coût actuel des tâches répétitives", format.Currency(res.CurrentCost), res.CurrentCost),
					num("Coût avec IA", format.Currency(res.CostWithAI), res.CostWithAI),
				},
			},
		},
		Chart:      b.ChartData,
		Narrative:  b.Narrative.Text,
		Status:     b.Narrative.Status,
		Disclaimer: Disclaimer,
	}
}

// FileName is the download name for an export in the given extension.
func (d Document) FileName(ext string) string {
	industry := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', '&', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, d.Industry)

	return fmt.Sprintf("Nexalis_Audit_%s.%s", industry, ext)
}
