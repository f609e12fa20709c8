package report

import (
	"nexalis-roi/internal/narrative"
	"nexalis-roi/internal/roi"
)

const (
	StatusGenerating = "generating"
	StatusReady      = "ready"
	StatusFallback   = "unavailable"

	PlaceholderText = "Génération de l'analyse stratégique en cours..."
)

type NarrativeView struct {
	Status  string                      `json:"status"`
	Text    string                      `json:"text"`
	HTML    string                      `json:"html,omitempty"`
	Insight *narrative.StrategicInsight `json:"insight,omitempty"`
}

// Bundle is the snapshot handed to the presentation and export layers.
// It holds values only, so it can be serialized or kept as is.
type Bundle struct {
	Inputs    roi.Inputs        `json:"inputs"`
	Results   roi.Result        `json:"results"`
	ChartData [3]roi.ChartPoint `json:"chartData"`
	Narrative NarrativeView     `json:"narrative"`
}

// Assemble groups its arguments. A nil narrative means the analysis is
// still being generated.
func Assemble(in roi.Inputs, res roi.Result, chart [3]roi.ChartPoint, n *narrative.Narrative) Bundle {
	return Bundle{
		Inputs:    in,
		Results:   res,
		ChartData: chart,
		Narrative: narrativeView(n),
	}
}

func narrativeView(n *narrative.Narrative) NarrativeView {
	switch {
	case n == nil:
		return NarrativeView{Status: StatusGenerating, Text: PlaceholderText}
	case n.Fallback:
		return NarrativeView{Status: StatusFallback, Text: n.Text}
	default:
		return NarrativeView{
			Status:  StatusReady,
			Text:    n.Text,
			HTML:    n.HTML,
			Insight: n.Insight.Clone(),
		}
	}
}
