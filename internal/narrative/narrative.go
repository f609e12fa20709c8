// Package narrative obtains the AI-written strategic analysis that
// accompanies a calculation. The browser-facing side (Requester) talks to
// the same-origin relay; the relay side (Composer) holds the model client.
package narrative

import (
	"nexalis-roi/internal/roi"
)

const FallbackText = "L'analyse IA n'est temporairement pas disponible. Veuillez réessayer dans quelques instants."

type Recommendation struct {
	Priority    int    `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Roadmap struct {
	QuickWins []string `json:"quickWins"`
	MidTerm   []string `json:"midTerm"`
	LongTerm  []string `json:"longTerm"`
}

type StrategicInsight struct {
	Summary         string           `json:"summary"`
	Recommendations []Recommendation `json:"recommendations"`
	SectorTrends    []string         `json:"sectorTrends"`
	Roadmap         Roadmap          `json:"roadmap"`
}

// Clone returns a copy that shares no slices with s.
func (s *StrategicInsight) Clone() *StrategicInsight {
	if s == nil {
		return nil
	}
	return &StrategicInsight{
		Summary:         s.Summary,
		Recommendations: append([]Recommendation(nil), s.Recommendations...),
		SectorTrends:    append([]string(nil), s.SectorTrends...),
		Roadmap: Roadmap{
			QuickWins: append([]string(nil), s.Roadmap.QuickWins...),
			MidTerm:   append([]string(nil), s.Roadmap.MidTerm...),
			LongTerm:  append([]string(nil), s.Roadmap.LongTerm...),
		},
	}
}

// Narrative is what the requester hands back: always displayable.
type Narrative struct {
	Text     string            `json:"text"`
	HTML     string            `json:"html,omitempty"`
	Insight  *StrategicInsight `json:"insight,omitempty"`
	Fallback bool              `json:"fallback"`
}

func Fallback() Narrative {
	return Narrative{Text: FallbackText, Fallback: true}
}

// RelayRequest is the body exchanged with the relay endpoint. Pointers
// let the relay tell a missing section from a zero one.
type RelayRequest struct {
	Inputs  *roi.Inputs `json:"inputs"`
	Results *roi.Result `json:"results"`
}

type RelayReply struct {
	Text    string            `json:"text"`
	Insight *StrategicInsight `json:"insight,omitempty"`
}

type RelayError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
