package narrative

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrInsightUnparsable = errors.New("insight is not parsable JSON")
	ErrInsightSchema     = errors.New("insight does not match schema")
)

const insightSchemaJSON = `{
  "type": "object",
  "required": ["summary", "recommendations", "sectorTrends", "roadmap"],
  "properties": {
    "summary": {"type": "string", "minLength": 1},
    "recommendations": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title", "description"],
        "properties": {
          "priority": {"type": "integer", "minimum": 1},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"}
        }
      }
    },
    "sectorTrends": {"type": "array", "items": {"type": "string"}},
    "roadmap": {
      "type": "object",
      "required": ["quickWins", "midTerm", "longTerm"],
      "properties": {
        "quickWins": {"type": "array", "items": {"type": "string"}},
        "midTerm": {"type": "array", "items": {"type": "string"}},
        "longTerm": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var insightSchema = mustSchema(insightSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("narrative: invalid insight schema: %v", err))
	}
	return schema
}

// ParseInsight turns a model answer into a StrategicInsight. It accepts
// strict JSON, JSON the repair pass can fix, and Hjson, in that order.
func ParseInsight(raw string) (*StrategicInsight, error) {
	const op = "narrative.ParseInsight"

	doc, err := normalizeJSON(CleanMarkdown(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := insightSchema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInsightUnparsable, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%s: %w: %s", op, ErrInsightSchema, strings.Join(errs, "; "))
	}

	var insight StrategicInsight
	if err := json.Unmarshal([]byte(doc), &insight); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInsightUnparsable, err)
	}

	return &insight, nil
}

func normalizeJSON(input string) (string, error) {
	if json.Valid([]byte(input)) {
		return input, nil
	}

	if repaired, err := jsonrepair.RepairJSON(input); err == nil && json.Valid([]byte(repaired)) {
		return repaired, nil
	}

	var generic interface{}
	if err := hjson.Unmarshal([]byte(input), &generic); err == nil {
		if out, err := json.Marshal(generic); err == nil {
			return string(out), nil
		}
	}

	return "", ErrInsightUnparsable
}

// Markdown renders the insight with the same three sections the free-text
// prompt asks for, so both modes display alike.
func (s *StrategicInsight) Markdown() string {
	if s == nil {
		return ""
	}

	var b strings.Builder
	if s.Summary != "" {
		b.WriteString(s.Summary)
		b.WriteString("\n\n")
	}

	b.WriteString("**1. Recommandations Personnalisées**\n")
	for _, r := range s.Recommendations {
		if r.Description != "" {
			fmt.Fprintf(&b, "- **%s** : %s\n", r.Title, r.Description)
		} else {
			fmt.Fprintf(&b, "- **%s**\n", r.Title)
		}
	}

	b.WriteString("\n**2. Analyse Sectorielle**\n")
	writeList(&b, s.SectorTrends)

	b.WriteString("\n**3. Points d'Amélioration**\n")
	writeHorizon(&b, "Quick wins (sous 3 mois)", s.Roadmap.QuickWins)
	writeHorizon(&b, "Moyen terme (3-6 mois)", s.Roadmap.MidTerm)
	writeHorizon(&b, "Long terme (6-12 mois)", s.Roadmap.LongTerm)

	return strings.TrimSpace(b.String())
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func writeHorizon(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "- *%s* : %s\n", title, strings.Join(items, " ; "))
}
