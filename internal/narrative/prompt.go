package narrative

import (
	"fmt"
	"strings"

	"nexalis-roi/internal/format"
	"nexalis-roi/internal/roi"
)

const persona = "Agis comme un Directeur Stratégie Senior chez McKinsey ou BCG."

func clientContext(in roi.Inputs, res roi.Result) string {
	var b strings.Builder
	b.WriteString("CONTEXTE CLIENT :\n")
	fmt.Fprintf(&b, "- Secteur : %s\n", in.Industry)
	fmt.Fprintf(&b, "- Effectif : %d personnes\n", in.Employees)
	fmt.Fprintf(&b, "- Gain potentiel identifié : %s / an\n", format.Currency(float64(res.AnnualSavings)))
	fmt.Fprintf(&b, "- Heures \"perdues\" récupérables : %d h / an\n", res.TotalHoursSaved)
	return b.String()
}

// BuildPrompt returns the markdown prompt: three sections, 300-400 words.
func BuildPrompt(in roi.Inputs, res roi.Result) string {
	return strings.Join([]string{
		persona,
		clientContext(in, res),
		`OBJECTIF :
Génère une analyse stratégique structurée en 3 sections distinctes :

**1. Recommandations Personnalisées**
- 3 actions concrètes prioritaires adaptées à ce secteur et cette taille d'entreprise
- Sois très spécifique et actionnable

**2. Analyse Sectorielle**
- Tendances IA spécifiques à ce secteur
- Benchmarks de ROI dans l'industrie
- Opportunités sectorielles uniques

**3. Points d'Amélioration**
- Quick wins (résultats sous 3 mois)
- Optimisations moyen terme (3-6 mois)
- Transformations long terme (6-12 mois)`,
		`Ton style : Expert mais accessible, data-driven, focus sur l'impact business concret.
Format : Markdown avec **gras** pour les titres, tirets pour les listes. Pas de titre global, commence directement par la section 1.
Longueur : 300-400 mots maximum.`,
	}, "\n\n")
}

// BuildStructuredPrompt asks for the same analysis as a JSON document
// matching StrategicInsight.
func BuildStructuredPrompt(in roi.Inputs, res roi.Result) string {
	return strings.Join([]string{
		persona,
		clientContext(in, res),
		`OBJECTIF :
Produis une analyse stratégique au format JSON strict, sans texte autour, respectant exactement ce schéma :
{
  "summary": "synthèse en 2 à 3 phrases",
  "recommendations": [
    {"priority": 1, "title": "action", "description": "détail actionnable"}
  ],
  "sectorTrends": ["tendance IA du secteur"],
  "roadmap": {
    "quickWins": ["résultat sous 3 mois"],
    "midTerm": ["optimisation 3-6 mois"],
    "longTerm": ["transformation 6-12 mois"]
  }
}
Donne exactement 3 recommandations classées par priorité croissante.`,
	}, "\n\n")
}
