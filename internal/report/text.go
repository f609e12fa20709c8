package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"nexalis-roi/internal/format"
)

const summaryTemplate = `{{.Title}} - {{.Brand}}
Généré le {{.GeneratedAt.Format "02/01/2006 15:04"}}
{{range .Sections}}
=== {{.Heading}} ===
{{range .Rows}}{{row .Label .Value}}
{{end}}{{end}}
=== Comparaison des coûts ===
{{range .Chart}}{{row .Name (money .Montant)}}
{{end}}
=== Analyse stratégique ===
{{.Narrative}}

{{.Disclaimer}}
`

var summaryTmpl = template.Must(template.New("summary").Funcs(template.FuncMap{
	"row": func(label, value string) string {
		return fmt.Sprintf("- %s : %s", label, value)
	},
	"money": format.Currency,
}).Parse(summaryTemplate))

// RenderText writes the "copy summary" version of the document.
func RenderText(w io.Writer, doc Document) error {
	if err := summaryTmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

func Text(doc Document) (string, error) {
	var b strings.Builder
	if err := RenderText(&b, doc); err != nil {
		return "", err
	}
	return b.String(), nil
}
