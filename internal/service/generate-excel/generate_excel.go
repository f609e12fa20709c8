package generate_excel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"nexalis-roi/internal/metrics"
	"nexalis-roi/internal/report"
	"nexalis-roi/internal/service/session"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheet = "Audit ROI"
)

type SubmissionSource interface {
	Current(sessionID string) (session.Submission, error)
}

type Export struct {
	FileName string
	Data     []byte
}

type GenerateExcelService struct {
	source SubmissionSource
	now    func() time.Time
}

func NewGenerateService(source SubmissionSource) *GenerateExcelService {
	return &GenerateExcelService{source: source, now: time.Now}
}

// GenerateExcel exports the current submission of a session.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, sessionID string) (Export, error) {
	const op = "service.generate_excel.GenerateExcel"

	sub, err := g.source.Current(sessionID)
	if err != nil {
		return Export{}, fmt.Errorf("%s: %w", op, err)
	}

	doc := report.BuildDocument(sub.Bundle(), g.now())

	data, err := Render(ctx, doc)
	if err != nil {
		return Export{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.Exports.WithLabelValues("xlsx").Inc()

	return Export{FileName: doc.FileName("xlsx"), Data: data}, nil
}

// Render lays the document out on a single sheet: header block, one
// table per section, the chart data with a column chart, the analysis
// text and the disclaimer.
func Render(ctx context.Context, doc report.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "1A365D"},
	})
	if err != nil {
		return nil, fmt.Errorf("title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"1A365D"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("wrap style: %w", err)
	}
	noteStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "718096", Size: 9},
	})
	if err != nil {
		return nil, fmt.Errorf("note style: %w", err)
	}

	w := &sheetWriter{f: f, row: 1}

	w.set(1, doc.Title)
	w.style(1, 3, titleStyle)
	w.next()
	w.set(1, doc.Brand)
	w.next()
	w.set(1, "Généré le "+doc.GeneratedAt.Format("02/01/2006 15:04"))
	w.next()
	w.next()

	for _, s := range doc.Sections {
		w.header(headerStyle, s.Heading, "Valeur", "Montant")
		for _, r := range s.Rows {
			w.set(1, r.Label)
			w.set(2, r.Value)
			if r.Numeric {
				w.set(3, r.Raw)
			}
			w.next()
		}
		w.next()
	}

	w.header(headerStyle, "Graphique", "Montant", "Couleur")
	chartFirst := w.row
	for _, p := range doc.Chart {
		w.set(1, p.Name)
		w.set(2, p.Montant)
		w.set(3, p.Fill)
		w.next()
	}
	chartLast := w.row - 1
	w.next()

	w.header(headerStyle, "Analyse stratégique", "", "")
	for _, line := range strings.Split(doc.Narrative, "\n") {
		w.set(1, line)
		w.style(1, 3, wrapStyle)
		w.next()
	}
	w.next()

	w.set(1, doc.Disclaimer)
	w.style(1, 3, noteStyle)

	if w.err != nil {
		return nil, fmt.Errorf("write cells: %w", w.err)
	}

	if err := f.AddChart(sheet, "E5", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$%d", sheet, chartFirst-1),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", sheet, chartFirst, chartLast),
			Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", sheet, chartFirst, chartLast),
			Fill:       excelize.Fill{Type: "pattern", Color: []string{"1A365D"}, Pattern: 1},
		}},
		Title:  []excelize.RichTextRun{{Text: "Impact financier"}},
		Legend: excelize.ChartLegend{Position: "none"},
		Dimension: excelize.ChartDimension{
			Width:  480,
			Height: 290,
		},
	}); err != nil {
		return nil, fmt.Errorf("add chart: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	if err := errors.Join(
		f.SetColWidth(sheet, "A", "A", 38),
		f.SetColWidth(sheet, "B", "C", 18),
	); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write buffer: %w", err)
	}

	return buf.Bytes(), nil
}

// sheetWriter tracks the current row and keeps the first write error.
type sheetWriter struct {
	f   *excelize.File
	row int
	err error
}

func (w *sheetWriter) next() {
	w.row++
}

func (w *sheetWriter) set(col int, v any) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellValue(sheet, w.cell(col), v)
}

func (w *sheetWriter) style(col, toCol, styleID int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, w.cell(col), w.cell(toCol), styleID)
}

func (w *sheetWriter) header(styleID int, names ...string) {
	for i, name := range names {
		w.set(i+1, name)
	}
	w.style(1, len(names), styleID)
	w.next()
}

func (w *sheetWriter) cell(col int) string {
	name, _ := excelize.CoordinatesToCellName(col, w.row)
	return name
}
