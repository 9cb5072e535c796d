package report

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 192, Green: 0, Blue: 0}
	colorHigh     = &props.Color{Red: 214, Green: 110, Blue: 0}
	colorMedium   = &props.Color{Red: 160, Green: 140, Blue: 0}
)

// PDFGenerator exporta las alertas a un PDF A4 apaisado con Maroto v2.
type PDFGenerator struct{}

func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{} }

func (g *PDFGenerator) Format() string      { return "pdf" }
func (g *PDFGenerator) ContentType() string { return "application/pdf" }

// Generate título con fecha de generación, contadores por prioridad y una tabla de alertas.
func (g *PDFGenerator) Generate(_ context.Context, alerts []entity.Alert, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Alerts", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(generatedAt, alerts))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, a := range alerts {
		m.AddRows(alertTableRow(a))
	}
	if len(alerts) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(text.New("No alerts", props.Text{
			Size: 9, Align: align.Center, Top: 2, Color: colorGray,
		}))))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow(generatedAt time.Time, alerts []entity.Alert) core.Row {
	counts := map[entity.AlertPriority]int{}
	for _, a := range alerts {
		counts[a.Priority]++
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Inventory alerts", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated "+generatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Critical: %d   High: %d   Medium: %d",
				counts[entity.PriorityCritical], counts[entity.PriorityHigh], counts[entity.PriorityMedium],
			), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 4}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Priority", 1),
		h("Title", 2),
		h("Item", 2),
		h("Location", 3),
		h("Date", 1),
		h("Qty", 1),
		h("Description", 2),
	)
}

func alertTableRow(a entity.Alert) core.Row {
	cell := func(v string, size int, c *props.Color) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 8, Top: 1, Left: 1, Color: c}))
	}
	qty := "-"
	if a.Quantity != nil {
		qty = fmt.Sprintf("%g", *a.Quantity)
	}
	title := a.Title
	if a.Acknowledged {
		title += " (ack)"
	}
	return row.New(7).Add(
		cell(string(a.Priority), 1, priorityColor(a.Priority)),
		cell(title, 2, nil),
		cell(a.Item, 2, nil),
		cell(a.Location, 3, colorGray),
		cell(a.Date.Format(time.DateOnly), 1, nil),
		cell(qty, 1, nil),
		cell(a.Description, 2, colorGray),
	)
}

func priorityColor(p entity.AlertPriority) *props.Color {
	switch p {
	case entity.PriorityCritical:
		return colorCritical
	case entity.PriorityHigh:
		return colorHigh
	default:
		return colorMedium
	}
}
