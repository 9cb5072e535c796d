// Package report genera las exportaciones del tablero de alertas (XLSX y PDF).
package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// SheetAlerts nombre de la hoja exportada.
const SheetAlerts = "Alerts"

// Headers columnas de la exportación, en orden.
var Headers = []string{"ID", "Type", "Priority", "Title", "Item", "Location", "Date", "Quantity", "Batch", "Acknowledged"}

var columnWidths = []float64{16, 11, 10, 22, 28, 30, 12, 10, 8, 13}

// XLSXGenerator exporta las alertas a una hoja de cálculo con excelize.
type XLSXGenerator struct{}

func NewXLSXGenerator() *XLSXGenerator { return &XLSXGenerator{} }

func (g *XLSXGenerator) Format() string { return "xlsx" }

func (g *XLSXGenerator) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Generate escribe una fila por alerta, en el orden recibido, bajo una cabecera congelada.
func (g *XLSXGenerator) Generate(_ context.Context, alerts []entity.Alert, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetAlerts)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: borrar hoja por defecto: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetAlerts, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
	if err := f.SetCellStyle(SheetAlerts, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	for i, w := range columnWidths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetAlerts, name, name, w); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}

	for i, a := range alerts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := alertRow(a)
		if err := f.SetSheetRow(SheetAlerts, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetAlerts, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: congelar cabecera: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Alerts",
		Created: generatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("xlsx: propiedades: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func alertRow(a entity.Alert) []any {
	var qty, batch any = "", ""
	if a.Quantity != nil {
		qty = *a.Quantity
	}
	if a.BatchID != nil {
		batch = *a.BatchID
	}
	ack := "No"
	if a.Acknowledged {
		ack = "Yes"
	}
	return []any{
		a.ID,
		string(a.Type),
		string(a.Priority),
		a.Title,
		a.Item,
		a.Location,
		a.Date.Format(time.DateOnly),
		qty,
		batch,
		ack,
	}
}
