package report_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/medstock-api/internal/application/alerts"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/infrastructure/report"
)

var (
	_ alerts.ReportGenerator = (*report.XLSXGenerator)(nil)
	_ alerts.ReportGenerator = (*report.PDFGenerator)(nil)
)

var generatedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func sampleAlerts() []entity.Alert {
	qty := 2.5
	batch := int64(7)
	return []entity.Alert{
		{
			ID: "expired-7", Type: entity.AlertExpired, Title: "Expired batch",
			Description: "Batch #7 of Adrénaline expired on 2023-12-30",
			Item:        "Adrénaline", ItemID: 1, Location: "VSAV 1 - Cellule",
			Date: generatedAt.AddDate(0, 0, -2), Priority: entity.PriorityCritical,
			BatchID: &batch, Quantity: &qty,
		},
		{
			ID: "low-stock-2", Type: entity.AlertLowStock, Title: "Out of stock",
			Description: "Compresses is out of stock",
			Item:        "Compresses", ItemID: 2, Location: "Inconnu",
			Date: generatedAt, Priority: entity.PriorityCritical, Acknowledged: true,
		},
	}
}

func TestXLSX_FilasEnOrden(t *testing.T) {
	body, err := report.NewXLSXGenerator().Generate(context.Background(), sampleAlerts(), generatedAt)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetAlerts)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, report.Headers, rows[0])

	assert.Equal(t, "expired-7", rows[1][0])
	assert.Equal(t, "critical", rows[1][2])
	assert.Equal(t, "VSAV 1 - Cellule", rows[1][5])
	assert.Equal(t, "2023-12-30", rows[1][6])
	assert.Equal(t, "2.5", rows[1][7])
	assert.Equal(t, "7", rows[1][8])
	assert.Equal(t, "No", rows[1][9])

	assert.Equal(t, "low-stock-2", rows[2][0])
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "Yes", rows[2][9])
}

func TestXLSX_SinAlertasSoloCabecera(t *testing.T) {
	body, err := report.NewXLSXGenerator().Generate(context.Background(), nil, generatedAt)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetAlerts)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestPDF_Genera(t *testing.T) {
	g := report.NewPDFGenerator()
	assert.Equal(t, "pdf", g.Format())

	body, err := g.Generate(context.Background(), sampleAlerts(), generatedAt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	empty, err := g.Generate(context.Background(), nil, generatedAt)
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
