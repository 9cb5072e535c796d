package dto

import (
	"time"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// Estados de filtrado por reconocimiento.
const (
	AlertStatusAll          = "all"
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
)

// AlertFilter filtros de GET /api/alerts. Vacío = sin filtro.
type AlertFilter struct {
	Status   string `query:"status"`
	Type     string `query:"type"`
	Priority string `query:"priority"`
}

// AlertSummaryDTO contadores para badges y pestañas del tablero.
// ByPriority y ByType cuentan solo alertas activas (no reconocidas).
type AlertSummaryDTO struct {
	Total        int            `json:"total"`
	Active       int            `json:"active"`
	Acknowledged int            `json:"acknowledged"`
	ByPriority   map[string]int `json:"by_priority"`
	ByType       map[string]int `json:"by_type"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

// AlertListResponse respuesta de GET /api/alerts.
type AlertListResponse struct {
	Total   int             `json:"total"`
	Alerts  []entity.Alert  `json:"alerts"`
	Summary AlertSummaryDTO `json:"summary"`
}

// AcknowledgeResponse respuesta de POST/DELETE /api/alerts/:id/acknowledge.
type AcknowledgeResponse struct {
	AlertID      string `json:"alert_id"`
	Acknowledged bool   `json:"acknowledged"`
}

// InvalidateCollectionsRequest body de POST /api/collections/invalidate.
// Collections vacío = todas.
type InvalidateCollectionsRequest struct {
	Collections []string `json:"collections"`
}

// ExportResult documento generado para descarga.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}
