package alerts

import (
	"context"
	"time"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// ReportGenerator genera un documento descargable con la lista de alertas.
type ReportGenerator interface {
	Format() string // "xlsx", "pdf"
	ContentType() string
	Generate(ctx context.Context, alerts []entity.Alert, generatedAt time.Time) ([]byte, error)
}

// MetricsRecorder registra métricas de derivación y reconocimiento. Opcional.
type MetricsRecorder interface {
	ObserveDerivation(alerts []entity.Alert, elapsed time.Duration)
	IncAcknowledgment(action string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveDerivation([]entity.Alert, time.Duration) {}
func (noopMetrics) IncAcknowledgment(string)                        {}
