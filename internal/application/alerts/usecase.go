// Package alerts contiene los casos de uso del tablero de alertas: derivación sobre
// el snapshot de inventario, reconocimiento, exportación e invalidación de caché.
package alerts

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/medstock-api/internal/application/dto"
	"github.com/jhoicas/medstock-api/internal/domain"
	"github.com/jhoicas/medstock-api/internal/domain/alerting"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// alertIDPattern forma de los IDs determinísticos aceptados para reconocimiento.
var alertIDPattern = regexp.MustCompile(`^(expired|expiring|low-stock)-\d+$`)

// AlertUseCase orquesta fuente de inventario → derivador → superposición de reconocimientos.
// No guarda alertas: cada llamada vuelve a derivar sobre un snapshot nuevo.
type AlertUseCase struct {
	source  repository.InventorySource
	acks    repository.AcknowledgmentRepository
	deriver *alerting.Deriver
	reports map[string]ReportGenerator
	metrics MetricsRecorder
	now     func() time.Time
	log     zerolog.Logger
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	source repository.InventorySource,
	acks repository.AcknowledgmentRepository,
	deriver *alerting.Deriver,
	log zerolog.Logger,
) *AlertUseCase {
	return &AlertUseCase{
		source:  source,
		acks:    acks,
		deriver: deriver,
		reports: make(map[string]ReportGenerator),
		metrics: noopMetrics{},
		now:     time.Now,
		log:     log,
	}
}

// WithReports registra generadores de exportación por formato.
func (uc *AlertUseCase) WithReports(gens ...ReportGenerator) *AlertUseCase {
	for _, g := range gens {
		uc.reports[g.Format()] = g
	}
	return uc
}

// WithMetrics conecta el registro de métricas.
func (uc *AlertUseCase) WithMetrics(m MetricsRecorder) *AlertUseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// WithClock reemplaza el reloj (tests).
func (uc *AlertUseCase) WithClock(now func() time.Time) *AlertUseCase {
	uc.now = now
	return uc
}

// Current deriva la lista completa de alertas con el estado de reconocimiento superpuesto.
func (uc *AlertUseCase) Current(ctx context.Context) ([]entity.Alert, time.Time, error) {
	snap, err := LoadSnapshot(ctx, uc.source, uc.log)
	if err != nil {
		return nil, time.Time{}, err
	}
	acked, err := uc.acks.IDs(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("leer reconocimientos: %w", err)
	}

	now := uc.now()
	start := time.Now()
	list := uc.deriver.Derive(snap, acked, now)
	elapsed := time.Since(start)

	uc.metrics.ObserveDerivation(list, elapsed)
	uc.log.Debug().
		Int("alerts", len(list)).
		Int("items", len(snap.Items)).
		Int("batches", len(snap.Batches)).
		Int("stock_lines", len(snap.StockLines)).
		Dur("elapsed", elapsed).
		Msg("alertas derivadas")
	return list, now, nil
}

// List devuelve las alertas filtradas más el resumen calculado sobre el total.
func (uc *AlertUseCase) List(ctx context.Context, filter dto.AlertFilter) (*dto.AlertListResponse, error) {
	if err := validateFilter(&filter); err != nil {
		return nil, err
	}
	all, now, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}
	filtered := applyFilter(all, filter)
	return &dto.AlertListResponse{
		Total:   len(filtered),
		Alerts:  filtered,
		Summary: summarize(all, now),
	}, nil
}

// Summary solo contadores.
func (uc *AlertUseCase) Summary(ctx context.Context) (*dto.AlertSummaryDTO, error) {
	all, now, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}
	s := summarize(all, now)
	return &s, nil
}

// Acknowledge marca la alerta como vista. Acepta cualquier ID bien formado:
// la alerta puede haber desaparecido entre la vista y el clic.
func (uc *AlertUseCase) Acknowledge(ctx context.Context, alertID, userID string) error {
	if !alertIDPattern.MatchString(alertID) {
		return domain.ErrInvalidInput
	}
	err := uc.acks.Acknowledge(ctx, entity.Acknowledgment{
		AlertID:        alertID,
		UserID:         userID,
		AcknowledgedAt: uc.now(),
	})
	if err != nil {
		return fmt.Errorf("reconocer alerta: %w", err)
	}
	uc.metrics.IncAcknowledgment("acknowledge")
	uc.log.Info().Str("alert_id", alertID).Str("user_id", userID).Msg("alerta reconocida")
	return nil
}

// Unacknowledge revierte el reconocimiento.
func (uc *AlertUseCase) Unacknowledge(ctx context.Context, alertID string) error {
	if !alertIDPattern.MatchString(alertID) {
		return domain.ErrInvalidInput
	}
	if err := uc.acks.Unacknowledge(ctx, alertID); err != nil {
		return fmt.Errorf("revertir reconocimiento: %w", err)
	}
	uc.metrics.IncAcknowledgment("unacknowledge")
	return nil
}

// Acknowledgments historial de reconocimientos, más recientes primero.
func (uc *AlertUseCase) Acknowledgments(ctx context.Context) ([]entity.Acknowledgment, error) {
	list, err := uc.acks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar reconocimientos: %w", err)
	}
	return list, nil
}

// Export genera el documento del formato pedido con las alertas filtradas.
func (uc *AlertUseCase) Export(ctx context.Context, format string, filter dto.AlertFilter) (*dto.ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	gen, ok := uc.reports[format]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	if err := validateFilter(&filter); err != nil {
		return nil, err
	}
	all, now, err := uc.Current(ctx)
	if err != nil {
		return nil, err
	}
	body, err := gen.Generate(ctx, applyFilter(all, filter), now)
	if err != nil {
		return nil, fmt.Errorf("generar reporte %s: %w", format, err)
	}
	return &dto.ExportResult{
		Filename:    fmt.Sprintf("alertes-%s.%s", now.Format("20060102-150405"), format),
		ContentType: gen.ContentType(),
		Body:        body,
	}, nil
}

// InvalidateCollections descarta de la caché las colecciones indicadas (todas si vacío),
// para que la próxima derivación vea los datos tras una escritura.
// Sin caché configurada no hace nada.
func (uc *AlertUseCase) InvalidateCollections(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		names = entity.AllCollections
	}
	for _, n := range names {
		if !entity.IsCollection(n) {
			return nil, fmt.Errorf("%w: colección desconocida %q", domain.ErrInvalidInput, n)
		}
	}
	inv, ok := uc.source.(repository.CollectionInvalidator)
	if !ok {
		return names, nil
	}
	if err := inv.Invalidate(ctx, names...); err != nil {
		return nil, fmt.Errorf("invalidar colecciones: %w", err)
	}
	uc.log.Info().Strs("collections", names).Msg("colecciones invalidadas")
	return names, nil
}

func validateFilter(f *dto.AlertFilter) error {
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))
	switch f.Status {
	case "":
		f.Status = dto.AlertStatusAll
	case dto.AlertStatusAll, dto.AlertStatusActive, dto.AlertStatusAcknowledged:
	default:
		return domain.ErrInvalidInput
	}
	if f.Type != "" && !entity.AlertType(f.Type).Valid() {
		return domain.ErrInvalidInput
	}
	if f.Priority != "" && !entity.AlertPriority(f.Priority).Valid() {
		return domain.ErrInvalidInput
	}
	return nil
}

// applyFilter conserva el orden de la derivación.
func applyFilter(all []entity.Alert, f dto.AlertFilter) []entity.Alert {
	out := make([]entity.Alert, 0, len(all))
	for _, a := range all {
		switch f.Status {
		case dto.AlertStatusActive:
			if a.Acknowledged {
				continue
			}
		case dto.AlertStatusAcknowledged:
			if !a.Acknowledged {
				continue
			}
		}
		if f.Type != "" && string(a.Type) != f.Type {
			continue
		}
		if f.Priority != "" && string(a.Priority) != f.Priority {
			continue
		}
		out = append(out, a)
	}
	return out
}

func summarize(all []entity.Alert, now time.Time) dto.AlertSummaryDTO {
	s := dto.AlertSummaryDTO{
		Total: len(all),
		ByPriority: map[string]int{
			string(entity.PriorityCritical): 0,
			string(entity.PriorityHigh):     0,
			string(entity.PriorityMedium):   0,
		},
		ByType: map[string]int{
			string(entity.AlertExpired):  0,
			string(entity.AlertExpiring): 0,
			string(entity.AlertLowStock): 0,
		},
		GeneratedAt: now,
	}
	for _, a := range all {
		if a.Acknowledged {
			s.Acknowledged++
			continue
		}
		s.Active++
		s.ByPriority[string(a.Priority)]++
		s.ByType[string(a.Type)]++
	}
	return s
}
