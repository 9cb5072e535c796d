// Package monitor recalcula las alertas periódicamente y avisa de las críticas nuevas.
package monitor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// AlertProvider lo implementa *alerts.AlertUseCase.
type AlertProvider interface {
	Current(ctx context.Context) ([]entity.Alert, time.Time, error)
}

// Notifier canal de salida de las alertas nuevas (Telegram, log).
type Notifier interface {
	Notify(ctx context.Context, alerts []entity.Alert) error
}

// Monitor avisa una sola vez por alerta crítica no reconocida mientras siga presente.
// Si la alerta desaparece y vuelve a aparecer, se avisa de nuevo.
type Monitor struct {
	provider AlertProvider
	notifier Notifier
	interval time.Duration
	log      zerolog.Logger

	notified map[string]struct{} // solo lo toca la goroutine de Run
}

// New construye el monitor.
func New(provider AlertProvider, notifier Notifier, interval time.Duration, log zerolog.Logger) *Monitor {
	return &Monitor{
		provider: provider,
		notifier: notifier,
		interval: interval,
		log:      log,
		notified: make(map[string]struct{}),
	}
}

// Run ejecuta un ciclo inmediato y luego uno por intervalo hasta que ctx se cancele.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info().Dur("interval", m.interval).Msg("monitor de alertas iniciado")
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("monitor de alertas detenido")
			return
		case <-ticker.C:
			m.runOnce(ctx)
		}
	}
}

func (m *Monitor) runOnce(ctx context.Context) {
	n, err := m.Tick(ctx)
	if err != nil {
		if ctx.Err() == nil {
			m.log.Error().Err(err).Msg("ciclo del monitor")
		}
		return
	}
	if n > 0 {
		m.log.Info().Int("notified", n).Msg("alertas críticas notificadas")
	}
}

// Tick deriva, notifica las críticas nuevas y devuelve cuántas se notificaron.
// Si el envío falla no se marcan como notificadas: se reintentan en el siguiente ciclo.
func (m *Monitor) Tick(ctx context.Context) (int, error) {
	list, _, err := m.provider.Current(ctx)
	if err != nil {
		return 0, err
	}

	current := make(map[string]struct{})
	var fresh []entity.Alert
	for _, a := range list {
		if a.Acknowledged || a.Priority != entity.PriorityCritical {
			continue
		}
		current[a.ID] = struct{}{}
		if _, done := m.notified[a.ID]; !done {
			fresh = append(fresh, a)
		}
	}

	if len(fresh) > 0 {
		if err := m.notifier.Notify(ctx, fresh); err != nil {
			// conservar las previas que siguen presentes
			for id := range m.notified {
				if _, ok := current[id]; !ok {
					delete(m.notified, id)
				}
			}
			return 0, err
		}
	}
	m.notified = current
	return len(fresh), nil
}
