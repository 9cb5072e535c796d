// Package metrics expone métricas Prometheus del derivador de alertas.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/medstock-api/internal/application/alerts"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

var _ alerts.MetricsRecorder = (*Recorder)(nil)

const namespace = "medstock"

// Recorder registro propio (no el global) para poder instanciarlo en tests.
type Recorder struct {
	reg             *prometheus.Registry
	activeAlerts    *prometheus.GaugeVec
	derivationTime  prometheus.Histogram
	acknowledgments *prometheus.CounterVec
}

// New registra las métricas de alertas junto con las de runtime de Go y del proceso.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		activeAlerts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_alerts",
			Help:      "Alertas no reconocidas en la última derivación, por tipo y prioridad.",
		}, []string{"type", "priority"}),
		derivationTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "alert_derivation_seconds",
			Help:      "Duración de la derivación de alertas sobre un snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		acknowledgments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_acknowledgments_total",
			Help:      "Reconocimientos registrados, por acción.",
		}, []string{"action"}),
	}
	r.reg.MustRegister(
		r.activeAlerts,
		r.derivationTime,
		r.acknowledgments,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveDerivation reemplaza el gauge completo: combinaciones que ya no aparecen quedan en 0.
func (r *Recorder) ObserveDerivation(list []entity.Alert, elapsed time.Duration) {
	r.derivationTime.Observe(elapsed.Seconds())

	counts := make(map[[2]string]int)
	for _, t := range []entity.AlertType{entity.AlertExpired, entity.AlertExpiring, entity.AlertLowStock} {
		for _, p := range []entity.AlertPriority{entity.PriorityCritical, entity.PriorityHigh, entity.PriorityMedium} {
			counts[[2]string{string(t), string(p)}] = 0
		}
	}
	for _, a := range list {
		if a.Acknowledged {
			continue
		}
		counts[[2]string{string(a.Type), string(a.Priority)}]++
	}
	for k, n := range counts {
		r.activeAlerts.WithLabelValues(k[0], k[1]).Set(float64(n))
	}
}

func (r *Recorder) IncAcknowledgment(action string) {
	r.acknowledgments.WithLabelValues(action).Inc()
}

// Registry para tests y para colgar colectores adicionales.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Handler http.Handler de exposición; se adapta a Fiber en el router.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
