package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/medstock-api/internal/application/monitor"
	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

var _ monitor.Notifier = (*Log)(nil)

// Log escribe cada alerta como un evento warn. Se usa sin token de Telegram.
type Log struct {
	log zerolog.Logger
}

func NewLog(log zerolog.Logger) *Log { return &Log{log: log} }

func (n *Log) Notify(_ context.Context, alerts []entity.Alert) error {
	for _, a := range alerts {
		n.log.Warn().
			Str("alert_id", a.ID).
			Str("type", string(a.Type)).
			Str("priority", string(a.Priority)).
			Str("item", a.Item).
			Str("location", a.Location).
			Msg(a.Description)
	}
	return nil
}
