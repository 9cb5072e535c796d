package repository

import (
	"context"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
)

// AcknowledgmentRepository define el puerto para el conjunto de alertas reconocidas.
// La única clave es el ID determinístico de la alerta.
type AcknowledgmentRepository interface {
	Acknowledge(ctx context.Context, ack entity.Acknowledgment) error
	Unacknowledge(ctx context.Context, alertID string) error
	IDs(ctx context.Context) (entity.AckSet, error)
	List(ctx context.Context) ([]entity.Acknowledgment, error)
}
