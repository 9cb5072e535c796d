package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

var _ repository.AcknowledgmentRepository = (*AckStore)(nil)

// AckStore persiste los reconocimientos en la tabla alert_acknowledgments.
type AckStore struct {
	q Querier
}

// NewAckStore construye el repositorio.
func NewAckStore(q Querier) *AckStore {
	return &AckStore{q: q}
}

// Acknowledge inserta o actualiza (el último usuario gana).
func (s *AckStore) Acknowledge(ctx context.Context, ack entity.Acknowledgment) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO alert_acknowledgments (alert_id, user_id, acknowledged_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (alert_id) DO UPDATE
		SET user_id = EXCLUDED.user_id, acknowledged_at = EXCLUDED.acknowledged_at`,
		ack.AlertID, ack.UserID, ack.AcknowledgedAt)
	if err != nil {
		return fmt.Errorf("insert acknowledgment: %w", err)
	}
	return nil
}

func (s *AckStore) Unacknowledge(ctx context.Context, alertID string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM alert_acknowledgments WHERE alert_id = $1`, alertID); err != nil {
		return fmt.Errorf("delete acknowledgment: %w", err)
	}
	return nil
}

func (s *AckStore) IDs(ctx context.Context) (entity.AckSet, error) {
	ids, err := queryAll(ctx, s.q, `SELECT alert_id FROM alert_acknowledgments`,
		func(r scanner, id *string) error { return r.Scan(id) })
	if err != nil {
		return nil, fmt.Errorf("list acknowledgment ids: %w", err)
	}
	return entity.NewAckSet(ids...), nil
}

// List más recientes primero.
func (s *AckStore) List(ctx context.Context) ([]entity.Acknowledgment, error) {
	list, err := queryAll(ctx, s.q, `
		SELECT alert_id, user_id, acknowledged_at
		FROM alert_acknowledgments
		ORDER BY acknowledged_at DESC, alert_id`,
		func(r scanner, a *entity.Acknowledgment) error {
			return r.Scan(&a.AlertID, &a.UserID, &a.AcknowledgedAt)
		})
	if err != nil {
		return nil, fmt.Errorf("list acknowledgments: %w", err)
	}
	return list, nil
}
