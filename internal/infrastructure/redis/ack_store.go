package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// AckKey hash alertID → JSON del reconocimiento.
const AckKey = keyPrefix + "alerts:ack"

var _ repository.AcknowledgmentRepository = (*AckStore)(nil)

// AckStore reconocimientos persistentes entre reinicios y compartidos entre réplicas.
type AckStore struct {
	rdb *redis.Client
}

// NewAckStore construye el almacén.
func NewAckStore(rdb *redis.Client) *AckStore {
	return &AckStore{rdb: rdb}
}

func (s *AckStore) Acknowledge(ctx context.Context, ack entity.Acknowledgment) error {
	payload, err := json.Marshal(ack)
	if err != nil {
		return fmt.Errorf("serializar reconocimiento: %w", err)
	}
	if err := s.rdb.HSet(ctx, AckKey, ack.AlertID, payload).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (s *AckStore) Unacknowledge(ctx context.Context, alertID string) error {
	if err := s.rdb.HDel(ctx, AckKey, alertID).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}

func (s *AckStore) IDs(ctx context.Context) (entity.AckSet, error) {
	ids, err := s.rdb.HKeys(ctx, AckKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hkeys: %w", err)
	}
	return entity.NewAckSet(ids...), nil
}

// List más reciente primero. Entradas ilegibles se devuelven solo con el ID.
func (s *AckStore) List(ctx context.Context) ([]entity.Acknowledgment, error) {
	all, err := s.rdb.HGetAll(ctx, AckKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	list := make([]entity.Acknowledgment, 0, len(all))
	for id, raw := range all {
		var a entity.Acknowledgment
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			a = entity.Acknowledgment{}
		}
		a.AlertID = id
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AcknowledgedAt.Equal(list[j].AcknowledgedAt) {
			return list[i].AlertID < list[j].AlertID
		}
		return list[i].AcknowledgedAt.After(list[j].AcknowledgedAt)
	})
	return list, nil
}
