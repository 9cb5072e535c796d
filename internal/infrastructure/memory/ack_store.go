// Package memory implementa puertos en memoria del proceso. El estado se pierde al reiniciar.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

var _ repository.AcknowledgmentRepository = (*AckStore)(nil)

// AckStore conjunto de reconocimientos protegido por RWMutex.
type AckStore struct {
	mu   sync.RWMutex
	acks map[string]entity.Acknowledgment
}

// NewAckStore construye el almacén vacío.
func NewAckStore() *AckStore {
	return &AckStore{acks: make(map[string]entity.Acknowledgment)}
}

// Acknowledge registra (o sobreescribe) el reconocimiento.
func (s *AckStore) Acknowledge(_ context.Context, ack entity.Acknowledgment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acks[ack.AlertID] = ack
	return nil
}

// Unacknowledge elimina el reconocimiento; idempotente.
func (s *AckStore) Unacknowledge(_ context.Context, alertID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.acks, alertID)
	return nil
}

// IDs copia del conjunto: el llamador puede leerlo sin lock.
func (s *AckStore) IDs(_ context.Context) (entity.AckSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := make(entity.AckSet, len(s.acks))
	for id := range s.acks {
		set[id] = struct{}{}
	}
	return set, nil
}

// List reconocimientos ordenados por fecha (más reciente primero).
func (s *AckStore) List(_ context.Context) ([]entity.Acknowledgment, error) {
	s.mu.RLock()
	list := make([]entity.Acknowledgment, 0, len(s.acks))
	for _, a := range s.acks {
		list = append(list, a)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].AcknowledgedAt.Equal(list[j].AcknowledgedAt) {
			return list[i].AlertID < list[j].AlertID
		}
		return list[i].AcknowledgedAt.After(list[j].AcknowledgedAt)
	})
	return list, nil
}
