package entity

import "time"

// AlertType tipo de alerta derivada.
type AlertType string

const (
	AlertExpired  AlertType = "expired"
	AlertExpiring AlertType = "expiring"
	AlertLowStock AlertType = "low_stock"
)

// Valid indica si t es un tipo conocido.
func (t AlertType) Valid() bool {
	switch t {
	case AlertExpired, AlertExpiring, AlertLowStock:
		return true
	}
	return false
}

// AlertPriority prioridad de una alerta.
type AlertPriority string

const (
	PriorityCritical AlertPriority = "critical"
	PriorityHigh     AlertPriority = "high"
	PriorityMedium   AlertPriority = "medium"
)

// Rank orden de la prioridad (0 = más urgente). Desconocida va al final.
func (p AlertPriority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Valid indica si p es una prioridad conocida.
func (p AlertPriority) Valid() bool {
	return p.Rank() < 3
}

// Alert registro calculado (nunca persistido) que señala un vencimiento o stock bajo.
//
// ID es determinístico ("expired-<batchId>", "expiring-<batchId>", "low-stock-<itemId>"),
// por eso sirve como clave del reconocimiento entre recálculos.
// Date: fecha de vencimiento para alertas de lote; momento del cálculo para stock bajo.
type Alert struct {
	ID           string        `json:"id"`
	Type         AlertType     `json:"type"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Item         string        `json:"item"`
	ItemID       int64         `json:"itemId"`
	Location     string        `json:"location"`
	Date         time.Time     `json:"date"`
	Priority     AlertPriority `json:"priority"`
	Acknowledged bool          `json:"acknowledged"`
	BatchID      *int64        `json:"batchId,omitempty"`
	Quantity     *float64      `json:"quantity,omitempty"`
}

// AckSet conjunto de IDs de alertas reconocidas. Solo lectura para el derivador.
type AckSet map[string]struct{}

// NewAckSet construye el conjunto a partir de una lista de IDs.
func NewAckSet(ids ...string) AckSet {
	s := make(AckSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has indica si id fue reconocida. Seguro sobre un AckSet nil.
func (s AckSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
