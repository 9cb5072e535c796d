package entity

import "time"

// Batch representa un lote de un ítem con fecha de vencimiento opcional.
// ExpiresAt nil = el lote no vence.
type Batch struct {
	ID        int64      `json:"id"`
	Item      int64      `json:"item"`
	ExpiresAt *time.Time `json:"expires_at"`
}
