package entity

import "time"

// Acknowledgment marca de que un usuario vio/descartó una alerta.
// Se indexa únicamente por el ID determinístico de la alerta.
type Acknowledgment struct {
	AlertID        string    `json:"alert_id"`
	UserID         string    `json:"user_id"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}
