package entity

// Item representa una entrada del catálogo: un insumo o equipo rastreable.
// IsConsumable distingue consumibles (gasas, jeringas) de equipos durables.
type Item struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	IsConsumable bool   `json:"is_consumable"`
}
