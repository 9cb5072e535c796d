package entity

// LotInstance instancia física de un kit, guardada en un contenedor.
type LotInstance struct {
	ID        int64 `json:"id"`
	Container int64 `json:"container"`
}
