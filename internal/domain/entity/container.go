package entity

// Container caja, bolso o vehículo; Location nil = sin ubicación asignada.
type Container struct {
	ID       int64  `json:"id"`
	Location *int64 `json:"location"`
}
