package entity

// StockLine representa una cantidad de un ítem (opcionalmente atada a un lote)
// guardada físicamente en una instancia de lote.
// Quantity conserva el string decimal tal como lo entrega el backend.
type StockLine struct {
	ID          int64  `json:"id"`
	Item        int64  `json:"item"`
	Batch       *int64 `json:"batch"`
	LotInstance int64  `json:"lot_instance"`
	Quantity    string `json:"quantity"`
}
