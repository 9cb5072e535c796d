package entity

// Location lugar dentro de una sede.
type Location struct {
	ID   int64  `json:"id"`
	Site int64  `json:"site"`
	Name string `json:"name"`
}
