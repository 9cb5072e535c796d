package entity

// Site sede física (base, hospital, estación).
type Site struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
