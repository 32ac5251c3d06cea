package models

// CartLine is one product entry in a user's cart. At most one line exists per
// product identifier; a line with quantity 0 is removed, never stored.
type CartLine struct {
	ProductID int64   `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}
