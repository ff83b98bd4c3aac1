package models

// CartLine is one row of a stored cart. ID is unique across all carts.
type CartLine struct {
	ID        int64
	ProductID int64
	Quantity  int
}
