package entity

import "time"

// CartItem es una línea del carrito de un usuario. Única por (UserID, ProductID);
// agregar el mismo producto suma cantidades.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
