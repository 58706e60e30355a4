package entity

import "time"

// StockOutCounter cuenta las semanas consecutivas en quiebre de stock
// para un producto en una ubicación. Se incrementa en el chequeo semanal
// y se resetea al reponer por encima del umbral.
type StockOutCounter struct {
	LocationID       string
	ProductID        string
	ConsecutiveWeeks int
	LastUpdated      time.Time
}

// StockOutHistory es una fila append-only: un evento de quiebre detectado.
// Nunca se muta ni se borra.
type StockOutHistory struct {
	ID           string
	LocationID   string
	ProductID    string
	StockOutDate time.Time
}
