package entity

import "time"

// StockRecord representa el inventario de un producto (una fila de products).
// Count es el único campo que muta el motor; Version crece en cada escritura condicional.
type StockRecord struct {
	ID        string
	Name      string
	Count     int64
	Version   int64
	UpdatedAt time.Time
}
