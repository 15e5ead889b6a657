package entity

import "github.com/shopspring/decimal"

// Product producto de la carta.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	Active       bool
	CategoryID   int64
	CategoryName string
}

// StockOperation operación de ajuste de stock que entiende el backend.
type StockOperation string

const (
	StockIncrease StockOperation = "aumentar"
	StockDecrease StockOperation = "reducir"
)

// Valid indica si la operación es reconocida.
func (o StockOperation) Valid() bool {
	return o == StockIncrease || o == StockDecrease
}
