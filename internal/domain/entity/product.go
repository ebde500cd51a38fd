package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de las columnas de products (INTEGER y NUMERIC(14,2)).
const (
	MaxQuantity   = math.MaxInt32
	PriceDecimals = 2
)

// MaxPrice mayor precio que cabe en NUMERIC(14,2).
var MaxPrice = decimal.RequireFromString("999999999999.99")

// Product representa un producto del catálogo.
// Quantity solo cambia a través del servicio de inventario, que registra cada cambio en el historial.
type Product struct {
	ID           int64
	Name         string // único en el catálogo
	Description  string
	Category     string
	Price        decimal.Decimal // precio de venta, > 0
	Quantity     int             // existencias actuales, nunca negativas
	MinimumStock int             // umbral de stock bajo (solo para reportes)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si la cantidad está en o por debajo del umbral mínimo.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinimumStock
}

// IsOutOfStock indica si el producto no tiene existencias.
func (p *Product) IsOutOfStock() bool {
	return p.Quantity == 0
}

// InventoryValue devuelve precio × cantidad.
func (p *Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
