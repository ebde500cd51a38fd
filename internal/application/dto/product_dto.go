package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto (POST y PUT).
type ProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"max=2000"`
	Category     string          `json:"category" validate:"max=200"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity" validate:"min=0,max=2147483647"`
	MinimumStock int             `json:"minimum_stock" validate:"min=0,max=2147483647"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	MinimumStock int             `json:"minimum_stock"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeleteProductResponse confirmación de borrado de producto y su historial.
type DeleteProductResponse struct {
	Message          string `json:"message"`
	ProductID        int64  `json:"product_id"`
	DeletedMovements int64  `json:"deleted_movements"`
}
