package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// Para ENTRY/EXIT, Quantity es la cantidad a sumar/restar; para ADJUSTMENT es el nuevo total.
type RegisterMovementRequest struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"min=0,max=2147483647"`
	Type      string `json:"type" validate:"required,oneof=ENTRY EXIT ADJUSTMENT"`
	Reason    string `json:"reason" validate:"max=500"`
}

// MovementResponse salida de un registro del historial.
type MovementResponse struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	ActingUser    string    `json:"acting_user"`
	Type          string    `json:"type"`
	QuantityDelta int       `json:"quantity_delta"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementHistoryRequest parámetros de GET /api/stock/movements.
type MovementHistoryRequest struct {
	ProductID int64  `query:"product_id" validate:"min=0"`
	User      string `query:"user"`
	Type      string `query:"type"` // sin distinguir mayúsculas
	From      string `query:"from"` // RFC3339 o YYYY-MM-DD
	To        string `query:"to"`   // RFC3339 o YYYY-MM-DD (inclusive todo el día)
	Limit     int    `query:"limit" validate:"min=0"` // se recorta a 200
	Offset    int    `query:"offset" validate:"min=0"`
}

// MovementListResponse página del historial.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockStatisticsResponse estadísticas globales de inventario.
type StockStatisticsResponse struct {
	TotalProducts       int             `json:"total_products"`
	LowStockProducts    int             `json:"low_stock_products"`
	OutOfStockProducts  int             `json:"out_of_stock_products"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
}

// LowStockCheckResponse resultado de verificar el stock mínimo de un producto.
type LowStockCheckResponse struct {
	ProductID int64 `json:"product_id"`
	LowStock  bool  `json:"low_stock"`
}

// StockAlertResponse lista de productos en alerta.
type StockAlertResponse struct {
	Total    int               `json:"total"`
	Products []ProductResponse `json:"products"`
}

// MovementResultResponse producto actualizado y el movimiento registrado.
type MovementResultResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
}
