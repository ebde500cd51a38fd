package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// MovementFilter criterios para consultar el historial. Los campos vacíos/nil no filtran.
type MovementFilter struct {
	ProductID  *int64
	ActingUser string
	Type       entity.MovementType
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// StockMovementRepository define el puerto de persistencia del historial de movimientos.
// Solo se agregan registros; se eliminan únicamente junto con su producto.
type StockMovementRepository interface {
	// Create persiste el movimiento y asigna su ID.
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve la página pedida (más recientes primero) y el total que cumple el filtro.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int, error)
	CountByProduct(ctx context.Context, productID int64) (int, error)
	// DeleteByProduct elimina todos los movimientos del producto y devuelve cuántos eran.
	DeleteByProduct(ctx context.Context, productID int64) (int64, error)
}
