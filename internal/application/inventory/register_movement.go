package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// RegisterMovement adapta el request HTTP a las operaciones del servicio:
// ENTRY/EXIT suman o restan Quantity (ChangeStockBy); ADJUSTMENT fija Quantity como nuevo total (AdjustQuantity).
func (s *InventoryService) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest, actingUser string) (*MovementResult, error) {
	if in.ProductID <= 0 {
		return nil, fmt.Errorf("%w: product_id es requerido", domain.ErrInvalidInput)
	}
	switch movType := entity.MovementType(in.Type); movType {
	case entity.MovementTypeEntry, entity.MovementTypeExit:
		return s.ChangeStockBy(ctx, in.ProductID, in.Quantity, movType, in.Reason, actingUser)
	case entity.MovementTypeAdjustment:
		return s.AdjustQuantity(ctx, in.ProductID, in.Quantity, movType, in.Reason, actingUser)
	default:
		return nil, fmt.Errorf("%w: tipo %q no válido (ENTRY, EXIT o ADJUSTMENT)", domain.ErrInvalidInput, in.Type)
	}
}
