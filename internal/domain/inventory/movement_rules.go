package inventory

import (
	"fmt"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ClassifyQuantityChange deriva el tipo de movimiento y su magnitud a partir del cambio de cantidad
// de una edición de producto: delta > 0 → ENTRY, delta < 0 → EXIT, delta == 0 → UPDATE_NO_QUANTITY_CHANGE.
func ClassifyQuantityChange(oldQty, newQty int) (entity.MovementType, int) {
	delta := newQty - oldQty
	switch {
	case delta > 0:
		return entity.MovementTypeEntry, delta
	case delta < 0:
		return entity.MovementTypeExit, -delta
	default:
		return entity.MovementTypeNoChange, 0
	}
}

// ApplyDirection calcula la cantidad resultante de sumar (ENTRY) o restar (EXIT) delta unidades.
// delta debe ser positivo. Una salida que deje el stock negativo devuelve ErrInsufficientStock;
// una entrada que supere entity.MaxQuantity devuelve ErrInvalidInput.
func ApplyDirection(current, delta int, direction entity.MovementType) (int, error) {
	if delta <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	switch direction {
	case entity.MovementTypeEntry:
		if delta > entity.MaxQuantity-current {
			return 0, fmt.Errorf("%w: stock actual %d más %d supera el máximo %d", domain.ErrInvalidInput, current, delta, entity.MaxQuantity)
		}
		return current + delta, nil
	case entity.MovementTypeExit:
		if current < delta {
			return 0, fmt.Errorf("%w: stock actual %d, solicitado %d", domain.ErrInsufficientStock, current, delta)
		}
		return current - delta, nil
	default:
		return 0, fmt.Errorf("%w: dirección %q no válida (ENTRY o EXIT)", domain.ErrInvalidInput, direction)
	}
}

// AbsoluteDelta magnitud del cambio entre dos cantidades.
func AbsoluteDelta(oldQty, newQty int) int {
	if newQty >= oldQty {
		return newQty - oldQty
	}
	return oldQty - newQty
}
