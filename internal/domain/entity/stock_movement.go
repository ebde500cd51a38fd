package entity

import "time"

// MovementType clasifica un registro del historial de stock.
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementTypeEntry      MovementType = "ENTRY"                     // entrada (aumento)
	MovementTypeExit       MovementType = "EXIT"                      // salida (disminución)
	MovementTypeAdjustment MovementType = "ADJUSTMENT"                // ajuste a un total absoluto
	MovementTypeCreation   MovementType = "CREATION"                  // alta del producto con stock inicial
	MovementTypeNoChange   MovementType = "UPDATE_NO_QUANTITY_CHANGE" // edición sin cambio de cantidad
)

// SystemUser identidad usada cuando no hay un usuario autenticado.
const SystemUser = "system"

// Valid indica si el tipo es uno de los conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeAdjustment, MovementTypeCreation, MovementTypeNoChange:
		return true
	}
	return false
}

// StockMovement es un registro inmutable del historial: quién cambió qué producto, cuánto y por qué.
// QuantityDelta es la magnitud del cambio; la dirección la da Type.
type StockMovement struct {
	ID            int64
	ProductID     int64
	ActingUser    string
	Type          MovementType
	QuantityDelta int
	Reason        string
	CreatedAt     time.Time
}
