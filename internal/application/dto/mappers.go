package dto

import "github.com/jhoicas/inventario-stock/internal/domain/entity"

// NewProductResponse convierte la entidad a su representación HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		Quantity:     p.Quantity,
		MinimumStock: p.MinimumStock,
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// NewProductResponses convierte una lista; nunca devuelve nil.
func NewProductResponses(list []*entity.Product) []ProductResponse {
	items := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, NewProductResponse(p))
	}
	return items
}

// NewMovementResponse convierte un registro del historial.
func NewMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ActingUser:    m.ActingUser,
		Type:          string(m.Type),
		QuantityDelta: m.QuantityDelta,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}

// NewUserResponse convierte un usuario (sin hash de password).
func NewUserResponse(u *entity.User) UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     roles,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
