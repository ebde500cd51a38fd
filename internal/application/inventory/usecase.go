package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-stock/internal/domain/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// DeletedMessage confirmación devuelta por DeleteProduct.
const DeletedMessage = "Producto y movimientos eliminados exitosamente"

// ProductInput datos de un producto para alta o edición.
type ProductInput struct {
	Name         string
	Description  string
	Category     string
	Price        decimal.Decimal
	Quantity     int
	MinimumStock int
}

func (in ProductInput) normalized() ProductInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

func (in ProductInput) validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: el precio debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if !in.Price.Equal(in.Price.Truncate(entity.PriceDecimals)) {
		return fmt.Errorf("%w: el precio admite como máximo %d decimales", domain.ErrInvalidInput, entity.PriceDecimals)
	}
	if in.Price.GreaterThan(entity.MaxPrice) {
		return fmt.Errorf("%w: el precio no puede superar %s", domain.ErrInvalidInput, entity.MaxPrice)
	}
	if in.Quantity < 0 || in.Quantity > entity.MaxQuantity {
		return fmt.Errorf("%w: la cantidad debe estar entre 0 y %d", domain.ErrInvalidInput, entity.MaxQuantity)
	}
	if in.MinimumStock < 0 || in.MinimumStock > entity.MaxQuantity {
		return fmt.Errorf("%w: el stock mínimo debe estar entre 0 y %d", domain.ErrInvalidInput, entity.MaxQuantity)
	}
	return nil
}

// MovementResult producto actualizado junto con el movimiento registrado en la misma transacción.
type MovementResult struct {
	Product  *entity.Product
	Movement *entity.StockMovement
}

// DeleteResult resultado del borrado de un producto.
type DeleteResult struct {
	ProductID        int64
	DeletedMovements int64
	Message          string
}

// InventoryService es la única vía para modificar la cantidad de un producto.
// Cada escritura del producto y su registro en el historial ocurren en una sola transacción (TxRunner):
// o se confirman ambos o ninguno. La fila del producto se bloquea (GetForUpdate) antes de leer la cantidad.
type InventoryService struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewInventoryService construye el servicio. productRepo se usa solo para lecturas fuera de transacción.
func NewInventoryService(txRunner TxRunner, productRepo repository.ProductRepository) *InventoryService {
	return &InventoryService{
		txRunner:    txRunner,
		productRepo: productRepo,
		now:         time.Now,
	}
}

// CreateProduct valida, persiste el producto y registra un movimiento CREATION con la cantidad inicial.
func (s *InventoryService) CreateProduct(ctx context.Context, in ProductInput, actingUser string) (*entity.Product, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	product := &entity.Product{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Price:        in.Price,
		Quantity:     in.Quantity,
		MinimumStock: in.MinimumStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		existing, err := productRepo.GetByName(ctx, product.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateName, product.Name)
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		_, err = appendMovement(ctx, movRepo, &entity.StockMovement{
			ProductID:     product.ID,
			ActingUser:    actingUser,
			Type:          entity.MovementTypeCreation,
			QuantityDelta: product.Quantity,
			Reason:        "Producto creado con stock inicial",
			CreatedAt:     now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct reemplaza los datos del producto y registra un movimiento clasificado por el cambio
// de cantidad (ENTRY, EXIT o UPDATE_NO_QUANTITY_CHANGE) con la cantidad anterior y la nueva en el motivo.
func (s *InventoryService) UpdateProduct(ctx context.Context, id int64, in ProductInput, actingUser string) (*entity.Product, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := s.now()
	var updated *entity.Product

	err := s.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := lockProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}
		if product.Name != in.Name {
			other, err := productRepo.GetByName(ctx, in.Name)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return fmt.Errorf("%w: %q", domain.ErrDuplicateName, in.Name)
			}
		}

		oldQty := product.Quantity
		movType, delta := domaininv.ClassifyQuantityChange(oldQty, in.Quantity)

		product.Name = in.Name
		product.Description = in.Description
		product.Category = in.Category
		product.Price = in.Price
		product.Quantity = in.Quantity
		product.MinimumStock = in.MinimumStock
		product.UpdatedAt = now
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}

		reason := fmt.Sprintf("Producto actualizado - Cantidad cambiada de %d a %d", oldQty, in.Quantity)
		if movType == entity.MovementTypeNoChange {
			reason = fmt.Sprintf("Producto actualizado - Cantidad sin cambios (%d)", oldQty)
		}
		if _, err := appendMovement(ctx, movRepo, &entity.StockMovement{
			ProductID:     product.ID,
			ActingUser:    actingUser,
			Type:          movType,
			QuantityDelta: delta,
			Reason:        reason,
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AdjustQuantity fija la cantidad en newQuantity y registra un movimiento del tipo indicado
// (ENTRY, EXIT o ADJUSTMENT) con la diferencia absoluta.
func (s *InventoryService) AdjustQuantity(
	ctx context.Context,
	id int64,
	newQuantity int,
	movType entity.MovementType,
	reason, actingUser string,
) (*MovementResult, error) {
	switch movType {
	case entity.MovementTypeEntry, entity.MovementTypeExit, entity.MovementTypeAdjustment:
	default:
		return nil, fmt.Errorf("%w: tipo %q no válido para un ajuste", domain.ErrInvalidInput, movType)
	}
	if newQuantity < 0 || newQuantity > entity.MaxQuantity {
		return nil, fmt.Errorf("%w: la cantidad resultante debe estar entre 0 y %d", domain.ErrInvalidInput, entity.MaxQuantity)
	}

	return s.applyQuantity(ctx, id, actingUser, movType, func(current int) (int, int, string, error) {
		r := strings.TrimSpace(reason)
		if r == "" {
			r = fmt.Sprintf("Ajuste de inventario: cantidad de %d a %d", current, newQuantity)
		}
		return newQuantity, domaininv.AbsoluteDelta(current, newQuantity), r, nil
	})
}

// ChangeStockBy suma (ENTRY) o resta (EXIT) delta unidades. Una salida mayor que el stock actual
// devuelve ErrInsufficientStock sin modificar nada.
func (s *InventoryService) ChangeStockBy(
	ctx context.Context,
	id int64,
	delta int,
	direction entity.MovementType,
	reason, actingUser string,
) (*MovementResult, error) {
	if delta <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if direction != entity.MovementTypeEntry && direction != entity.MovementTypeExit {
		return nil, fmt.Errorf("%w: dirección %q no válida (ENTRY o EXIT)", domain.ErrInvalidInput, direction)
	}

	return s.applyQuantity(ctx, id, actingUser, direction, func(current int) (int, int, string, error) {
		newQty, err := domaininv.ApplyDirection(current, delta, direction)
		if err != nil {
			return 0, 0, "", err
		}
		r := strings.TrimSpace(reason)
		if r == "" {
			if direction == entity.MovementTypeEntry {
				r = fmt.Sprintf("Entrada de %d unidades", delta)
			} else {
				r = fmt.Sprintf("Salida de %d unidades", delta)
			}
		}
		return newQty, delta, r, nil
	})
}

// applyQuantity bloquea el producto, calcula la nueva cantidad con compute y persiste producto y movimiento.
func (s *InventoryService) applyQuantity(
	ctx context.Context,
	id int64,
	actingUser string,
	movType entity.MovementType,
	compute func(current int) (newQty, delta int, reason string, err error),
) (*MovementResult, error) {
	now := s.now()
	var result MovementResult

	err := s.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := lockProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}
		newQty, delta, reason, err := compute(product.Quantity)
		if err != nil {
			return err
		}
		product.Quantity = newQty
		product.UpdatedAt = now
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		mov, err := appendMovement(ctx, movRepo, &entity.StockMovement{
			ProductID:     product.ID,
			ActingUser:    actingUser,
			Type:          movType,
			QuantityDelta: delta,
			Reason:        reason,
			CreatedAt:     now,
		})
		if err != nil {
			return err
		}
		result = MovementResult{Product: product, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteProduct elimina el historial del producto y luego el producto, en una sola transacción.
func (s *InventoryService) DeleteProduct(ctx context.Context, id int64) (*DeleteResult, error) {
	var deleted int64
	err := s.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		if _, err := lockProduct(ctx, productRepo, id); err != nil {
			return err
		}
		n, err := movRepo.DeleteByProduct(ctx, id)
		if err != nil {
			return err
		}
		deleted = n
		return productRepo.Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{ProductID: id, DeletedMovements: deleted, Message: DeletedMessage}, nil
}

// GetProduct obtiene un producto o ErrNotFound.
func (s *InventoryService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return product, nil
}

// ListProducts lista productos con paginación y devuelve el total del catálogo.
func (s *InventoryService) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, int, error) {
	list, err := s.productRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// SearchByName busca productos cuyo nombre contenga text (sin distinguir mayúsculas).
func (s *InventoryService) SearchByName(ctx context.Context, text string) ([]*entity.Product, error) {
	return s.productRepo.SearchByName(ctx, strings.TrimSpace(text))
}

// SearchByCategory busca productos cuya categoría contenga text (sin distinguir mayúsculas).
func (s *InventoryService) SearchByCategory(ctx context.Context, text string) ([]*entity.Product, error) {
	return s.productRepo.SearchByCategory(ctx, strings.TrimSpace(text))
}

func lockProduct(ctx context.Context, productRepo repository.ProductRepository, id int64) (*entity.Product, error) {
	product, err := productRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return product, nil
}

func appendMovement(ctx context.Context, movRepo repository.StockMovementRepository, mov *entity.StockMovement) (*entity.StockMovement, error) {
	mov.ActingUser = ActingUserOrSystem(mov.ActingUser)
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ActingUserOrSystem devuelve "system" cuando no hay usuario.
func ActingUserOrSystem(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		return entity.SystemUser
	}
	return user
}
