package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
)

func newService(t *testing.T) (*inventory.InventoryService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return inventory.NewInventoryService(store.TxRunner(), store.Products()), store
}

func input(name string, qty int) inventory.ProductInput {
	return inventory.ProductInput{
		Name:         name,
		Description:  "desc",
		Category:     "General",
		Price:        decimal.NewFromInt(10),
		Quantity:     qty,
		MinimumStock: 2,
	}
}

func history(t *testing.T, store *memory.Store, productID int64) []*entity.StockMovement {
	t.Helper()
	list, _, err := store.Movements().List(context.Background(), repository.MovementFilter{ProductID: &productID})
	require.NoError(t, err)
	return list
}

func TestCreateProduct_RegistraCreacion(t *testing.T) {
	svc, store := newService(t)
	p, err := svc.CreateProduct(context.Background(), input("  Laptop  ", 7), "ana")
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Laptop", p.Name)

	movs := history(t, store, p.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeCreation, movs[0].Type)
	assert.Equal(t, 7, movs[0].QuantityDelta)
	assert.Equal(t, "ana", movs[0].ActingUser)
	assert.Equal(t, "Producto creado con stock inicial", movs[0].Reason)
}

func TestCreateProduct_UsuarioVacioEsSystem(t *testing.T) {
	svc, store := newService(t)
	p, err := svc.CreateProduct(context.Background(), input("Laptop", 1), "  ")
	require.NoError(t, err)
	assert.Equal(t, entity.SystemUser, history(t, store, p.ID)[0].ActingUser)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	svc, store := newService(t)
	bad := []inventory.ProductInput{
		input("", 1),
		func() inventory.ProductInput { in := input("A", 1); in.Price = decimal.Zero; return in }(),
		input("B", -1),
		func() inventory.ProductInput { in := input("C", 1); in.MinimumStock = -1; return in }(),
		input("D", entity.MaxQuantity+1),
		func() inventory.ProductInput { in := input("E", 1); in.MinimumStock = math.MaxInt; return in }(),
		func() inventory.ProductInput { in := input("F", 1); in.Price = decimal.RequireFromString("0.001"); return in }(),
		func() inventory.ProductInput { in := input("G", 1); in.Price = decimal.RequireFromString("10.005"); return in }(),
		func() inventory.ProductInput { in := input("H", 1); in.Price = decimal.RequireFromString("1000000000000"); return in }(),
	}
	for _, in := range bad {
		_, err := svc.CreateProduct(context.Background(), in, "ana")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	n, err := store.Products().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateProduct_PrecioConDosDecimales(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for i, price := range []string{"0.01", "10.50", "10.500", "999999999999.99"} {
		in := input(fmt.Sprintf("P%d", i), 1)
		in.Price = decimal.RequireFromString(price)
		_, err := svc.CreateProduct(ctx, in, "ana")
		assert.NoError(t, err, price)
	}
}

func TestChangeStockBy_EntradaQueDesbordaNoSeAplica(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 1), "ana")
	require.NoError(t, err)

	_, err = svc.ChangeStockBy(ctx, p.ID, math.MaxInt, entity.MovementTypeEntry, "", "ana")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
	assert.Len(t, history(t, store, p.ID), 1)

	_, err = svc.AdjustQuantity(ctx, p.ID, entity.MaxQuantity+1, entity.MovementTypeAdjustment, "", "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	res, err := svc.AdjustQuantity(ctx, p.ID, entity.MaxQuantity, entity.MovementTypeAdjustment, "", "ana")
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, res.Product.Quantity)
}

func TestCreateProduct_NombreDuplicado(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	_, err := svc.CreateProduct(ctx, input("Widget", 1), "ana")
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, input("Widget", 3), "ana")
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	found, err := svc.SearchByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	_, total, err := store.Movements().List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestUpdateProduct_ClasificaCambios(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 10), "ana")
	require.NoError(t, err)

	steps := []struct {
		qty       int
		wantType  entity.MovementType
		wantDelta int
		reason    string
	}{
		{15, entity.MovementTypeEntry, 5, "Producto actualizado - Cantidad cambiada de 10 a 15"},
		{9, entity.MovementTypeExit, 6, "Producto actualizado - Cantidad cambiada de 15 a 9"},
		{9, entity.MovementTypeNoChange, 0, "Producto actualizado - Cantidad sin cambios (9)"},
	}
	for _, s := range steps {
		updated, err := svc.UpdateProduct(ctx, p.ID, input("Laptop", s.qty), "luis")
		require.NoError(t, err)
		assert.Equal(t, s.qty, updated.Quantity)

		last := history(t, store, p.ID)[0]
		assert.Equal(t, s.wantType, last.Type)
		assert.Equal(t, s.wantDelta, last.QuantityDelta)
		assert.Equal(t, s.reason, last.Reason)
		assert.Equal(t, "luis", last.ActingUser)
	}
	assert.Len(t, history(t, store, p.ID), 4)
}

func TestUpdateProduct_Errores(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.UpdateProduct(ctx, 999, input("X", 1), "ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreateProduct(ctx, input("Widget", 1), "ana")
	require.NoError(t, err)
	other, err := svc.CreateProduct(ctx, input("Gadget", 1), "ana")
	require.NoError(t, err)

	_, err = svc.UpdateProduct(ctx, other.ID, input("Widget", 1), "ana")
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = svc.UpdateProduct(ctx, other.ID, input("Gadget", -3), "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangeStockBy_SalidaMayorAlStock(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 40), "ana")
	require.NoError(t, err)

	_, err = svc.ChangeStockBy(ctx, p.ID, 100, entity.MovementTypeExit, "", "ana")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Quantity)
	assert.Len(t, history(t, store, p.ID), 1)
}

func TestChangeStockBy_EntradaYSalida(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 40), "ana")
	require.NoError(t, err)

	res, err := svc.ChangeStockBy(ctx, p.ID, 10, entity.MovementTypeEntry, "Compra proveedor", "ana")
	require.NoError(t, err)
	assert.Equal(t, 50, res.Product.Quantity)
	assert.Equal(t, 10, res.Movement.QuantityDelta)
	assert.Equal(t, "Compra proveedor", res.Movement.Reason)

	res, err = svc.ChangeStockBy(ctx, p.ID, 50, entity.MovementTypeExit, "", "ana")
	require.NoError(t, err)
	assert.Zero(t, res.Product.Quantity)
	assert.Equal(t, "Salida de 50 unidades", res.Movement.Reason)

	_, err = svc.ChangeStockBy(ctx, p.ID, 0, entity.MovementTypeEntry, "", "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.ChangeStockBy(ctx, p.ID, 1, entity.MovementTypeAdjustment, "", "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.ChangeStockBy(ctx, 999, 1, entity.MovementTypeEntry, "", "ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustQuantity_DeltaAbsoluto(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 40), "ana")
	require.NoError(t, err)

	res, err := svc.AdjustQuantity(ctx, p.ID, 25, entity.MovementTypeAdjustment, "Conteo físico", "ana")
	require.NoError(t, err)
	assert.Equal(t, 25, res.Product.Quantity)
	assert.Equal(t, 15, res.Movement.QuantityDelta)
	assert.Equal(t, entity.MovementTypeAdjustment, res.Movement.Type)

	_, err = svc.AdjustQuantity(ctx, p.ID, -1, entity.MovementTypeAdjustment, "", "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.AdjustQuantity(ctx, p.ID, 5, entity.MovementTypeCreation, "", "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteProduct_EliminaHistorial(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 1), "ana")
	require.NoError(t, err)
	_, err = svc.ChangeStockBy(ctx, p.ID, 1, entity.MovementTypeEntry, "", "ana")
	require.NoError(t, err)
	_, err = svc.ChangeStockBy(ctx, p.ID, 1, entity.MovementTypeExit, "", "ana")
	require.NoError(t, err)
	require.Len(t, history(t, store, p.ID), 3)

	res, err := svc.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.DeletedMovements)
	assert.Equal(t, inventory.DeletedMessage, res.Message)

	_, err = svc.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, history(t, store, p.ID))

	_, err = svc.DeleteProduct(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// failingTx inyecta un error al escribir el historial para comprobar el rollback del producto.
type failingTx struct{ inner inventory.TxRunner }

type failingMovements struct{ repository.StockMovementRepository }

var errLedger = errors.New("historial no disponible")

func (failingMovements) Create(context.Context, *entity.StockMovement) error { return errLedger }

func (f failingTx) Run(ctx context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return f.inner.Run(ctx, func(pr repository.ProductRepository, mr repository.StockMovementRepository) error {
		return fn(pr, failingMovements{mr})
	})
}

func TestAtomicidad_FallaDelHistorialRevierteProducto(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	ok := inventory.NewInventoryService(store.TxRunner(), store.Products())
	p, err := ok.CreateProduct(ctx, input("Laptop", 10), "ana")
	require.NoError(t, err)

	broken := inventory.NewInventoryService(failingTx{inner: store.TxRunner()}, store.Products())
	_, err = broken.ChangeStockBy(ctx, p.ID, 5, entity.MovementTypeEntry, "", "ana")
	require.ErrorIs(t, err, errLedger)
	_, err = broken.CreateProduct(ctx, input("Mouse", 1), "ana")
	require.ErrorIs(t, err, errLedger)

	got, err := ok.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	found, err := ok.SearchByName(ctx, "Mouse")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestChangeStockBy_ConcurrenteNoPierdeActualizaciones(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 0), "ana")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ChangeStockBy(ctx, p.ID, 2, entity.MovementTypeEntry, "", "ana")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)
	assert.Len(t, history(t, store, p.ID), 51)
}

func TestRegisterMovement_Despacho(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 10), "ana")
	require.NoError(t, err)

	res, err := svc.RegisterMovement(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Quantity: 4, Type: "EXIT"}, "ana")
	require.NoError(t, err)
	assert.Equal(t, 6, res.Product.Quantity)

	res, err = svc.RegisterMovement(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Quantity: 20, Type: "ADJUSTMENT"}, "ana")
	require.NoError(t, err)
	assert.Equal(t, 20, res.Product.Quantity)
	assert.Equal(t, 14, res.Movement.QuantityDelta)

	_, err = svc.RegisterMovement(ctx, dto.RegisterMovementRequest{ProductID: p.ID, Quantity: 1, Type: "CREATION"}, "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.RegisterMovement(ctx, dto.RegisterMovementRequest{Quantity: 1, Type: "ENTRY"}, "ana")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementHistory_Filtros(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, input("Laptop", 10), "ana")
	require.NoError(t, err)
	_, err = svc.ChangeStockBy(ctx, p.ID, 3, entity.MovementTypeEntry, "", "luis")
	require.NoError(t, err)

	uc := inventory.NewMovementHistoryUseCase(store.Movements())
	resp, err := uc.List(ctx, dto.MovementHistoryRequest{ProductID: p.ID, User: "luis"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page.Total)
	assert.Equal(t, 50, resp.Page.Limit)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "ENTRY", resp.Items[0].Type)

	resp, err = uc.List(ctx, dto.MovementHistoryRequest{Type: "creation", Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Page.Limit)
	assert.Equal(t, 1, resp.Page.Total)

	_, err = uc.List(ctx, dto.MovementHistoryRequest{Type: "ROBO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(ctx, dto.MovementHistoryRequest{From: "2024-03-02", To: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.List(ctx, dto.MovementHistoryRequest{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
