package analytics_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/infrastructure/memory"
)

type captureRenderer struct {
	got analytics.StockReport
}

func (c *captureRenderer) RenderStockReport(_ context.Context, r analytics.StockReport) ([]byte, error) {
	c.got = r
	return []byte("%PDF-fake"), nil
}

func seed(t *testing.T, store *memory.Store, items ...inventory.ProductInput) []int64 {
	t.Helper()
	svc := inventory.NewInventoryService(store.TxRunner(), store.Products())
	ids := make([]int64, 0, len(items))
	for _, in := range items {
		p, err := svc.CreateProduct(context.Background(), in, "ana")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

func product(name string, price int64, qty, min int) inventory.ProductInput {
	return inventory.ProductInput{Name: name, Price: decimal.NewFromInt(price), Quantity: qty, MinimumStock: min}
}

func TestComputeStatistics(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, product("A", 10, 5, 0), product("B", 20, 0, 0))
	uc := analytics.NewStockReportUseCase(store.Products(), nil)

	stats, err := uc.ComputeStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.OutOfStockProducts)
	assert.Equal(t, 1, stats.LowStockProducts)
	assert.True(t, decimal.NewFromInt(50).Equal(stats.TotalInventoryValue))
}

func TestComputeStatistics_CatalogoVacio(t *testing.T) {
	uc := analytics.NewStockReportUseCase(memory.NewStore().Products(), nil)
	stats, err := uc.ComputeStatistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalProducts)
	assert.True(t, stats.TotalInventoryValue.IsZero())
}

func TestAlertas(t *testing.T) {
	store := memory.NewStore()
	ids := seed(t, store,
		product("Bajo", 1, 3, 5),
		product("Limite", 1, 5, 5),
		product("Normal", 1, 10, 5),
		product("Agotado", 1, 0, 0),
	)
	uc := analytics.NewStockReportUseCase(store.Products(), nil)
	ctx := context.Background()

	low, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, low, 3, "cantidad <= mínimo, incluido el límite y el agotado con mínimo 0")

	out, err := uc.ListOutOfStock(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Agotado", out[0].Name)

	isLow, err := uc.IsLowStock(ctx, ids[1])
	require.NoError(t, err)
	assert.True(t, isLow)
	isLow, err = uc.IsLowStock(ctx, ids[2])
	require.NoError(t, err)
	assert.False(t, isLow)

	_, err = uc.IsLowStock(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListLowStock_ExcluyeProductoEliminado(t *testing.T) {
	store := memory.NewStore()
	ids := seed(t, store, product("Bajo", 1, 1, 5))
	svc := inventory.NewInventoryService(store.TxRunner(), store.Products())
	_, err := svc.DeleteProduct(context.Background(), ids[0])
	require.NoError(t, err)

	low, err := analytics.NewStockReportUseCase(store.Products(), nil).ListLowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestReportPDF(t *testing.T) {
	store := memory.NewStore()
	seed(t, store, product("Bajo", 2, 1, 5), product("Normal", 3, 10, 1))

	_, err := analytics.NewStockReportUseCase(store.Products(), nil).ReportPDF(context.Background())
	assert.Error(t, err, "sin renderer no hay PDF")

	r := &captureRenderer{}
	pdf, err := analytics.NewStockReportUseCase(store.Products(), r).ReportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Equal(t, 2, r.got.Statistics.TotalProducts)
	require.Len(t, r.got.LowStock, 1)
	assert.Equal(t, "Bajo", r.got.LowStock[0].Name)
	assert.False(t, r.got.GeneratedAt.IsZero())
}
