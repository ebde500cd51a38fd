package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "999,90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "25.000,00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
}

func TestRenderStockReport_GeneraPDF(t *testing.T) {
	report := analytics.StockReport{
		GeneratedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Statistics: dto.StockStatisticsResponse{
			TotalProducts: 3, LowStockProducts: 2, OutOfStockProducts: 1,
			TotalInventoryValue: decimal.NewFromInt(1500),
		},
		LowStock: []*entity.Product{
			{ID: 1, Name: "Laptop", Category: "Electrónica", Price: decimal.NewFromInt(1000), Quantity: 1, MinimumStock: 2},
			{ID: 2, Name: "Mouse", Price: decimal.NewFromInt(20), Quantity: 0, MinimumStock: 5},
		},
	}
	out, err := NewStockReportGenerator("inventario-stock").RenderStockReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderStockReport_SinProductos(t *testing.T) {
	out, err := NewStockReportGenerator("inventario-stock").RenderStockReport(context.Background(), analytics.StockReport{
		GeneratedAt: time.Now(),
		Statistics:  dto.StockStatisticsResponse{TotalInventoryValue: decimal.Zero},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderStockReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStockReportGenerator("x").RenderStockReport(ctx, analytics.StockReport{})
	assert.ErrorIs(t, err, context.Canceled)
}
