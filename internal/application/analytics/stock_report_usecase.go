// Package analytics contiene las consultas de solo lectura sobre el catálogo:
// alertas de stock, estadísticas de inventario y el reporte PDF.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// StockReport datos que se vuelcan al reporte de inventario.
type StockReport struct {
	GeneratedAt time.Time
	Statistics  dto.StockStatisticsResponse
	LowStock    []*entity.Product
}

// StockReportRenderer genera la representación binaria (PDF) del reporte.
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, report StockReport) ([]byte, error)
}

// StockReportUseCase recorre el catálogo y aplica un predicado por producto. No tiene efectos secundarios.
type StockReportUseCase struct {
	productRepo repository.ProductRepository
	renderer    StockReportRenderer
	now         func() time.Time
}

// NewStockReportUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewStockReportUseCase(productRepo repository.ProductRepository, renderer StockReportRenderer) *StockReportUseCase {
	return &StockReportUseCase{productRepo: productRepo, renderer: renderer, now: time.Now}
}

// ListLowStock productos con cantidad <= stock mínimo.
func (uc *StockReportUseCase) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	return uc.filter(ctx, (*entity.Product).IsLowStock)
}

// ListOutOfStock productos con cantidad == 0.
func (uc *StockReportUseCase) ListOutOfStock(ctx context.Context) ([]*entity.Product, error) {
	return uc.filter(ctx, (*entity.Product).IsOutOfStock)
}

// IsLowStock indica si el producto está en stock bajo; ErrNotFound si no existe.
func (uc *StockReportUseCase) IsLowStock(ctx context.Context, id int64) (bool, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return product.IsLowStock(), nil
}

// ComputeStatistics total de productos, en stock bajo, sin stock y valor total (Σ precio × cantidad).
func (uc *StockReportUseCase) ComputeStatistics(ctx context.Context) (*dto.StockStatisticsResponse, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return statistics(products), nil
}

// ReportPDF genera el reporte de inventario: estadísticas y tabla de productos en stock bajo.
func (uc *StockReportUseCase) ReportPDF(ctx context.Context) ([]byte, error) {
	if uc.renderer == nil {
		return nil, errors.New("reporte PDF no configurado")
	}
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	report := StockReport{
		GeneratedAt: uc.now(),
		Statistics:  *statistics(products),
	}
	for _, p := range products {
		if p.IsLowStock() {
			report.LowStock = append(report.LowStock, p)
		}
	}
	return uc.renderer.RenderStockReport(ctx, report)
}

func (uc *StockReportUseCase) filter(ctx context.Context, keep func(*entity.Product) bool) ([]*entity.Product, error) {
	products, err := uc.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func statistics(products []*entity.Product) *dto.StockStatisticsResponse {
	stats := &dto.StockStatisticsResponse{
		TotalProducts:       len(products),
		TotalInventoryValue: decimal.Zero,
	}
	for _, p := range products {
		if p.IsLowStock() {
			stats.LowStockProducts++
		}
		if p.IsOutOfStock() {
			stats.OutOfStockProducts++
		}
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(p.InventoryValue())
	}
	return stats
}
