package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
)

// StockHandler movimientos de stock, historial, alertas y reportes.
type StockHandler struct {
	svc     *inventory.InventoryService
	history *inventory.MovementHistoryUseCase
	report  *analytics.StockReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(svc *inventory.InventoryService, history *inventory.MovementHistoryUseCase, report *analytics.StockReportUseCase) *StockHandler {
	return &StockHandler{svc: svc, history: history, report: report}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  ENTRY/EXIT suman o restan quantity; ADJUSTMENT fija quantity como nuevo total.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	res, err := h.svc.RegisterMovement(c.UserContext(), in, GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResultResponse{
		Product:  dto.NewProductResponse(res.Product),
		Movement: dto.NewMovementResponse(res.Movement),
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  int     false  "ID del producto"
// @Param        user        query  string  false  "Usuario que hizo el movimiento"
// @Param        type        query  string  false  "ENTRY, EXIT, ADJUSTMENT, CREATION o UPDATE_NO_QUANTITY_CHANGE"
// @Param        from        query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementHistoryRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.history.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos cuya cantidad es menor o igual a su stock mínimo.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockAlertResponse
// @Router       /api/stock/alerts/low-stock [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.report.ListLowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockAlertResponse{Total: len(list), Products: dto.NewProductResponses(list)})
}

// OutOfStock godoc
// @Summary      Productos sin stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockAlertResponse
// @Router       /api/stock/alerts/out-of-stock [get]
func (h *StockHandler) OutOfStock(c *fiber.Ctx) error {
	list, err := h.report.ListOutOfStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockAlertResponse{Total: len(list), Products: dto.NewProductResponses(list)})
}

// CheckLowStock godoc
// @Summary      Verificar stock bajo de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.LowStockCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/low-stock [get]
func (h *StockHandler) CheckLowStock(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	low, err := h.report.IsLowStock(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LowStockCheckResponse{ProductID: id, LowStock: low})
}

// Statistics godoc
// @Summary      Estadísticas de inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockStatisticsResponse
// @Router       /api/stock/statistics [get]
func (h *StockHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.report.ComputeStatistics(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// ReportPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) ReportPDF(c *fiber.Ctx) error {
	pdf, err := h.report.ReportPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-inventario.pdf"`)
	return c.Send(pdf)
}
