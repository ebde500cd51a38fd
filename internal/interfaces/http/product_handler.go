package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	svc *inventory.InventoryService
}

// NewProductHandler construye el handler.
func NewProductHandler(svc *inventory.InventoryService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func toProductInput(in dto.ProductRequest) inventory.ProductInput {
	return inventory.ProductInput{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Price:        in.Price,
		Quantity:     in.Quantity,
		MinimumStock: in.MinimumStock,
	}
}

// Create godoc
// @Summary      Crear producto
// @Description  Registra el producto y un movimiento CREATION con la cantidad inicial.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	p, err := h.svc.CreateProduct(c.UserContext(), toProductInput(in), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(p))
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	p, err := h.svc.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage(20, 100)
	list, total, err := h.svc.ListProducts(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductListResponse{
		Items: dto.NewProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Reemplaza los datos; el cambio de cantidad queda en el historial (ENTRY, EXIT o UPDATE_NO_QUANTITY_CHANGE).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	var in dto.ProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	p, err := h.svc.UpdateProduct(c.UserContext(), id, toProductInput(in), GetUsername(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Elimina el producto y todo su historial de movimientos.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.DeleteProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	res, err := h.svc.DeleteProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DeleteProductResponse{
		Message:          res.Message,
		ProductID:        res.ProductID,
		DeletedMovements: res.DeletedMovements,
	})
}

// SearchByName godoc
// @Summary      Buscar productos por nombre
// @Tags         products
// @Produce      json
// @Param        q    query  string  true  "Texto a buscar (sin distinguir mayúsculas)"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/search/name [get]
func (h *ProductHandler) SearchByName(c *fiber.Ctx) error {
	list, err := h.svc.SearchByName(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponses(list))
}

// SearchByCategory godoc
// @Summary      Buscar productos por categoría
// @Tags         products
// @Produce      json
// @Param        q    query  string  true  "Texto a buscar (sin distinguir mayúsculas)"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products/search/category [get]
func (h *ProductHandler) SearchByCategory(c *fiber.Ctx) error {
	list, err := h.svc.SearchByCategory(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewProductResponses(list))
}
