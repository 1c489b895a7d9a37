package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP del ledger de stock (protegido).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Crear registro de stock inicial
// @Description  Alta directa de un par producto+ubicación. Los ajustes posteriores van por movimientos.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRequest  true  "product_id, location_id, quantity"
// @Success      201   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.LocationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity no puede ser negativa"})
		}
		if err == domain.ErrProductNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no existe"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no existe"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe stock para ese producto en esa ubicación"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("product_id"), c.Query("location_id"), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Stock de un producto en una ubicación
// @Description  Si no hay registro devuelve cantidad cero, no 404.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id   path  string  true  "ID del producto"
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/{product_id}/{location_id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("product_id"), c.Params("location_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
