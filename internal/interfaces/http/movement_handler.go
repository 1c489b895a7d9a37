package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// MovementHandler maneja el registro y la consulta de movimientos de inventario (protegido).
type MovementHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.MovementQueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(register *inventory.RegisterMovementUseCase, query *inventory.MovementQueryUseCase) *MovementHandler {
	return &MovementHandler{register: register, query: query}
}

// Register godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica el efecto del tipo sobre el stock (entrada suma en destino, salida resta en origen, ninguno no toca stock) en una sola transacción.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "quantity, movement_type_id, product_id, origin/destination según el efecto"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.register.RegisterMovement(c.Context(), userID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la cantidad debe ser mayor que cero"})
		case errors.Is(err, domain.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no existe"})
		case errors.Is(err, domain.ErrMovementTypeNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de movimiento no existe"})
		case errors.Is(err, domain.ErrInvalidMovementType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el tipo de movimiento tiene un efecto de stock inválido"})
		case errors.Is(err, domain.ErrMissingDestination):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "destination_location_id es requerido para entradas"})
		case errors.Is(err, domain.ErrMissingOrigin):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "origin_location_id es requerido para salidas"})
		case errors.Is(err, domain.ErrOriginNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación de origen no existe"})
		case errors.Is(err, domain.ErrDestinationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación de destino no existe"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un movimiento con referencias resueltas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.query.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id        query  string  false  "Filtrar por producto"
// @Param        movement_type_id  query  string  false  "Filtrar por tipo"
// @Param        from              query  string  false  "Fecha desde (RFC3339)"
// @Param        to                query  string  false  "Fecha hasta (RFC3339)"
// @Param        limit             query  int     false  "Límite"  default(20)
// @Param        offset            query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	in := dto.MovementListRequest{
		ProductID:      c.Query("product_id"),
		MovementTypeID: c.Query("movement_type_id"),
	}
	in.Limit, in.Offset = pageParams(c)
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		in.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		in.To = &t
	}
	out, err := h.query.List(in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
