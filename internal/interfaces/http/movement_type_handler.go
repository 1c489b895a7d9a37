package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
)

// MovementTypeHandler maneja las peticiones HTTP para MovementType (protegido).
type MovementTypeHandler struct {
	uc *usecase.MovementTypeUseCase
}

// NewMovementTypeHandler construye el handler.
func NewMovementTypeHandler(uc *usecase.MovementTypeUseCase) *MovementTypeHandler {
	return &MovementTypeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tipo de movimiento
// @Tags         movement-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementTypeRequest  true  "code, name, stock_effect (entrada|salida|ninguno)"
// @Success      201   {object}  dto.MovementTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movement-types [post]
func (h *MovementTypeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidMovementType {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stock_effect debe ser entrada, salida o ninguno"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "code o name ya existen"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener tipo de movimiento por ID
// @Tags         movement-types
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del tipo"
// @Success      200  {object}  dto.MovementTypeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movement-types/{id} [get]
func (h *MovementTypeHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de movimiento no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tipos de movimiento
// @Tags         movement-types
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.MovementTypeResponse
// @Router       /api/movement-types [get]
func (h *MovementTypeHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tipo de movimiento
// @Tags         movement-types
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del tipo"
// @Param        body  body  dto.UpdateMovementTypeRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.MovementTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movement-types/{id} [put]
func (h *MovementTypeHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateMovementTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		if err == domain.ErrInvalidMovementType {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "stock_effect debe ser entrada, salida o ninguno"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "code o name ya existen"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de movimiento no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tipo de movimiento
// @Tags         movement-types
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del tipo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movement-types/{id} [delete]
func (h *MovementTypeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tipo de movimiento no encontrado"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el tipo tiene movimientos asociados"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
