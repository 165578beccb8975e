package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/confeitaria-api/internal/application/dto"
	"github.com/jhoicas/confeitaria-api/internal/application/stock"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/pkg/logger"
)

// StockHandler maneja las peticiones HTTP del estoque de ingredientes (protegido).
type StockHandler struct {
	uc     *stock.UseCase
	report *stock.ReportUseCase
	log    *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, report *stock.ReportUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{uc: uc, report: report, log: log}
}

// Create godoc
// @Summary      Registrar ingrediente
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIngredientRequest  true  "Datos del ingrediente"
// @Success      201   {object}  dto.IngredientCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetIdentity(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IngredientCreatedResponse{Msg: dto.MsgIngredientCreated, Ingredient: *out})
}

// List godoc
// @Summary      Listar ingredientes
// @Description  Orden de creación. limit=0 devuelve todos (máximo 500).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit     query  int     false  "Límite"  default(0)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Param        category  query  string  false  "Categoría exacta"
// @Param        q         query  string  false  "Búsqueda por nombre (sin acentos ni mayúsculas)"
// @Param        lowStock  query  bool    false  "Solo estoque bajo"
// @Success      200  {object}  dto.IngredientListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var q dto.IngredientListQuery
	if err := c.QueryParser(&q); err != nil {
		return writeError(c, h.log, domain.NewValidationError(domain.FieldError{Field: "query", Reason: "parámetros inválidos"}))
	}
	out, err := h.uc.List(c.UserContext(), GetIdentity(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Ingredientes en nivel mínimo o por debajo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IngredientListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/low-stock [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ingrediente por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.IngredientDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/ingredient/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetIdentity(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.IngredientDetailResponse{Product: *out})
}

// Update godoc
// @Summary      Actualizar ingrediente (parcial)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.UpdateIngredientRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.IngredientUpdatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/ingredient/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetIdentity(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.IngredientUpdatedResponse{Ingredient: *out})
}

// Delete godoc
// @Summary      Eliminar ingrediente
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/ingredient/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetIdentity(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Msg: dto.MsgIngredientDeleted})
}

// RestockReport godoc
// @Summary      Reporte PDF de reposición
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/report.pdf [get]
func (h *StockHandler) RestockReport(c *fiber.Ctx) error {
	pdf, err := h.report.RestockPDF(c.UserContext(), GetIdentity(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="reposicao-estoque.pdf"`)
	return c.Send(pdf)
}
