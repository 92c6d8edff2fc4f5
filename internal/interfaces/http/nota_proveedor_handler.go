package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/usecase"
)

// NotaProveedorHandler maneja las peticiones HTTP de notas de proveedor.
type NotaProveedorHandler struct {
	uc    *usecase.NotaProveedorUseCase
	pagos *usecase.PagoUseCase
}

// NewNotaProveedorHandler construye el handler.
func NewNotaProveedorHandler(uc *usecase.NotaProveedorUseCase, pagos *usecase.PagoUseCase) *NotaProveedorHandler {
	return &NotaProveedorHandler{uc: uc, pagos: pagos}
}

// Create POST /api/notas-proveedor
func (h *NotaProveedorHandler) Create(c *fiber.Ctx) error {
	var in dto.NotaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/notas-proveedor?limit=20&offset=0
func (h *NotaProveedorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get GET /api/notas-proveedor/:id
func (h *NotaProveedorHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/notas-proveedor/:id
func (h *NotaProveedorHandler) Update(c *fiber.Ctx) error {
	var in dto.NotaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancelar POST /api/notas-proveedor/:id/cancelar
func (h *NotaProveedorHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.Cancelar(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ApplyPago POST /api/notas-proveedor/:id/pagos
func (h *NotaProveedorHandler) ApplyPago(c *fiber.Ctx) error {
	var in dto.PagoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.pagos.ApplyPagoProveedor(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ReversePago DELETE /api/notas-proveedor/pagos/:pagoId
func (h *NotaProveedorHandler) ReversePago(c *fiber.Ctx) error {
	out, err := h.pagos.ReversePagoProveedor(c.Context(), c.Params("pagoId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
