package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/usecase"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// NotaPDFGenerator renderiza la representación impresa de una nota de venta.
type NotaPDFGenerator interface {
	GenerateNotaPDF(ctx context.Context, nota *entity.NotaVenta, cliente *entity.Cliente) ([]byte, error)
}

// NotaXMLBuilder genera el comprobante XML de una nota de venta.
type NotaXMLBuilder interface {
	Build(nota *entity.NotaVenta, cliente *entity.Cliente) ([]byte, error)
}

// NotaVentaHandler maneja las peticiones HTTP de notas de venta: ciclo de
// vida, pagos y renderizado (PDF/XML).
type NotaVentaHandler struct {
	uc    *usecase.NotaVentaUseCase
	pagos *usecase.PagoUseCase
	pdf   NotaPDFGenerator
	xml   NotaXMLBuilder
}

// NewNotaVentaHandler construye el handler.
func NewNotaVentaHandler(uc *usecase.NotaVentaUseCase, pagos *usecase.PagoUseCase, pdf NotaPDFGenerator, xml NotaXMLBuilder) *NotaVentaHandler {
	return &NotaVentaHandler{uc: uc, pagos: pagos, pdf: pdf, xml: xml}
}

// Create godoc
// @Summary      Crear nota de venta directa
// @Tags         notas-venta
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NotaRequest  true  "cliente y renglones"
// @Success      201   {object}  dto.NotaVentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notas-venta [post]
func (h *NotaVentaHandler) Create(c *fiber.Ctx) error {
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

// List GET /api/notas-venta?limit=20&offset=0
func (h *NotaVentaHandler) List(c *fiber.Ctx) error {
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

// Get GET /api/notas-venta/:id
func (h *NotaVentaHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/notas-venta/:id
func (h *NotaVentaHandler) Update(c *fiber.Ctx) error {
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

// Cancelar POST /api/notas-venta/:id/cancelar
func (h *NotaVentaHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.Cancelar(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ApplyPago godoc
// @Summary      Aplicar un pago a la nota
// @Tags         notas-venta
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la nota"
// @Param        body  body  dto.PagoRequest  true  "monto, método y fecha"
// @Success      200   {object}  dto.NotaVentaResponse
// @Failure      422   {object}  dto.ErrorResponse  "monto inválido o sobrepago"
// @Router       /api/notas-venta/{id}/pagos [post]
func (h *NotaVentaHandler) ApplyPago(c *fiber.Ctx) error {
	var in dto.PagoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.pagos.ApplyPagoVenta(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ReversePago DELETE /api/notas-venta/pagos/:pagoId
func (h *NotaVentaHandler) ReversePago(c *fiber.Ctx) error {
	out, err := h.pagos.ReversePagoVenta(c.Context(), c.Params("pagoId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PDF GET /api/notas-venta/:id/pdf
func (h *NotaVentaHandler) PDF(c *fiber.Ctx) error {
	nota, cliente, err := h.uc.GetEntityConCliente(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	doc, err := h.pdf.GenerateNotaPDF(c.Context(), nota, cliente)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+nota.Folio+`.pdf"`)
	return c.Send(doc)
}

// XML GET /api/notas-venta/:id/xml
func (h *NotaVentaHandler) XML(c *fiber.Ctx) error {
	nota, cliente, err := h.uc.GetEntityConCliente(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	doc, err := h.xml.Build(nota, cliente)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nota.Folio+`.xml"`)
	return c.Send(doc)
}
