package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/usecase"
)

// CotizacionHandler maneja las peticiones HTTP de cotizaciones, incluida su
// conversión a nota de venta.
type CotizacionHandler struct {
	uc         *usecase.CotizacionUseCase
	conversion *usecase.ConversionUseCase
}

// NewCotizacionHandler construye el handler.
func NewCotizacionHandler(uc *usecase.CotizacionUseCase, conversion *usecase.ConversionUseCase) *CotizacionHandler {
	return &CotizacionHandler{uc: uc, conversion: conversion}
}

// Create godoc
// @Summary      Crear cotización
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CotizacionRequest  true  "cliente, vigencia y renglones"
// @Success      201   {object}  dto.CotizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cotizaciones [post]
func (h *CotizacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/cotizaciones?limit=20&offset=0
func (h *CotizacionHandler) List(c *fiber.Ctx) error {
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

// Get GET /api/cotizaciones/:id
func (h *CotizacionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/cotizaciones/:id
func (h *CotizacionHandler) Update(c *fiber.Ctx) error {
	var in dto.CotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancelar POST /api/cotizaciones/:id/cancelar
func (h *CotizacionHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.Cancelar(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Convertir godoc
// @Summary      Convertir cotización en nota de venta
// @Tags         cotizaciones
// @Produce      json
// @Param        id  path  string  true  "id de la cotización"
// @Success      201  {object}  dto.NotaVentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya convertida o estado ilegal"
// @Router       /api/cotizaciones/{id}/convertir [post]
func (h *CotizacionHandler) Convertir(c *fiber.Ctx) error {
	out, err := h.conversion.ConvertCotizacion(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
