package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/application/usecase"
)

// OrdenHandler maneja las peticiones HTTP de órdenes de trabajo.
type OrdenHandler struct {
	uc         *usecase.OrdenUseCase
	conversion *usecase.ConversionUseCase
}

// NewOrdenHandler construye el handler.
func NewOrdenHandler(uc *usecase.OrdenUseCase, conversion *usecase.ConversionUseCase) *OrdenHandler {
	return &OrdenHandler{uc: uc, conversion: conversion}
}

// Create POST /api/ordenes
func (h *OrdenHandler) Create(c *fiber.Ctx) error {
	var in dto.OrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /api/ordenes?limit=20&offset=0
func (h *OrdenHandler) List(c *fiber.Ctx) error {
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

// Get GET /api/ordenes/:id
func (h *OrdenHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/ordenes/:id
func (h *OrdenHandler) Update(c *fiber.Ctx) error {
	var in dto.OrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado godoc
// @Summary      Avanzar el estado de una orden
// @Tags         ordenes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la orden"
// @Param        body  body  dto.OrdenEstadoRequest  true  "estado destino"
// @Success      200   {object}  dto.OrdenResponse
// @Failure      409   {object}  dto.ErrorResponse  "transición ilegal"
// @Router       /api/ordenes/{id}/estado [put]
func (h *OrdenHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.OrdenEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CambiarEstado(c.Context(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancelar POST /api/ordenes/:id/cancelar
func (h *OrdenHandler) Cancelar(c *fiber.Ctx) error {
	out, err := h.uc.Cancelar(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Convertir godoc
// @Summary      Facturar una orden completada como nota de venta
// @Tags         ordenes
// @Produce      json
// @Param        id  path  string  true  "id de la orden"
// @Success      201  {object}  dto.NotaVentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "ya facturada o no completada"
// @Router       /api/ordenes/{id}/convertir [post]
func (h *OrdenHandler) Convertir(c *fiber.Ctx) error {
	out, err := h.conversion.ConvertOrden(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
