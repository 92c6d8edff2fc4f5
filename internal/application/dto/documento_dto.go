package dto

import "github.com/shopspring/decimal"

// ItemRequest renglón de entrada para cualquier documento. Tipo vacío se
// interpreta como "normal"; los renglones de presentación solo llevan
// descripción.
type ItemRequest struct {
	Tipo           string          `json:"tipo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Descripcion    string          `json:"descripcion"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Impuesto       *decimal.Decimal `json:"impuesto"` // nil → 16.0
}

// ItemResponse renglón en respuestas, con el importe derivado.
type ItemResponse struct {
	ID             string          `json:"id"`
	Tipo           string          `json:"tipo"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Descripcion    string          `json:"descripcion"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Impuesto       decimal.Decimal `json:"impuesto"`
	Importe        decimal.Decimal `json:"importe"`
}

// CotizacionRequest alta/edición de cotización. Fechas ISO-8601 (YYYY-MM-DD).
type CotizacionRequest struct {
	ClienteID    string        `json:"cliente_id"`
	FechaEmision string        `json:"fecha_emision"`
	Vigencia     string        `json:"vigencia"`
	Items        []ItemRequest `json:"items"`
}

// CotizacionResponse cotización completa.
type CotizacionResponse struct {
	ID           string          `json:"id"`
	Folio        string          `json:"folio"`
	ClienteID    string          `json:"cliente_id"`
	Estado       string          `json:"estado"`
	FechaEmision string          `json:"fecha_emision"`
	Vigencia     string          `json:"vigencia"`
	Items        []ItemResponse  `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Impuestos    decimal.Decimal `json:"impuestos"`
	Total        decimal.Decimal `json:"total"`
	NotaFolio    string          `json:"nota_folio,omitempty"`
}

// OrdenRequest alta/edición de orden de trabajo. Los renglones no llevan precio.
type OrdenRequest struct {
	ClienteID    string        `json:"cliente_id"`
	FechaEmision string        `json:"fecha_emision"`
	Marca        string        `json:"marca"`
	Modelo       string        `json:"modelo"`
	Anio         int           `json:"anio"`
	Placas       string        `json:"placas"`
	Kilometraje  int           `json:"kilometraje"`
	Items        []ItemRequest `json:"items"`
}

// OrdenEstadoRequest cambio manual de estado (Pendiente → En Proceso → Completada).
type OrdenEstadoRequest struct {
	Estado string `json:"estado"`
}

// OrdenResponse orden de trabajo completa.
type OrdenResponse struct {
	ID           string         `json:"id"`
	Folio        string         `json:"folio"`
	ClienteID    string         `json:"cliente_id"`
	Estado       string         `json:"estado"`
	FechaEmision string         `json:"fecha_emision"`
	Marca        string         `json:"marca"`
	Modelo       string         `json:"modelo"`
	Anio         int            `json:"anio"`
	Placas       string         `json:"placas"`
	Kilometraje  int            `json:"kilometraje"`
	Items        []ItemResponse `json:"items"`
	NotaFolio    string         `json:"nota_folio,omitempty"`
}

// NotaRequest alta/edición de nota de venta o de proveedor. ClienteID aplica
// a notas de venta, ProveedorID a notas de proveedor.
type NotaRequest struct {
	ClienteID   string        `json:"cliente_id,omitempty"`
	ProveedorID string        `json:"proveedor_id,omitempty"`
	Fecha       string        `json:"fecha"`
	Items       []ItemRequest `json:"items"`
}

// PagoRequest abono a una nota.
type PagoRequest struct {
	Monto      decimal.Decimal `json:"monto"`
	FechaPago  string          `json:"fecha_pago"`
	MetodoPago string          `json:"metodo_pago"`
	Memo       string          `json:"memo"`
}

// PagoResponse abono registrado.
type PagoResponse struct {
	ID         string          `json:"id"`
	Monto      decimal.Decimal `json:"monto"`
	FechaPago  string          `json:"fecha_pago"`
	MetodoPago string          `json:"metodo_pago"`
	Memo       string          `json:"memo"`
}

// NotaVentaResponse nota de venta con totales, saldo y pagos.
type NotaVentaResponse struct {
	ID              string          `json:"id"`
	Folio           string          `json:"folio"`
	ClienteID       string          `json:"cliente_id"`
	Estado          string          `json:"estado"`
	Fecha           string          `json:"fecha"`
	Items           []ItemResponse  `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Impuestos       decimal.Decimal `json:"impuestos"`
	Total           decimal.Decimal `json:"total"`
	TotalPagado     decimal.Decimal `json:"total_pagado"`
	Saldo           decimal.Decimal `json:"saldo"`
	Pagos           []PagoResponse  `json:"pagos"`
	CotizacionFolio string          `json:"cotizacion_folio,omitempty"`
	OrdenFolio      string          `json:"orden_folio,omitempty"`
}

// NotaProveedorResponse nota de proveedor con totales, saldo y pagos.
type NotaProveedorResponse struct {
	ID          string          `json:"id"`
	Folio       string          `json:"folio"`
	ProveedorID string          `json:"proveedor_id"`
	Estado      string          `json:"estado"`
	Fecha       string          `json:"fecha"`
	Items       []ItemResponse  `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Impuestos   decimal.Decimal `json:"impuestos"`
	Total       decimal.Decimal `json:"total"`
	TotalPagado decimal.Decimal `json:"total_pagado"`
	Saldo       decimal.Decimal `json:"saldo"`
	Pagos       []PagoResponse  `json:"pagos"`
}
