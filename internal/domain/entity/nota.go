package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una nota (de venta o de proveedor).
const (
	NotaBorrador   = "Borrador"
	NotaRegistrada = "Registrado"
	NotaPagada     = "Pagada"
	NotaCancelada  = "Cancelada"
)

// NotaVenta representa una nota de venta con control de pagos parciales.
// Saldo = Total - TotalPagado. CotizacionFolio y OrdenFolio son trazas de
// origen mutuamente excluyentes; ninguna es un puntero vivo.
type NotaVenta struct {
	ID              string
	Folio           string // NV-YYYY-NNNN
	ClienteID       string
	Estado          string
	Fecha           time.Time
	Items           []*Item
	Subtotal        decimal.Decimal
	Impuestos       decimal.Decimal
	Total           decimal.Decimal
	TotalPagado     decimal.Decimal
	Saldo           decimal.Decimal
	Pagos           []*Pago
	CotizacionFolio string
	OrdenFolio      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Terminal indica si la nota ya no admite mutaciones.
func (n *NotaVenta) Terminal() bool { return n.Estado == NotaCancelada }

// NotaProveedor es la contraparte de compra: misma estructura de totales y
// pagos que NotaVenta, referida a un proveedor.
type NotaProveedor struct {
	ID          string
	Folio       string // NP-YYYY-NNNN
	ProveedorID string
	Estado      string
	Fecha       time.Time
	Items       []*Item
	Subtotal    decimal.Decimal
	Impuestos   decimal.Decimal
	Total       decimal.Decimal
	TotalPagado decimal.Decimal
	Saldo       decimal.Decimal
	Pagos       []*Pago
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Terminal indica si la nota ya no admite mutaciones.
func (n *NotaProveedor) Terminal() bool { return n.Estado == NotaCancelada }
