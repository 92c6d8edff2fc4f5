package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	CotizacionPendiente = "Pendiente"
	CotizacionAceptada  = "Aceptada"
	CotizacionCancelada = "Cancelada"
)

// Cotizacion representa una cotización (etapa inicial del flujo de venta).
// NotaFolio se llena una sola vez, al convertirla en nota de venta; a partir
// de ese momento el estado es Aceptada y los renglones quedan congelados.
type Cotizacion struct {
	ID           string
	Folio        string // COT-YYYY-NNNN
	ClienteID    string
	Estado       string
	FechaEmision time.Time
	Vigencia     time.Time // debe ser posterior a FechaEmision
	Items        []*Item
	Subtotal     decimal.Decimal
	Impuestos    decimal.Decimal
	Total        decimal.Decimal
	NotaFolio    string // vacío hasta la conversión
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Convertida indica si la cotización ya generó una nota de venta.
func (c *Cotizacion) Convertida() bool { return c.NotaFolio != "" }

// Terminal indica si la cotización ya no admite mutaciones.
func (c *Cotizacion) Terminal() bool {
	return c.Estado == CotizacionCancelada || c.Convertida()
}
