package entity

import "github.com/shopspring/decimal"

// Tipos de renglón de un documento. Solo "normal" participa en los totales;
// los demás son renglones de presentación (texto libre).
const (
	ItemNormal      = "normal"
	ItemNota        = "nota"
	ItemSeccion     = "seccion"
	ItemCondiciones = "condiciones"
)

// Item representa un renglón de cualquier documento (cotización, orden o nota).
// Importe = Cantidad × PrecioUnitario, redondeado a 2 decimales.
type Item struct {
	ID             string
	DocumentoID    string
	Tipo           string
	Cantidad       decimal.Decimal
	Descripcion    string
	PrecioUnitario decimal.Decimal
	Impuesto       decimal.Decimal // porcentaje IVA, 1 decimal (ej. 16.0)
	Importe        decimal.Decimal
	Posicion       int
}

// EsNormal indica si el renglón participa en subtotal/impuestos/total.
func (i *Item) EsNormal() bool { return i.Tipo == "" || i.Tipo == ItemNormal }
