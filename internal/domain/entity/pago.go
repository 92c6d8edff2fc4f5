package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PagoEfectivo      = "efectivo"
	PagoTarjeta       = "tarjeta"
	PagoTransferencia = "transferencia"
	PagoCheque        = "cheque"
)

// Pago representa un abono aplicado a una nota. Pertenece en exclusiva a su
// nota padre; eliminarlo revierte su efecto sobre TotalPagado y Saldo.
type Pago struct {
	ID         string
	NotaID     string
	Monto      decimal.Decimal
	FechaPago  time.Time
	MetodoPago string
	Memo       string
	CreatedAt  time.Time
}
