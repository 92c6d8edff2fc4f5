// Package billing contiene los servicios puros de dominio del ciclo documental:
// cálculo de totales por renglón y formato/secuencia de folios.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// Tolerancia de un centavo para comparaciones de saldo. Absorbe el drift de
// redondeo acumulado entre pagos parciales.
var Tolerancia = decimal.New(1, -2) // 0.01

var cien = decimal.NewFromInt(100)

// Importe calcula cantidad × precio unitario redondeado a 2 decimales.
// Los renglones de presentación (nota, seccion, condiciones) importan cero.
func Importe(it *entity.Item) decimal.Decimal {
	if !it.EsNormal() {
		return decimal.Zero
	}
	return it.Cantidad.Mul(it.PrecioUnitario).Round(2)
}

// ComputeTotals calcula subtotal, impuestos y total de un conjunto de
// renglones. Solo los renglones "normal" contribuyen. Todos los montos se
// redondean a 2 decimales en el punto de cálculo. Función pura, no requiere
// transacción.
func ComputeTotals(items []*entity.Item) (subtotal, impuestos, total decimal.Decimal) {
	subtotal = decimal.Zero
	impuestos = decimal.Zero
	for _, it := range items {
		if !it.EsNormal() {
			continue
		}
		importe := Importe(it)
		subtotal = subtotal.Add(importe)
		impuestos = impuestos.Add(importe.Mul(it.Impuesto).Div(cien).Round(2))
	}
	subtotal = subtotal.Round(2)
	impuestos = impuestos.Round(2)
	total = subtotal.Add(impuestos).Round(2)
	return subtotal, impuestos, total
}

// Normaliza fija Importe en cada renglón y devuelve los totales. Es el paso
// previo a persistir cualquier documento con precio.
func Normaliza(items []*entity.Item) (subtotal, impuestos, total decimal.Decimal) {
	for _, it := range items {
		it.Impuesto = it.Impuesto.Round(1)
		it.Importe = Importe(it)
	}
	return ComputeTotals(items)
}

// SaldoCubierto indica si un saldo puede considerarse liquidado (saldo ≤ 0.01).
func SaldoCubierto(saldo decimal.Decimal) bool {
	return saldo.LessThanOrEqual(Tolerancia)
}

// ExcedeSaldo indica si un monto rebasa el saldo más la tolerancia de un centavo.
func ExcedeSaldo(monto, saldo decimal.Decimal) bool {
	return monto.GreaterThan(saldo.Add(Tolerancia))
}
