package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// NotaVentaRepository define el puerto de persistencia para NotaVenta,
// sus renglones y sus pagos.
type NotaVentaRepository interface {
	Create(n *entity.NotaVenta) error
	GetByID(id string) (*entity.NotaVenta, error)
	// GetByIDForUpdate lee la nota bloqueando su fila hasta el fin de la
	// transacción; obligatorio antes de recalcular total_pagado/saldo.
	GetByIDForUpdate(id string) (*entity.NotaVenta, error)
	GetByFolio(folio string) (*entity.NotaVenta, error)
	List(limit, offset int) ([]*entity.NotaVenta, error)
	Update(n *entity.NotaVenta) error
	CambiarEstado(id, desde, hacia string) (bool, error)

	CreatePago(p *entity.Pago) error
	GetPago(pagoID string) (*entity.Pago, error)
	// DeletePago devuelve false si el pago ya no existe (reversado por otro llamador).
	DeletePago(pagoID string) (bool, error)
	// ActualizarSaldo persiste total_pagado, saldo y estado en una sola escritura.
	ActualizarSaldo(id string, totalPagado, saldo decimal.Decimal, estado string) error
}
