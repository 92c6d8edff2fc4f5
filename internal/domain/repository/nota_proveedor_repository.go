package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// NotaProveedorRepository define el puerto de persistencia para NotaProveedor,
// sus renglones y sus pagos.
type NotaProveedorRepository interface {
	Create(n *entity.NotaProveedor) error
	GetByID(id string) (*entity.NotaProveedor, error)
	// GetByIDForUpdate lee la nota bloqueando su fila hasta el fin de la
	// transacción; obligatorio antes de recalcular total_pagado/saldo.
	GetByIDForUpdate(id string) (*entity.NotaProveedor, error)
	GetByFolio(folio string) (*entity.NotaProveedor, error)
	List(limit, offset int) ([]*entity.NotaProveedor, error)
	Update(n *entity.NotaProveedor) error
	CambiarEstado(id, desde, hacia string) (bool, error)

	CreatePago(p *entity.Pago) error
	GetPago(pagoID string) (*entity.Pago, error)
	DeletePago(pagoID string) (bool, error)
	ActualizarSaldo(id string, totalPagado, saldo decimal.Decimal, estado string) error
}
