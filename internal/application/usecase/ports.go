package usecase

import (
	"context"

	"github.com/tallerpro/taller-api/internal/domain/repository"
)

// Repos agrupa los repositorios documentales atados a una misma transacción.
type Repos struct {
	Folios         repository.FolioRepository
	Cotizaciones   repository.CotizacionRepository
	Ordenes        repository.OrdenRepository
	NotasVenta     repository.NotaVentaRepository
	NotasProveedor repository.NotaProveedorRepository
}

// TxRunner ejecuta fn dentro de una transacción: o todas las escrituras de fn
// se confirman juntas o ninguna queda visible. Toda mutación documental
// (crear, actualizar, cancelar, convertir, pagar) pasa por aquí.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
