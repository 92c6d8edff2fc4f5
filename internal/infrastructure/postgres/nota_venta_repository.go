package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

const tablaPagosVenta = "pagos_venta"

var _ repository.NotaVentaRepository = (*NotaVentaRepo)(nil)

// NotaVentaRepo implementa el repositorio de notas de venta sobre PostgreSQL.
// Los pagos viven en pagos_venta y se cargan junto con el detalle.
type NotaVentaRepo struct {
	q Querier
}

// NewNotaVentaRepository crea una nueva instancia del repositorio.
func NewNotaVentaRepository(q Querier) *NotaVentaRepo {
	return &NotaVentaRepo{q: q}
}

func (r *NotaVentaRepo) Create(n *entity.NotaVenta) error {
	const query = `
		INSERT INTO notas_venta (id, folio, cliente_id, estado, fecha,
			subtotal, impuestos, total, total_pagado, saldo,
			cotizacion_folio, orden_folio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), NULLIF($12, ''), $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.Folio, n.ClienteID, n.Estado, n.Fecha,
		n.Subtotal, n.Impuestos, n.Total, n.TotalPagado, n.Saldo,
		n.CotizacionFolio, n.OrdenFolio, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nota venta: %w", err)
	}
	return insertItems(r.q, n.ID, n.Items)
}

func (r *NotaVentaRepo) GetByID(id string) (*entity.NotaVenta, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila de la nota hasta que la transacción
// termine; solo tiene sentido dentro de un TxRunner.
func (r *NotaVentaRepo) GetByIDForUpdate(id string) (*entity.NotaVenta, error) {
	return r.get(`WHERE id = $1 FOR UPDATE`, id)
}

func (r *NotaVentaRepo) GetByFolio(folio string) (*entity.NotaVenta, error) {
	return r.get(`WHERE folio = $1`, folio)
}

func (r *NotaVentaRepo) get(where, arg string) (*entity.NotaVenta, error) {
	query := `
		SELECT id, folio, cliente_id, estado, fecha,
		       subtotal, impuestos, total, total_pagado, saldo,
		       COALESCE(cotizacion_folio, ''), COALESCE(orden_folio, ''), created_at, updated_at
		FROM notas_venta ` + where
	n, err := scanNotaVenta(r.q.QueryRow(context.Background(), query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if n.Items, err = getItems(r.q, n.ID); err != nil {
		return nil, err
	}
	if n.Pagos, err = getPagos(r.q, tablaPagosVenta, n.ID); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NotaVentaRepo) List(limit, offset int) ([]*entity.NotaVenta, error) {
	query := fmt.Sprintf(`
		SELECT id, folio, cliente_id, estado, fecha,
		       subtotal, impuestos, total, total_pagado, saldo,
		       COALESCE(cotizacion_folio, ''), COALESCE(orden_folio, ''), created_at, updated_at
		FROM notas_venta ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list notas venta: %w", err)
	}
	defer rows.Close()

	var list []*entity.NotaVenta
	for rows.Next() {
		n, err := scanNotaVenta(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *NotaVentaRepo) Update(n *entity.NotaVenta) error {
	const query = `
		UPDATE notas_venta
		SET cliente_id = $2, fecha = $3, estado = $4,
		    subtotal = $5, impuestos = $6, total = $7, total_pagado = $8, saldo = $9,
		    updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		n.ID, n.ClienteID, n.Fecha, n.Estado,
		n.Subtotal, n.Impuestos, n.Total, n.TotalPagado, n.Saldo, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update nota venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return replaceItems(r.q, n.ID, n.Items)
}

func (r *NotaVentaRepo) CambiarEstado(id, desde, hacia string) (bool, error) {
	const query = `
		UPDATE notas_venta SET estado = $3, updated_at = now()
		WHERE id = $1 AND estado = $2`
	tag, err := r.q.Exec(context.Background(), query, id, desde, hacia)
	if err != nil {
		return false, fmt.Errorf("cambiar estado nota venta: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotaVentaRepo) CreatePago(p *entity.Pago) error {
	return insertPago(r.q, tablaPagosVenta, p)
}

func (r *NotaVentaRepo) GetPago(pagoID string) (*entity.Pago, error) {
	return getPago(r.q, tablaPagosVenta, pagoID)
}

func (r *NotaVentaRepo) DeletePago(pagoID string) (bool, error) {
	return deletePago(r.q, tablaPagosVenta, pagoID)
}

func (r *NotaVentaRepo) ActualizarSaldo(id string, totalPagado, saldo decimal.Decimal, estado string) error {
	const query = `
		UPDATE notas_venta SET total_pagado = $2, saldo = $3, estado = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, totalPagado, saldo, estado)
	if err != nil {
		return fmt.Errorf("actualizar saldo nota venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanNotaVenta(row pgx.Row) (*entity.NotaVenta, error) {
	var n entity.NotaVenta
	err := row.Scan(&n.ID, &n.Folio, &n.ClienteID, &n.Estado, &n.Fecha,
		&n.Subtotal, &n.Impuestos, &n.Total, &n.TotalPagado, &n.Saldo,
		&n.CotizacionFolio, &n.OrdenFolio, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
