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

const tablaPagosProveedor = "pagos_proveedor"

var _ repository.NotaProveedorRepository = (*NotaProveedorRepo)(nil)

// NotaProveedorRepo implementa el repositorio de notas de proveedor sobre PostgreSQL.
type NotaProveedorRepo struct {
	q Querier
}

// NewNotaProveedorRepository crea una nueva instancia del repositorio.
func NewNotaProveedorRepository(q Querier) *NotaProveedorRepo {
	return &NotaProveedorRepo{q: q}
}

func (r *NotaProveedorRepo) Create(n *entity.NotaProveedor) error {
	const query = `
		INSERT INTO notas_proveedor (id, folio, proveedor_id, estado, fecha,
			subtotal, impuestos, total, total_pagado, saldo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.Folio, n.ProveedorID, n.Estado, n.Fecha,
		n.Subtotal, n.Impuestos, n.Total, n.TotalPagado, n.Saldo, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nota proveedor: %w", err)
	}
	return insertItems(r.q, n.ID, n.Items)
}

func (r *NotaProveedorRepo) GetByID(id string) (*entity.NotaProveedor, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila de la nota hasta que la transacción
// termine; solo tiene sentido dentro de un TxRunner.
func (r *NotaProveedorRepo) GetByIDForUpdate(id string) (*entity.NotaProveedor, error) {
	return r.get(`WHERE id = $1 FOR UPDATE`, id)
}

func (r *NotaProveedorRepo) GetByFolio(folio string) (*entity.NotaProveedor, error) {
	return r.get(`WHERE folio = $1`, folio)
}

func (r *NotaProveedorRepo) get(where, arg string) (*entity.NotaProveedor, error) {
	query := `
		SELECT id, folio, proveedor_id, estado, fecha,
		       subtotal, impuestos, total, total_pagado, saldo, created_at, updated_at
		FROM notas_proveedor ` + where
	n, err := scanNotaProveedor(r.q.QueryRow(context.Background(), query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if n.Items, err = getItems(r.q, n.ID); err != nil {
		return nil, err
	}
	if n.Pagos, err = getPagos(r.q, tablaPagosProveedor, n.ID); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NotaProveedorRepo) List(limit, offset int) ([]*entity.NotaProveedor, error) {
	query := fmt.Sprintf(`
		SELECT id, folio, proveedor_id, estado, fecha,
		       subtotal, impuestos, total, total_pagado, saldo, created_at, updated_at
		FROM notas_proveedor ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list notas proveedor: %w", err)
	}
	defer rows.Close()

	var list []*entity.NotaProveedor
	for rows.Next() {
		n, err := scanNotaProveedor(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *NotaProveedorRepo) Update(n *entity.NotaProveedor) error {
	const query = `
		UPDATE notas_proveedor
		SET proveedor_id = $2, fecha = $3, estado = $4,
		    subtotal = $5, impuestos = $6, total = $7, total_pagado = $8, saldo = $9,
		    updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		n.ID, n.ProveedorID, n.Fecha, n.Estado,
		n.Subtotal, n.Impuestos, n.Total, n.TotalPagado, n.Saldo, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update nota proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return replaceItems(r.q, n.ID, n.Items)
}

func (r *NotaProveedorRepo) CambiarEstado(id, desde, hacia string) (bool, error) {
	const query = `
		UPDATE notas_proveedor SET estado = $3, updated_at = now()
		WHERE id = $1 AND estado = $2`
	tag, err := r.q.Exec(context.Background(), query, id, desde, hacia)
	if err != nil {
		return false, fmt.Errorf("cambiar estado nota proveedor: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotaProveedorRepo) CreatePago(p *entity.Pago) error {
	return insertPago(r.q, tablaPagosProveedor, p)
}

func (r *NotaProveedorRepo) GetPago(pagoID string) (*entity.Pago, error) {
	return getPago(r.q, tablaPagosProveedor, pagoID)
}

func (r *NotaProveedorRepo) DeletePago(pagoID string) (bool, error) {
	return deletePago(r.q, tablaPagosProveedor, pagoID)
}

func (r *NotaProveedorRepo) ActualizarSaldo(id string, totalPagado, saldo decimal.Decimal, estado string) error {
	const query = `
		UPDATE notas_proveedor SET total_pagado = $2, saldo = $3, estado = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, totalPagado, saldo, estado)
	if err != nil {
		return fmt.Errorf("actualizar saldo nota proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanNotaProveedor(row pgx.Row) (*entity.NotaProveedor, error) {
	var n entity.NotaProveedor
	err := row.Scan(&n.ID, &n.Folio, &n.ProveedorID, &n.Estado, &n.Fecha,
		&n.Subtotal, &n.Impuestos, &n.Total, &n.TotalPagado, &n.Saldo,
		&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
