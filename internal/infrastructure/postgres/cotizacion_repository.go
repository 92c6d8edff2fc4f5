package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

// CotizacionRepo implementa el repositorio de cotizaciones sobre PostgreSQL.
type CotizacionRepo struct {
	q Querier
}

// NewCotizacionRepository crea una nueva instancia del repositorio.
func NewCotizacionRepository(q Querier) *CotizacionRepo {
	return &CotizacionRepo{q: q}
}

func (r *CotizacionRepo) Create(c *entity.Cotizacion) error {
	const query = `
		INSERT INTO cotizaciones (id, folio, cliente_id, estado, fecha_emision, vigencia,
			subtotal, impuestos, total, nota_folio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Folio, c.ClienteID, c.Estado, c.FechaEmision, c.Vigencia,
		c.Subtotal, c.Impuestos, c.Total, c.NotaFolio, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cotizacion: %w", err)
	}
	return insertItems(r.q, c.ID, c.Items)
}

func (r *CotizacionRepo) GetByID(id string) (*entity.Cotizacion, error) {
	return r.get(`WHERE id = $1`, id)
}

func (r *CotizacionRepo) GetByFolio(folio string) (*entity.Cotizacion, error) {
	return r.get(`WHERE folio = $1`, folio)
}

func (r *CotizacionRepo) get(where, arg string) (*entity.Cotizacion, error) {
	query := `
		SELECT id, folio, cliente_id, estado, fecha_emision, vigencia,
		       subtotal, impuestos, total, COALESCE(nota_folio, ''), created_at, updated_at
		FROM cotizaciones ` + where
	c, err := scanCotizacion(r.q.QueryRow(context.Background(), query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if c.Items, err = getItems(r.q, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CotizacionRepo) List(limit, offset int) ([]*entity.Cotizacion, error) {
	query := fmt.Sprintf(`
		SELECT id, folio, cliente_id, estado, fecha_emision, vigencia,
		       subtotal, impuestos, total, COALESCE(nota_folio, ''), created_at, updated_at
		FROM cotizaciones ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cotizacion
	for rows.Next() {
		c, err := scanCotizacion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Los listados no cargan renglones; el detalle sí.
	return list, nil
}

func (r *CotizacionRepo) Update(c *entity.Cotizacion) error {
	const query = `
		UPDATE cotizaciones
		SET cliente_id = $2, fecha_emision = $3, vigencia = $4,
		    subtotal = $5, impuestos = $6, total = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.ClienteID, c.FechaEmision, c.Vigencia,
		c.Subtotal, c.Impuestos, c.Total, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cotizacion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return replaceItems(r.q, c.ID, c.Items)
}

func (r *CotizacionRepo) CambiarEstado(id, desde, hacia string) (bool, error) {
	const query = `
		UPDATE cotizaciones SET estado = $3, updated_at = now()
		WHERE id = $1 AND estado = $2`
	tag, err := r.q.Exec(context.Background(), query, id, desde, hacia)
	if err != nil {
		return false, fmt.Errorf("cambiar estado cotizacion: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *CotizacionRepo) MarcarConvertida(id, notaFolio string) (bool, error) {
	// La guarda nota_folio IS NULL garantiza a-lo-más-una conversión aun con
	// dos transacciones concurrentes: la segunda no afecta filas.
	const query = `
		UPDATE cotizaciones SET nota_folio = $2, estado = $3, updated_at = now()
		WHERE id = $1 AND nota_folio IS NULL AND estado = $4`
	tag, err := r.q.Exec(context.Background(), query, id, notaFolio,
		entity.CotizacionAceptada, entity.CotizacionPendiente)
	if err != nil {
		return false, fmt.Errorf("marcar convertida: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanCotizacion(row pgx.Row) (*entity.Cotizacion, error) {
	var c entity.Cotizacion
	err := row.Scan(&c.ID, &c.Folio, &c.ClienteID, &c.Estado, &c.FechaEmision, &c.Vigencia,
		&c.Subtotal, &c.Impuestos, &c.Total, &c.NotaFolio, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
