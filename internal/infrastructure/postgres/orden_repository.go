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

var _ repository.OrdenRepository = (*OrdenRepo)(nil)

// OrdenRepo implementa el repositorio de órdenes de trabajo sobre PostgreSQL.
type OrdenRepo struct {
	q Querier
}

// NewOrdenRepository crea una nueva instancia del repositorio.
func NewOrdenRepository(q Querier) *OrdenRepo {
	return &OrdenRepo{q: q}
}

func (r *OrdenRepo) Create(o *entity.Orden) error {
	const query = `
		INSERT INTO ordenes (id, folio, cliente_id, estado, fecha_emision,
			marca, modelo, anio, placas, kilometraje, nota_folio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Folio, o.ClienteID, o.Estado, o.FechaEmision,
		o.Marca, o.Modelo, o.Anio, o.Placas, o.Kilometraje, o.NotaFolio, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	return insertItems(r.q, o.ID, o.Items)
}

func (r *OrdenRepo) GetByID(id string) (*entity.Orden, error) {
	return r.get(`WHERE id = $1`, id)
}

func (r *OrdenRepo) GetByFolio(folio string) (*entity.Orden, error) {
	return r.get(`WHERE folio = $1`, folio)
}

func (r *OrdenRepo) get(where, arg string) (*entity.Orden, error) {
	query := `
		SELECT id, folio, cliente_id, estado, fecha_emision,
		       marca, modelo, anio, placas, kilometraje, COALESCE(nota_folio, ''), created_at, updated_at
		FROM ordenes ` + where
	o, err := scanOrden(r.q.QueryRow(context.Background(), query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if o.Items, err = getItems(r.q, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrdenRepo) List(limit, offset int) ([]*entity.Orden, error) {
	query := fmt.Sprintf(`
		SELECT id, folio, cliente_id, estado, fecha_emision,
		       marca, modelo, anio, placas, kilometraje, COALESCE(nota_folio, ''), created_at, updated_at
		FROM ordenes ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Orden
	for rows.Next() {
		o, err := scanOrden(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func (r *OrdenRepo) Update(o *entity.Orden) error {
	const query = `
		UPDATE ordenes
		SET cliente_id = $2, fecha_emision = $3, marca = $4, modelo = $5,
		    anio = $6, placas = $7, kilometraje = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		o.ID, o.ClienteID, o.FechaEmision, o.Marca, o.Modelo,
		o.Anio, o.Placas, o.Kilometraje, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update orden: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return replaceItems(r.q, o.ID, o.Items)
}

func (r *OrdenRepo) CambiarEstado(id, desde, hacia string) (bool, error) {
	const query = `
		UPDATE ordenes SET estado = $3, updated_at = now()
		WHERE id = $1 AND estado = $2`
	tag, err := r.q.Exec(context.Background(), query, id, desde, hacia)
	if err != nil {
		return false, fmt.Errorf("cambiar estado orden: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *OrdenRepo) MarcarFacturada(id, notaFolio string) (bool, error) {
	const query = `
		UPDATE ordenes SET nota_folio = $2, estado = $3, updated_at = now()
		WHERE id = $1 AND nota_folio IS NULL AND estado = $4`
	tag, err := r.q.Exec(context.Background(), query, id, notaFolio,
		entity.OrdenFacturada, entity.OrdenCompletada)
	if err != nil {
		return false, fmt.Errorf("marcar facturada: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanOrden(row pgx.Row) (*entity.Orden, error) {
	var o entity.Orden
	err := row.Scan(&o.ID, &o.Folio, &o.ClienteID, &o.Estado, &o.FechaEmision,
		&o.Marca, &o.Modelo, &o.Anio, &o.Placas, &o.Kilometraje, &o.NotaFolio,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
