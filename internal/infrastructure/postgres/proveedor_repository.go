package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
	"github.com/tallerpro/taller-api/pkg/normalize"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementa el repositorio de proveedores sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository crea una nueva instancia del repositorio.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	const query = `
		INSERT INTO proveedores (id, nombre, nombre_norm, contacto, rfc, telefono, email, direccion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, normalize.Fold(p.Nombre), p.Contacto, p.RFC,
		p.Telefono, p.Email, p.Direccion, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	const query = `
		SELECT id, nombre, contacto, rfc, telefono, email, direccion, activo, created_at, updated_at
		FROM proveedores WHERE id = $1`
	p, err := scanProveedor(r.q.QueryRow(context.Background(), query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *ProveedorRepo) List(search string, limit, offset int) ([]*entity.Proveedor, error) {
	query := `
		SELECT id, nombre, contacto, rfc, telefono, email, direccion, activo, created_at, updated_at
		FROM proveedores`
	args := []any{}
	if search != "" {
		query += ` WHERE nombre_norm LIKE '%' || $1 || '%' OR lower(rfc) LIKE '%' || $1 || '%'`
		args = append(args, normalize.Fold(search))
	}
	query += fmt.Sprintf(` ORDER BY nombre LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proveedor
	for rows.Next() {
		p, err := scanProveedor(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	const query = `
		UPDATE proveedores
		SET nombre = $2, nombre_norm = $3, contacto = $4, rfc = $5, telefono = $6,
		    email = $7, direccion = $8, activo = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, normalize.Fold(p.Nombre), p.Contacto, p.RFC,
		p.Telefono, p.Email, p.Direccion, p.Activo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProveedorRepo) Disable(id string) (bool, error) {
	const query = `UPDATE proveedores SET activo = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return false, fmt.Errorf("disable proveedor: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProveedor(row pgx.Row) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := row.Scan(&p.ID, &p.Nombre, &p.Contacto, &p.RFC, &p.Telefono,
		&p.Email, &p.Direccion, &p.Activo, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
