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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementa el repositorio de clientes sobre PostgreSQL.
// La columna nombre_norm guarda el nombre sin acentos y en minúsculas para
// que la búsqueda sea insensible a ambos.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository crea una nueva instancia del repositorio.
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

func (r *ClienteRepo) Create(c *entity.Cliente) error {
	const query = `
		INSERT INTO clientes (id, nombre, nombre_norm, tipo, rfc, telefono, email, direccion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, normalize.Fold(c.Nombre), c.Tipo, c.RFC,
		c.Telefono, c.Email, c.Direccion, c.Activo, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	const query = `
		SELECT id, nombre, tipo, rfc, telefono, email, direccion, activo, created_at, updated_at
		FROM clientes WHERE id = $1`
	c, err := scanCliente(r.q.QueryRow(context.Background(), query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *ClienteRepo) List(search string, limit, offset int) ([]*entity.Cliente, error) {
	query := `
		SELECT id, nombre, tipo, rfc, telefono, email, direccion, activo, created_at, updated_at
		FROM clientes`
	args := []any{}
	if search != "" {
		query += ` WHERE nombre_norm LIKE '%' || $1 || '%' OR lower(rfc) LIKE '%' || $1 || '%'`
		args = append(args, normalize.Fold(search))
	}
	query += fmt.Sprintf(` ORDER BY nombre LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *ClienteRepo) Update(c *entity.Cliente) error {
	const query = `
		UPDATE clientes
		SET nombre = $2, nombre_norm = $3, tipo = $4, rfc = $5, telefono = $6,
		    email = $7, direccion = $8, activo = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, normalize.Fold(c.Nombre), c.Tipo, c.RFC,
		c.Telefono, c.Email, c.Direccion, c.Activo, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClienteRepo) Disable(id string) (bool, error) {
	const query = `UPDATE clientes SET activo = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return false, fmt.Errorf("disable cliente: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(&c.ID, &c.Nombre, &c.Tipo, &c.RFC, &c.Telefono,
		&c.Email, &c.Direccion, &c.Activo, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
