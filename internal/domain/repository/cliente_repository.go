package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	// List filtra por nombre/RFC normalizados (sin acentos) cuando search no es vacío.
	List(search string, limit, offset int) ([]*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	// Disable desactiva al cliente (borrado suave). Devuelve false si no existe.
	Disable(id string) (bool, error)
}
