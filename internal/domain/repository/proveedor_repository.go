package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// ProveedorRepository define el puerto de persistencia para Proveedor.
type ProveedorRepository interface {
	Create(proveedor *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	List(search string, limit, offset int) ([]*entity.Proveedor, error)
	Update(proveedor *entity.Proveedor) error
	Disable(id string) (bool, error)
}
