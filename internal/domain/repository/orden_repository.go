package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// OrdenRepository define el puerto de persistencia para Orden y sus renglones.
type OrdenRepository interface {
	Create(o *entity.Orden) error
	GetByID(id string) (*entity.Orden, error)
	GetByFolio(folio string) (*entity.Orden, error)
	List(limit, offset int) ([]*entity.Orden, error)
	Update(o *entity.Orden) error
	CambiarEstado(id, desde, hacia string) (bool, error)
	// MarcarFacturada fija nota_folio y estado Facturada con la guarda
	// nota_folio IS NULL AND estado = 'Completada'.
	MarcarFacturada(id, notaFolio string) (bool, error)
}
