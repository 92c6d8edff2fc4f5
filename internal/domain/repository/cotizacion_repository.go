package repository

import "github.com/tallerpro/taller-api/internal/domain/entity"

// CotizacionRepository define el puerto de persistencia para Cotizacion y sus renglones.
type CotizacionRepository interface {
	// Create inserta la cabecera y todos los renglones.
	Create(c *entity.Cotizacion) error
	GetByID(id string) (*entity.Cotizacion, error)
	GetByFolio(folio string) (*entity.Cotizacion, error)
	List(limit, offset int) ([]*entity.Cotizacion, error)
	// Update reescribe la cabecera y reemplaza los renglones completos.
	Update(c *entity.Cotizacion) error
	// CambiarEstado es un compare-and-set: solo aplica si el estado actual es
	// `desde`. Devuelve false si otro llamador ganó la carrera.
	CambiarEstado(id, desde, hacia string) (bool, error)
	// MarcarConvertida fija nota_folio y estado Aceptada con la guarda
	// nota_folio IS NULL. Devuelve false si ya estaba convertida.
	MarcarConvertida(id, notaFolio string) (bool, error)
}
