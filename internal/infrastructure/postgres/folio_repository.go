package postgres

import (
	"context"
	"fmt"

	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.FolioRepository = (*FolioRepo)(nil)

// FolioRepo secuenciador de folios sobre la tabla folios. El upsert con
// RETURNING es un incremento atómico: dos transacciones concurrentes sobre el
// mismo (tipo, año) se serializan en el candado de fila y nunca comparten
// consecutivo. Un rollback posterior deja un hueco en la numeración, lo cual
// es aceptable; repetir un número no lo es.
type FolioRepo struct {
	q Querier
}

// NewFolioRepository construye el adaptador. Pasar la tx que inserta el documento.
func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

// Next devuelve el siguiente consecutivo para (tipo, año).
func (r *FolioRepo) Next(tipo string, anio int) (int, error) {
	const query = `
		INSERT INTO folios (tipo, anio, consecutivo)
		VALUES ($1, $2, 1)
		ON CONFLICT (tipo, anio)
		DO UPDATE SET consecutivo = folios.consecutivo + 1
		RETURNING consecutivo`
	var n int
	if err := r.q.QueryRow(context.Background(), query, tipo, anio).Scan(&n); err != nil {
		return 0, fmt.Errorf("next folio %s-%d: %w", tipo, anio, err)
	}
	return n, nil
}
