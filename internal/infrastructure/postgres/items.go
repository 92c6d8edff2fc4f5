package postgres

import (
	"context"
	"fmt"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// Helpers compartidos por los cuatro repositorios documentales: todos los
// renglones viven en la tabla items, colgados de su documento padre.

func insertItems(q Querier, documentoID string, items []*entity.Item) error {
	const query = `
		INSERT INTO items (id, documento_id, tipo, cantidad, descripcion, precio_unitario, impuesto, importe, posicion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, it := range items {
		_, err := q.Exec(context.Background(), query,
			it.ID, documentoID, it.Tipo, it.Cantidad, it.Descripcion,
			it.PrecioUnitario, it.Impuesto, it.Importe, it.Posicion,
		)
		if err != nil {
			return fmt.Errorf("insert item: %w", err)
		}
	}
	return nil
}

func replaceItems(q Querier, documentoID string, items []*entity.Item) error {
	if _, err := q.Exec(context.Background(), `DELETE FROM items WHERE documento_id = $1`, documentoID); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return insertItems(q, documentoID, items)
}

func getItems(q Querier, documentoID string) ([]*entity.Item, error) {
	const query = `
		SELECT id, documento_id, tipo, cantidad, descripcion, precio_unitario, impuesto, importe, posicion
		FROM items WHERE documento_id = $1 ORDER BY posicion`
	rows, err := q.Query(context.Background(), query, documentoID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.DocumentoID, &it.Tipo, &it.Cantidad, &it.Descripcion,
			&it.PrecioUnitario, &it.Impuesto, &it.Importe, &it.Posicion); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
