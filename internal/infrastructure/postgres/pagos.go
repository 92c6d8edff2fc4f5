package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// Helpers compartidos por los pagos de venta y de proveedor; solo cambia la
// tabla. El nombre de tabla siempre viene de una constante interna, nunca de
// entrada del usuario.

func insertPago(q Querier, tabla string, p *entity.Pago) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, nota_id, monto, fecha_pago, metodo_pago, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, tabla)
	_, err := q.Exec(context.Background(), query,
		p.ID, p.NotaID, p.Monto, p.FechaPago, p.MetodoPago, p.Memo, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

func getPago(q Querier, tabla, pagoID string) (*entity.Pago, error) {
	query := fmt.Sprintf(`
		SELECT id, nota_id, monto, fecha_pago, metodo_pago, memo, created_at
		FROM %s WHERE id = $1`, tabla)
	var p entity.Pago
	err := q.QueryRow(context.Background(), query, pagoID).Scan(
		&p.ID, &p.NotaID, &p.Monto, &p.FechaPago, &p.MetodoPago, &p.Memo, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return &p, nil
}

func deletePago(q Querier, tabla, pagoID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tabla)
	tag, err := q.Exec(context.Background(), query, pagoID)
	if err != nil {
		return false, fmt.Errorf("delete pago: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func getPagos(q Querier, tabla, notaID string) ([]*entity.Pago, error) {
	query := fmt.Sprintf(`
		SELECT id, nota_id, monto, fecha_pago, metodo_pago, memo, created_at
		FROM %s WHERE nota_id = $1 ORDER BY fecha_pago, created_at`, tabla)
	rows, err := q.Query(context.Background(), query, notaID)
	if err != nil {
		return nil, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pago
	for rows.Next() {
		var p entity.Pago
		if err := rows.Scan(&p.ID, &p.NotaID, &p.Monto, &p.FechaPago, &p.MetodoPago, &p.Memo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
