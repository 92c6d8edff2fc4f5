package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código de error de PostgreSQL para unique_violation.
const codeUniqueViolation = "23505"

// isUniqueViolation reconoce el choque contra un índice único (folio o email
// duplicado) para traducirlo a un error de dominio.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
