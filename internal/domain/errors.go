package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrValidation       = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrEmailExists      = errors.New("el email ya está registrado")
	ErrInvalidState     = errors.New("operación ilegal para el estado actual del documento")
	ErrAlreadyConverted = errors.New("el documento ya fue convertido a nota de venta")
	ErrAlreadyCancelled = errors.New("el documento ya fue cancelado")
	ErrDocumentLocked   = errors.New("el documento está en un estado terminal y no admite cambios")
	ErrInvalidAmount    = errors.New("el monto del pago debe ser mayor que cero")
	ErrOverpayment      = errors.New("el pago excede el saldo pendiente de la nota")
)
