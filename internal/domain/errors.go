package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrLocationNotFound       = errors.New("ubicación no encontrada")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrInvalidMovementType    = errors.New("tipo de movimiento no reconocido")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidStateTransition = errors.New("transición de estado no permitida")

	// ErrLockTimeout indica contención transitoria de bloqueo de fila.
	// Es seguro reintentar la operación completa: nada fue confirmado.
	ErrLockTimeout = errors.New("tiempo de espera de bloqueo agotado")

	// ErrIntegrityViolation lo produce únicamente la reconciliación cuando
	// el saldo recalculado del kardex difiere del saldo almacenado.
	// Nunca se corrige automáticamente.
	ErrIntegrityViolation = errors.New("saldo del kardex inconsistente con el stock almacenado")
)
