package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidState       = errors.New("operación no válida en el estado actual de los datos")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrImmutable          = errors.New("la factura pagada es inmutable")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
