package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrAlreadyReceived   = errors.New("la línea de pedido ya fue recepcionada")
	ErrNoDestination     = errors.New("pedido sin sitio de destino definido")
	ErrOrderNotDeletable = errors.New("el pedido no puede eliminarse en su estado actual")
)
