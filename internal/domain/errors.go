package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con detalle (fmt.Errorf("%w: ...")); comparar siempre con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateName     = errors.New("ya existe un producto con ese nombre")
	ErrInsufficientStock = errors.New("stock insuficiente")

	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrUsernameExists = errors.New("el nombre de usuario ya está registrado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
)
