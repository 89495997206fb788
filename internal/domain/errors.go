package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). Son los "tipos" de error que
// el handler HTTP traduce a código de estado.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Error acompaña un error de dominio con el mensaje que ve el usuario final.
// errors.Is(err, domain.ErrNotFound) sigue funcionando a través de Unwrap.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// NotFound construye un ErrNotFound con mensaje para el usuario.
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Message: msg} }

// Forbidden construye un ErrForbidden (rol insuficiente o precondición de archivo).
func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Message: msg} }

// Conflict construye un ErrConflict (campo único duplicado).
func Conflict(msg string) error { return &Error{Kind: ErrConflict, Message: msg} }

// Invalid construye un ErrInvalidInput.
func Invalid(msg string) error { return &Error{Kind: ErrInvalidInput, Message: msg} }

// Invalidf igual que Invalid con formato.
func Invalidf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized construye un ErrUnauthorized.
func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }

// InsufficientStock construye un ErrInsufficientStock.
func InsufficientStock(msg string) error { return &Error{Kind: ErrInsufficientStock, Message: msg} }

// Message devuelve el mensaje de usuario si err es *Error; si no, fallback.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
