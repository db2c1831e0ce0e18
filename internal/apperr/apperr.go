package apperr

import "errors"

// Kind clasifica las fallas que el servicio expone al cliente.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindUnauthorized    Kind = "unauthorized"
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
)

// Error es el tipo unificado que los servicios devuelven como valor.
// El kind viaja hasta el borde HTTP, donde se traduce a status code.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// New construye un Error con el kind y mensaje dados.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Unauthenticated marca una falla de identidad no verificable.
func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message)
}

// Unauthorized marca una identidad válida sin derechos sobre el recurso.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// InvalidInput marca entrada malformada detectada antes de autenticar.
func InvalidInput(message string) *Error {
	return New(KindInvalidInput, message)
}

// NotFound marca un recurso inexistente.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Conflict marca una violación de unicidad.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// KindOf extrae el kind de un error; devuelve "" si no es un *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is permite comparar contra un Error sentinel por kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}
